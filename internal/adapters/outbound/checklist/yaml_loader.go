package checklist

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/checklight/checklight/internal/domain"
)

// YAMLLoader implements domain.ChecklistLoader by reading a YAML checklist
// definition file. Definition invariants are enforced here, at load time,
// before any evaluation runs.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

type checklistFile struct {
	Items []domain.ChecklistItem `yaml:"items"`
}

// Load reads, parses, and validates the checklist at path.
func (l *YAMLLoader) Load(path string) ([]domain.ChecklistItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checklist: %w", err)
	}

	var file checklistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := domain.ValidateChecklist(file.Items); err != nil {
		return nil, fmt.Errorf("invalid checklist %s: %w", filepath.Base(path), err)
	}

	return file.Items, nil
}
