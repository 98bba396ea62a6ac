package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/checklight/checklight/internal/domain"
)

const (
	reportDir   = ".checklight"
	reportFile  = "report.json"
	evidenceDir = "evidence"
)

// FileStore implements domain.ReportStore with JSON files under
// .checklight/: the full report plus one evidence file per item.
type FileStore struct{}

func New() *FileStore {
	return &FileStore{}
}

func (f *FileStore) Save(projectPath string, report domain.Report) error {
	dir := filepath.Join(projectPath, reportDir)
	if err := os.MkdirAll(filepath.Join(dir, evidenceDir), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, reportFile), data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	for _, item := range report.Result.Items {
		if len(item.Evidence) == 0 {
			continue
		}
		data, err := json.MarshalIndent(item.Evidence, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling evidence for %s: %w", item.ID, err)
		}
		fp := filepath.Join(dir, evidenceDir, item.ID+".json")
		if err := os.WriteFile(fp, data, 0644); err != nil {
			return fmt.Errorf("writing evidence for %s: %w", item.ID, err)
		}
	}

	return nil
}
