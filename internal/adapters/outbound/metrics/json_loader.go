package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/checklight/checklight/internal/domain/eval"
)

// JSONLoader implements application.MetricsLoader by reading a JSON metrics
// document from disk. The document's shape is opaque; only well-formedness
// is checked here.
type JSONLoader struct{}

// New creates a JSONLoader.
func New() *JSONLoader { return &JSONLoader{} }

func (l *JSONLoader) Load(path string) (eval.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eval.Document{}, fmt.Errorf("reading metrics document: %w", err)
	}

	doc, err := eval.ParseDocument(data)
	if err != nil {
		return eval.Document{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	return doc, nil
}
