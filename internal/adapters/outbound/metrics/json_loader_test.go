package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checklight/checklight/internal/adapters/outbound/metrics"
)

func writeMetrics(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidDocument(t *testing.T) {
	doc, err := metrics.New().Load(writeMetrics(t, `{"metrics":{"testing":{"coverage":82.5}}}`))
	require.NoError(t, err)

	res, ok := doc.Resolve("metrics.testing.coverage")
	require.True(t, ok)
	assert.Equal(t, 82.5, res.Float())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := metrics.New().Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := metrics.New().Load(writeMetrics(t, `{"metrics": `))
	assert.Error(t, err)
}
