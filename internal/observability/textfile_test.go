package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	RowsProcessed.WithLabelValues("brand").Add(3)
	ChunksProcessed.Inc()

	path := filepath.Join(t.TempDir(), "sweep.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sweep_rows_processed_total{stage="brand"}`)
	assert.Contains(t, string(data), "sweep_chunks_processed_total")
}
