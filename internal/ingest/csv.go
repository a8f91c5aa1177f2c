package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f)
}

// ReadCSV reads every row of a CSV stream. Rows may have differing lengths
// and stray quotes are tolerated, as spreadsheet exports often have both.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}
