package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/sweep/internal/model"
)

// WriteCSV writes table as UTF-8 CSV with a byte order mark, so that Excel
// detects the encoding of Vietnamese text.
func WriteCSV(w io.Writer, table *model.Table) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	header := Header(table)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	derived := derivedSet(table)
	row := make([]string, len(header))
	for i := range table.Records {
		for j, col := range header {
			row[j] = Cell(&table.Records[i], col, derived[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", table.Records[i].Row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes table to a CSV file.
func WriteCSVFile(path string, table *model.Table) (err error) {
	f, err := os.Create(path) //nolint:gosec // User-provided output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCSV(f, table)
}
