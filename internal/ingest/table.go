// Package ingest reads sales exports and period files from CSV and XLSX.
package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/model"
)

const utf8BOM = "\uFEFF"

// ReadTable reads a sales export, choosing the parser by file extension.
func ReadTable(path string, cols config.Columns) (*model.Table, error) {
	rows, err := readRows(path, false)
	if err != nil {
		return nil, err
	}

	table, err := BuildTable(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("Loaded sales export", "path", path, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

func readRows(path string, raw bool) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readCSVFile(path)
	case ".xlsx", ".xlsm":
		return readXLSXFile(path, raw)
	}
	return nil, common.NewUserError(
		fmt.Sprintf("Unsupported file %q: use .csv or .xlsx", filepath.Base(path)),
		fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path)),
	)
}

// BuildTable converts a header row plus data rows into records. Fully
// blank rows are dropped; short rows are padded with blanks.
func BuildTable(rows [][]string, cols config.Columns) (*model.Table, error) {
	if len(rows) == 0 {
		return nil, common.ErrEmptyInput
	}

	header := cleanHeader(rows[0])
	table := &model.Table{Columns: header}

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(row) {
				values[col] = row[j]
			} else {
				values[col] = ""
			}
		}

		table.Records = append(table.Records, model.Record{
			Row:           i + 1,
			Values:        values,
			ProductName:   values[cols.Product],
			LocationName:  values[cols.Location],
			WarehouseName: values[cols.Warehouse],
			CreatedRaw:    values[cols.Created],
		})
	}

	return table, nil
}

func cleanHeader(row []string) []string {
	header := make([]string, len(row))
	for i, col := range row {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		header[i] = strings.TrimSpace(col)
	}
	return header
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
