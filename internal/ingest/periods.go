package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/period"
)

// ReadPeriods reads a bulk period file with period_name, start_date and
// end_date columns. Header names are matched case-insensitively.
func ReadPeriods(path string) ([]period.ImportRow, error) {
	xlsx := isXLSX(path)
	rows, err := readRows(path, xlsx)
	if err != nil {
		return nil, err
	}

	out, err := BuildPeriodRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if xlsx {
		for i := range out {
			out[i].Start = excelDate(out[i].Start)
			out[i].End = excelDate(out[i].End)
		}
	}
	return out, nil
}

// BuildPeriodRows maps a header row plus data rows onto import rows. Line
// numbers count the header as line 1.
func BuildPeriodRows(rows [][]string) ([]period.ImportRow, error) {
	if len(rows) == 0 {
		return nil, common.ErrEmptyInput
	}

	index := make(map[string]int)
	for i, col := range cleanHeader(rows[0]) {
		index[strings.ToLower(col)] = i
	}

	for _, want := range []string{period.ColumnName, period.ColumnStart, period.ColumnEnd} {
		if _, ok := index[want]; !ok {
			return nil, common.NewUserError(
				"Period files need period_name, start_date and end_date columns",
				fmt.Errorf("%w: %s", common.ErrMissingColumn, want),
			)
		}
	}

	cell := func(row []string, col string) string {
		if i := index[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	var out []period.ImportRow
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out = append(out, period.ImportRow{
			Line:  i + 2,
			Name:  cell(row, period.ColumnName),
			Start: cell(row, period.ColumnStart),
			End:   cell(row, period.ColumnEnd),
		})
	}
	return out, nil
}

func isXLSX(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}
