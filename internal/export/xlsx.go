package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/sweep/internal/model"
)

const (
	sheetName   = "Sheet1"
	maxColWidth = 255
)

// WriteXLSX writes table to a workbook. Columns are sized to their longest
// value and the Brand column is centered. Numeric columns are written as
// numbers.
func WriteXLSX(path string, table *model.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := Header(table)
	derived := derivedSet(table)

	for i, width := range columnWidths(table, header, derived) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("failed to size column %d: %w", i+1, err)
		}
	}

	headerRow := make([]any, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := range table.Records {
		rec := &table.Records[r]
		row := make([]any, len(header))
		for i, col := range header {
			value := cellValue(rec, col, derived[col])
			if col == model.ColumnBrand {
				row[i] = excelize.Cell{StyleID: center, Value: value}
			} else {
				row[i] = value
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rec.Row, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// cellValue prefers a typed number when the column holds one.
func cellValue(rec *model.Record, col string, isDerived bool) any {
	if !isDerived {
		if n, ok := rec.Numeric[col]; ok {
			return n
		}
		return rec.Values[col]
	}

	var f *float64
	switch col {
	case model.ColumnFSP:
		f = rec.Attributes.FSP
	case model.ColumnSubtotalUSD:
		f = rec.Attributes.SubtotalUSD
	case model.ColumnVoucher:
		f = rec.Attributes.Voucher
	default:
		v, _ := rec.Attributes.Derived(col)
		return v
	}
	if f == nil {
		return nil
	}
	return *f
}

// columnWidths returns, per header column, the longest rendered value in
// characters plus two.
func columnWidths(table *model.Table, header []string, derived map[string]bool) []float64 {
	widths := make([]float64, len(header))
	for i, col := range header {
		widths[i] = float64(utf8.RuneCountInString(col))
	}

	for r := range table.Records {
		for i, col := range header {
			n := float64(utf8.RuneCountInString(Cell(&table.Records[r], col, derived[col])))
			if n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i := range widths {
		widths[i] = min(widths[i]+2, maxColWidth)
	}
	return widths
}
