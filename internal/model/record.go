// Package model defines the core data structures for the sweep application.
package model

import (
	"time"
)

// Derived column names, in the order they are appended to exported tables.
const (
	ColumnBrand            = "Brand"
	ColumnSize             = "Size"
	ColumnFormat           = "Format"
	ColumnKOL              = "KOL"
	ColumnGift             = "Gift"
	ColumnCleanProvince    = "Clean Province"
	ColumnPeriod           = "Period"
	ColumnWarehouseRegion  = "Warehouse Region"
	ColumnCreatedDate      = "Created Date"
	ColumnCreatedYearMonth = "Created Year Month"
	ColumnFSP              = "FSP"
	ColumnSubtotalUSD      = "SKU Subtotal After Discount (USD)"
	ColumnVoucher          = "Voucher"
)

// DerivedColumns lists every column the pipeline can attach to a record.
var DerivedColumns = []string{
	ColumnBrand,
	ColumnSize,
	ColumnFormat,
	ColumnKOL,
	ColumnGift,
	ColumnCleanProvince,
	ColumnPeriod,
	ColumnWarehouseRegion,
	ColumnCreatedDate,
	ColumnCreatedYearMonth,
	ColumnFSP,
	ColumnSubtotalUSD,
	ColumnVoucher,
}

// Record represents a single row of a sales export.
type Record struct {
	CreatedTime   time.Time          // Zero when the source cell was blank
	Values        map[string]string  // Raw cell values keyed by column name
	Numeric       map[string]float64 // Coerced numeric columns
	ProductName   string
	LocationName  string
	WarehouseName string
	CreatedRaw    string
	Attributes    Attributes
	Row           int // 1-based row in the source file, header excluded
}

// Attributes holds the columns derived from a record's free-text fields.
// An empty string means no value was derived.
type Attributes struct {
	FSP              *float64
	SubtotalUSD      *float64
	Voucher          *float64
	Brand            string
	Size             string
	Format           string
	KOL              string
	Gift             string
	CleanProvince    string
	Period           string
	WarehouseRegion  string
	CreatedDate      string
	CreatedYearMonth string
}

// Clone returns a deep copy so that chunks never share maps.
func (r Record) Clone() Record {
	out := r
	if r.Values != nil {
		out.Values = make(map[string]string, len(r.Values))
		for k, v := range r.Values {
			out.Values[k] = v
		}
	}
	if r.Numeric != nil {
		out.Numeric = make(map[string]float64, len(r.Numeric))
		for k, v := range r.Numeric {
			out.Numeric[k] = v
		}
	}
	out.Attributes.FSP = cloneFloat(r.Attributes.FSP)
	out.Attributes.SubtotalUSD = cloneFloat(r.Attributes.SubtotalUSD)
	out.Attributes.Voucher = cloneFloat(r.Attributes.Voucher)
	return out
}

// Derived returns the value of a derived column formatted for export.
// The second return value is false when the column holds no value.
func (a Attributes) Derived(column string) (string, bool) {
	switch column {
	case ColumnBrand:
		return a.Brand, a.Brand != ""
	case ColumnSize:
		return a.Size, a.Size != ""
	case ColumnFormat:
		return a.Format, a.Format != ""
	case ColumnKOL:
		return a.KOL, a.KOL != ""
	case ColumnGift:
		return a.Gift, a.Gift != ""
	case ColumnCleanProvince:
		return a.CleanProvince, a.CleanProvince != ""
	case ColumnPeriod:
		return a.Period, a.Period != ""
	case ColumnWarehouseRegion:
		return a.WarehouseRegion, a.WarehouseRegion != ""
	case ColumnCreatedDate:
		return a.CreatedDate, a.CreatedDate != ""
	case ColumnCreatedYearMonth:
		return a.CreatedYearMonth, a.CreatedYearMonth != ""
	case ColumnFSP:
		return formatFloat(a.FSP)
	case ColumnSubtotalUSD:
		return formatFloat(a.SubtotalUSD)
	case ColumnVoucher:
		return formatFloat(a.Voucher)
	}
	return "", false
}

// Table is an ordered record set together with its source header.
// Derived lists the derived columns populated by the run, in
// DerivedColumns order.
type Table struct {
	Columns []string
	Derived []string
	Records []Record
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the source header contains the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
