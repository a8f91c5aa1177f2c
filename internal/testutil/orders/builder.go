// Package orders builds sales-export tables for tests. It offers a fluent
// API over named fixtures so tests can describe input rows without
// repeating the export's column layout.
//
// Example usage:
//
//	table := orders.NewBuilder(t).
//		WithFixture(orders.FixtureMarch2024).
//		WithOrder(orders.Order{Product: "Grow 180ml", Created: "01/04/2024 09:00:00"}).
//		Build()
package orders

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/sweep/internal/model"
)

// Column names of a marketplace sales export.
const (
	ColumnOrderID          = "Order ID"
	ColumnProduct          = "Product Name"
	ColumnProvince         = "Province"
	ColumnWarehouse        = "Warehouse Name"
	ColumnCreated          = "Created Time"
	ColumnQuantity         = "Quantity"
	ColumnSubtotalBefore   = "SKU Subtotal Before Discount"
	ColumnSellerDiscount   = "SKU Seller Discount"
	ColumnPlatformDiscount = "SKU Platform Discount"
	ColumnSubtotalAfter    = "SKU Subtotal After Discount"
)

// Columns is the header every built table carries, in order.
var Columns = []string{
	ColumnOrderID,
	ColumnProduct,
	ColumnProvince,
	ColumnWarehouse,
	ColumnCreated,
	ColumnQuantity,
	ColumnSubtotalBefore,
	ColumnSellerDiscount,
	ColumnPlatformDiscount,
	ColumnSubtotalAfter,
}

// Order is one export row. Numeric fields stay raw text, the way they
// arrive in the export.
type Order struct {
	ID               string
	Product          string
	Province         string
	Warehouse        string
	Created          string
	Quantity         string
	SubtotalBefore   string
	SellerDiscount   string
	PlatformDiscount string
	SubtotalAfter    string
}

func (o Order) values() []string {
	return []string{
		o.ID,
		o.Product,
		o.Province,
		o.Warehouse,
		o.Created,
		o.Quantity,
		o.SubtotalBefore,
		o.SellerDiscount,
		o.PlatformDiscount,
		o.SubtotalAfter,
	}
}

// Builder provides a fluent interface for constructing export tables.
type Builder interface {
	// WithOrder appends a single order.
	WithOrder(o Order) Builder

	// WithOrders appends several orders in order.
	WithOrders(orders ...Order) Builder

	// WithFixture appends the orders of a predefined fixture.
	WithFixture(f Fixture) Builder

	// Build returns the table with 1-based row numbers.
	Build() *model.Table

	// WriteCSV writes the table as a CSV export in a temporary directory
	// and returns its path.
	WriteCSV() string
}

type orderBuilder struct {
	t      *testing.T
	orders []Order
}

// NewBuilder creates an empty builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &orderBuilder{t: t}
}

func (b *orderBuilder) WithOrder(o Order) Builder {
	b.orders = append(b.orders, o)
	return b
}

func (b *orderBuilder) WithOrders(orders ...Order) Builder {
	b.orders = append(b.orders, orders...)
	return b
}

func (b *orderBuilder) WithFixture(f Fixture) Builder {
	return b.WithOrders(f.Orders()...)
}

func (b *orderBuilder) Build() *model.Table {
	records := make([]model.Record, len(b.orders))
	for i, o := range b.orders {
		values := make(map[string]string, len(Columns))
		for j, v := range o.values() {
			values[Columns[j]] = v
		}
		records[i] = model.Record{
			Row:           i + 1,
			Values:        values,
			ProductName:   o.Product,
			LocationName:  o.Province,
			WarehouseName: o.Warehouse,
			CreatedRaw:    o.Created,
		}
	}

	return &model.Table{
		Columns: append([]string(nil), Columns...),
		Records: records,
	}
}

func (b *orderBuilder) WriteCSV() string {
	b.t.Helper()

	path := filepath.Join(b.t.TempDir(), "orders.csv")
	f, err := os.Create(path) //nolint:gosec // Test-owned temp path
	if err != nil {
		b.t.Fatalf("failed to create export: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	rows := make([][]string, 0, len(b.orders)+1)
	rows = append(rows, Columns)
	for _, o := range b.orders {
		rows = append(rows, o.values())
	}
	if err := w.WriteAll(rows); err != nil {
		b.t.Fatalf("failed to write export: %v", err)
	}
	return path
}
