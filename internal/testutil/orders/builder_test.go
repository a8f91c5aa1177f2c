package orders_test

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sweep/internal/testutil/orders"
)

func TestBuilder_Build(t *testing.T) {
	table := orders.NewBuilder(t).
		WithFixture(orders.FixtureDomestic).
		WithOrder(orders.Order{ID: "X", Product: "Grow 180ml"}).
		Build()

	require.Equal(t, 3, table.Len())
	assert.Equal(t, orders.Columns, table.Columns)

	last := table.Records[2]
	assert.Equal(t, 3, last.Row)
	assert.Equal(t, "Grow 180ml", last.ProductName)
	assert.Equal(t, "X", last.Values[orders.ColumnOrderID])
	assert.Empty(t, last.CreatedRaw)
}

func TestBuilder_WriteCSV(t *testing.T) {
	path := orders.NewBuilder(t).WithFixture(orders.FixtureBadTimestamp).WriteCSV()

	f, err := os.Open(path) //nolint:gosec // Test-owned temp path
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, orders.Columns, rows[0])
	assert.Equal(t, "2024-03-05 10:00", rows[2][4])
}

func TestFixture_OrdersAreCopies(t *testing.T) {
	first := orders.FixtureMarch2024.Orders()
	first[0].Product = "changed"
	assert.NotEqual(t, "changed", orders.FixtureMarch2024.Orders()[0].Product)
	assert.Equal(t, "March 2024", orders.FixtureMarch2024.Name())
}
