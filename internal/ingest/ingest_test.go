package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/config"
)

func defaultColumns(t *testing.T) config.Columns {
	t.Helper()
	rules, err := config.Default()
	require.NoError(t, err)
	return rules.Columns
}

const sampleCSV = "\uFEFFOrder ID,Product Name,Province,Warehouse Name,Created Time\n" +
	"1,Ensure Gold 850g,Tỉnh Đắk Lắk,Kho (HCM),05/03/2024 10:15:00\n" +
	",,,,\n" +
	"2,\"Similac, 900g\",Hà Nội\n"

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := ReadTable(path, defaultColumns(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Order ID", "Product Name", "Province", "Warehouse Name", "Created Time"}, table.Columns)
	require.Len(t, table.Records, 2)

	first := table.Records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "Ensure Gold 850g", first.ProductName)
	assert.Equal(t, "Tỉnh Đắk Lắk", first.LocationName)
	assert.Equal(t, "Kho (HCM)", first.WarehouseName)
	assert.Equal(t, "05/03/2024 10:15:00", first.CreatedRaw)

	second := table.Records[1]
	assert.Equal(t, 3, second.Row, "blank rows keep source numbering")
	assert.Equal(t, "Similac, 900g", second.ProductName)
	assert.Equal(t, "", second.CreatedRaw)
	assert.Contains(t, second.Values, "Created Time")
}

func TestReadTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Product Name", "Province", "Created Time"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Grow 900g", "Long An", "01/03/2024 00:00:00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadTable(path, defaultColumns(t))
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Grow 900g", table.Records[0].ProductName)
	assert.Equal(t, "Long An", table.Records[0].LocationName)
	assert.Equal(t, "01/03/2024 00:00:00", table.Records[0].CreatedRaw)
}

func TestReadTable_Unsupported(t *testing.T) {
	_, err := ReadTable("orders.parquet", defaultColumns(t))
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	assert.Contains(t, common.UserMessage(err), ".csv or .xlsx")
}

func TestBuildTable_Empty(t *testing.T) {
	_, err := BuildTable(nil, defaultColumns(t))
	assert.ErrorIs(t, err, common.ErrEmptyInput)
}

func TestBuildPeriodRows(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("Period_Name,start_date,end_date\n" +
		"Tet,01/02/2024,10/02/2024\n" +
		"\n" +
		"Missing End,11/02/2024\n"))
	require.NoError(t, err)

	got, err := BuildPeriodRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, "Tet", got[0].Name)
	assert.Equal(t, "10/02/2024", got[0].End)
	assert.Equal(t, 3, got[1].Line)
	assert.Equal(t, "", got[1].End)
}

func TestBuildPeriodRows_MissingColumn(t *testing.T) {
	_, err := BuildPeriodRows([][]string{{"name", "start_date", "end_date"}})
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestReadPeriods_XLSXSerialDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"period_name", "start_date", "end_date"}))
	// 45352 is 2024-03-01 in the 1900 date system.
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"March", 45352, "31/03/2024"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := ReadPeriods(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "01/03/2024", got[0].Start)
	assert.Equal(t, "31/03/2024", got[0].End)
}
