package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sweep/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testRun() *Run {
	fsp := 450000.0
	return &Run{
		ID:       "run-1",
		Source:   "orders.csv",
		Stages:   []string{"coerce", "brand"},
		Chunks:   1,
		Duration: 1500 * time.Millisecond,
		Table: &model.Table{
			Columns: []string{"Product Name"},
			Records: []model.Record{
				{
					Row:    1,
					Values: map[string]string{"Product Name": "Ensure Gold 850g"},
					Attributes: model.Attributes{
						Brand:  "Ensure",
						Period: "Double Day",
						FSP:    &fsp,
					},
				},
				{
					Row:    2,
					Values: map[string]string{"Product Name": "Unknown"},
				},
			},
		},
		Periods: []model.Period{
			model.NewPeriod("Double Day", model.Date(2024, time.March, 1), model.Date(2024, time.March, 13)),
		},
	}
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var indexCount int
	require.NoError(t, store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_records_period', 'idx_records_brand')
	`).Scan(&indexCount))
	assert.Equal(t, 2, indexCount)
}

func TestSaveRun(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRun()))

	var rows, durationMS int
	var stages string
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT row_count, duration_ms, stages FROM runs WHERE id = ?`, "run-1",
	).Scan(&rows, &durationMS, &stages))
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1500, durationMS)
	assert.Equal(t, "coerce,brand", stages)

	var brand, values string
	var fsp float64
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT brand, source_values, fsp FROM records WHERE run_id = ? AND row = 1`, "run-1",
	).Scan(&brand, &values, &fsp))
	assert.Equal(t, "Ensure", brand)
	assert.JSONEq(t, `{"Product Name":"Ensure Gold 850g"}`, values)
	assert.InDelta(t, 450000.0, fsp, 0.001)

	var nullBrand int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE run_id = ? AND brand IS NULL AND fsp IS NULL`, "run-1",
	).Scan(&nullBrand))
	assert.Equal(t, 1, nullBrand)

	var start, end string
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT start_date, end_date FROM periods WHERE run_id = ?`, "run-1",
	).Scan(&start, &end))
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-03-13", end)
}

func TestSaveRun_DuplicateIDRollsBack(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRun()))
	require.Error(t, store.SaveRun(ctx, testRun()))

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSaveRun_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveRun(ctx, nil), ErrNilParameter)

	run := testRun()
	run.ID = ""
	assert.ErrorIs(t, store.SaveRun(ctx, run), ErrInvalidRun)

	run = testRun()
	run.Table.Records[1].Row = 1
	assert.ErrorIs(t, store.SaveRun(ctx, run), ErrInvalidRun)

	run = testRun()
	run.Periods[0].End = model.Date(2024, time.February, 1)
	assert.ErrorIs(t, store.SaveRun(ctx, run), ErrInvalidRun)
}

func TestNewSQLiteStorage(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)

	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Migrate(context.Background()))
}
