package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/sweep/internal/model"
)

// Run is one cleaning run to persist.
type Run struct {
	Table    *model.Table
	ID       string
	Source   string
	Stages   []string
	Periods  []model.Period
	Chunks   int
	Duration time.Duration
}

// SaveRun writes a run, its records and its periods in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, row_count, chunk_count, stages, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Table.Len(), run.Chunks,
		strings.Join(run.Stages, ","), run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err = saveRecordsTx(ctx, tx, run.ID, run.Table.Records); err != nil {
		return err
	}
	if err = savePeriodsTx(ctx, tx, run.ID, run.Periods); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	slog.Debug("Saved run to SQLite", "run_id", run.ID, "records", run.Table.Len(), "path", s.dbPath)
	return nil
}

func saveRecordsTx(ctx context.Context, tx *sql.Tx, runID string, records []model.Record) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			run_id, row, source_values, brand, size, format, kol, gift,
			clean_province, period, warehouse_region, created_date,
			created_year_month, fsp, subtotal_usd, voucher
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		values, err := json.Marshal(rec.Values)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", rec.Row, err)
		}

		a := rec.Attributes
		_, err = stmt.ExecContext(ctx,
			runID, rec.Row, string(values),
			nullString(a.Brand), nullString(a.Size), nullString(a.Format),
			nullString(a.KOL), nullString(a.Gift), nullString(a.CleanProvince),
			nullString(a.Period), nullString(a.WarehouseRegion),
			nullString(a.CreatedDate), nullString(a.CreatedYearMonth),
			nullFloat(a.FSP), nullFloat(a.SubtotalUSD), nullFloat(a.Voucher),
		)
		if err != nil {
			return fmt.Errorf("failed to insert row %d: %w", rec.Row, err)
		}
	}
	return nil
}

func savePeriodsTx(ctx context.Context, tx *sql.Tx, runID string, periods []model.Period) error {
	for _, p := range periods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO periods (run_id, name, start_date, end_date)
			VALUES (?, ?, ?, ?)`,
			runID, p.Name, p.Start.Format(model.DateLayout), p.End.Format(model.DateLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to insert period %s: %w", p.Name, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
