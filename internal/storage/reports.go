package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// RunInfo describes a stored run.
type RunInfo struct {
	CreatedAt time.Time
	ID        string
	Source    string
	Stages    []string
	Rows      int
	Chunks    int
	Duration  time.Duration
}

// PeriodCount is the number of records a run assigned to one period.
// Start is empty for records outside every period.
type PeriodCount struct {
	Name  string
	Start string
	End   string
	Rows  int
}

// GetRun returns a stored run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*RunInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "run ID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, row_count, chunk_count, stages, duration_ms, created_at
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun returns the most recently stored run.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (*RunInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, row_count, chunk_count, stages, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*RunInfo, error) {
	var info RunInfo
	var stages string
	var durationMS int64
	err := row.Scan(&info.ID, &info.Source, &info.Rows, &info.Chunks, &stages, &durationMS, &info.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if stages != "" {
		info.Stages = strings.Split(stages, ",")
	}
	info.Duration = time.Duration(durationMS) * time.Millisecond
	return &info, nil
}

// PeriodCounts returns how many records of a run fall in each period,
// ordered by period start. Records without a period are reported last
// under their stored label.
func (s *SQLiteStorage) PeriodCounts(ctx context.Context, runID string) ([]PeriodCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "run ID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.period, COALESCE(p.start_date, ''), COALESCE(p.end_date, ''), COUNT(*)
		FROM records r
		LEFT JOIN periods p
			ON p.run_id = r.run_id
			AND p.name = r.period
			AND r.created_date BETWEEN p.start_date AND p.end_date
		WHERE r.run_id = ? AND r.period IS NOT NULL
		GROUP BY r.period, p.start_date, p.end_date
		ORDER BY p.start_date IS NULL, p.start_date`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query period counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []PeriodCount
	for rows.Next() {
		var c PeriodCount
		if err := rows.Scan(&c.Name, &c.Start, &c.End, &c.Rows); err != nil {
			return nil, fmt.Errorf("failed to scan period count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate period counts: %w", err)
	}
	return counts, nil
}
