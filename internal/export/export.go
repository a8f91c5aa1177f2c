// Package export writes cleaned tables as CSV, XLSX or SQLite.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/storage"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// Meta describes the run that produced a table. Only the SQLite sink
// stores it.
type Meta struct {
	RunID    string
	Source   string
	Stages   []string
	Periods  []model.Period
	Chunks   int
	Duration time.Duration
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", common.NewUserError(
		fmt.Sprintf("Cannot export to %q: use .csv, .xlsx or .db", filepath.Base(path)),
		fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path)),
	)
}

// Write exports table to path in the format implied by its extension.
func Write(ctx context.Context, path string, table *model.Table, meta Meta) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = WriteCSVFile(path, table)
	case FormatXLSX:
		err = WriteXLSX(path, table)
	case FormatSQLite:
		err = writeSQLite(ctx, path, table, meta)
	}
	if err != nil {
		return err
	}

	slog.Info("Exported table", "path", path, "format", format, "rows", table.Len())
	return nil
}

func writeSQLite(ctx context.Context, path string, table *model.Table, meta Meta) error {
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", path, err)
	}

	return store.SaveRun(ctx, &storage.Run{
		ID:       meta.RunID,
		Source:   meta.Source,
		Stages:   meta.Stages,
		Periods:  meta.Periods,
		Chunks:   meta.Chunks,
		Duration: meta.Duration,
		Table:    table,
	})
}

// Header returns the output header: source columns, then derived columns.
// A derived column that shares a name with a source column replaces it in
// place.
func Header(table *model.Table) []string {
	derived := make(map[string]struct{}, len(table.Derived))
	for _, c := range table.Derived {
		derived[c] = struct{}{}
	}

	header := make([]string, 0, len(table.Columns)+len(table.Derived))
	for _, c := range table.Columns {
		if _, ok := derived[c]; ok {
			continue
		}
		header = append(header, c)
	}
	return append(header, table.Derived...)
}

// Cell returns the output value of column for rec.
func Cell(rec *model.Record, column string, isDerived bool) string {
	if isDerived {
		v, _ := rec.Attributes.Derived(column)
		return v
	}
	return rec.Values[column]
}

func derivedSet(table *model.Table) map[string]bool {
	set := make(map[string]bool, len(table.Derived))
	for _, c := range table.Derived {
		set[c] = true
	}
	return set
}
