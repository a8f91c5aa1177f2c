package period

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/observability"
)

// ImportDateLayout is the day/month/year form of bulk period files.
const ImportDateLayout = "02/01/2006"

// Bulk import columns.
const (
	ColumnName  = "period_name"
	ColumnStart = "start_date"
	ColumnEnd   = "end_date"
)

// ImportRow is one row of a bulk period file. Line is the 1-based source
// line used in diagnostics.
type ImportRow struct {
	Name  string
	Start string
	End   string
	Line  int
}

// RowResult reports what happened to one import row. Err is nil only for
// accepted rows.
type RowResult struct {
	Err       error
	Period    model.Period
	Line      int
	Admission Admission
	Skipped   bool
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Rows     []RowResult
	Accepted int
	Rejected int
	Skipped  int
}

// Import feeds bulk rows to the registry in order. Rows with a blank
// field, an unparseable date, or start after end are skipped; the rest go
// through TryAdd. One bad row never stops the import.
func (r *Registry) Import(rows []ImportRow) ImportReport {
	var report ImportReport

	for _, row := range rows {
		p, err := ParseRow(row)
		if err != nil {
			slog.Warn("Skipping period row", "line", row.Line, "error", err)
			observability.PeriodAdmissions.WithLabelValues(SourceBulk, "skipped").Inc()
			report.Skipped++
			report.Rows = append(report.Rows, RowResult{Line: row.Line, Skipped: true, Err: err})
			continue
		}

		a := r.admit(p, SourceBulk)
		result := RowResult{Line: row.Line, Period: p, Admission: a}
		if a == Accepted {
			report.Accepted++
		} else {
			result.Err = fmt.Errorf("line %d: %w", row.Line, a.Err())
			report.Rejected++
		}
		report.Rows = append(report.Rows, result)
	}

	slog.Info("Imported periods",
		"accepted", report.Accepted,
		"rejected", report.Rejected,
		"skipped", report.Skipped)

	return report
}

// ParseRow validates a bulk row and converts it into a period.
func ParseRow(row ImportRow) (model.Period, error) {
	name := strings.TrimSpace(row.Name)
	startRaw := strings.TrimSpace(row.Start)
	endRaw := strings.TrimSpace(row.End)

	switch {
	case name == "":
		return model.Period{}, fmt.Errorf("line %d: missing %s", row.Line, ColumnName)
	case startRaw == "":
		return model.Period{}, fmt.Errorf("line %d: missing %s", row.Line, ColumnStart)
	case endRaw == "":
		return model.Period{}, fmt.Errorf("line %d: missing %s", row.Line, ColumnEnd)
	}

	start, err := ParseDate(startRaw)
	if err != nil {
		return model.Period{}, fmt.Errorf("line %d: %s: %w", row.Line, ColumnStart, err)
	}
	end, err := ParseDate(endRaw)
	if err != nil {
		return model.Period{}, fmt.Errorf("line %d: %s: %w", row.Line, ColumnEnd, err)
	}

	p := model.NewPeriod(name, start, end)
	if !p.Valid() {
		return model.Period{}, fmt.Errorf("line %d: %w", row.Line, ErrInvalidRange)
	}
	return p, nil
}

// ParseDate parses a day/month/year date. Single-digit days and months are
// accepted, and a trailing time of day is ignored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if date, _, found := strings.Cut(s, " "); found {
		s = date
	}

	for _, layout := range []string{ImportDateLayout, "2/1/2006", "02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY", s)
}
