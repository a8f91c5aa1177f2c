package model

import (
	"fmt"
	"time"
)

// DateLayout is the layout used when printing period boundaries.
const DateLayout = "2006-01-02"

// Period is a named, closed date interval used to bucket records.
type Period struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Name  string    `json:"name" yaml:"name"`
}

// NewPeriod builds a period, truncating both boundaries to calendar days.
func NewPeriod(name string, start, end time.Time) Period {
	return Period{
		Name:  name,
		Start: Day(start),
		End:   Day(end),
	}
}

// Day truncates a timestamp to midnight UTC of its calendar date.
// The calendar date is read in the timestamp's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the period's start does not come after its end.
func (p Period) Valid() bool {
	return !p.Start.After(p.End)
}

// SameRange reports whether both periods cover exactly the same days.
func (p Period) SameRange(other Period) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

// Equal reports whether both periods have the same name and range.
func (p Period) Equal(other Period) bool {
	return p.Name == other.Name && p.SameRange(other)
}

// Overlaps reports whether the closed intervals share at least one day.
func (p Period) Overlaps(other Period) bool {
	return !(p.End.Before(other.Start) || p.Start.After(other.End))
}

// Contains reports whether the calendar day of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(p.Start) && !day.After(p.End)
}

// String renders the period for logs and diagnostics.
func (p Period) String() string {
	return fmt.Sprintf("%s (%s to %s)", p.Name, p.Start.Format(DateLayout), p.End.Format(DateLayout))
}
