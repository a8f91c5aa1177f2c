// Package period maintains the set of named, non-overlapping date periods
// that records are bucketed into.
package period

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/observability"
)

// NoPeriod is assigned to records whose date falls outside every period.
const NoPeriod = "No Period"

// Admission sources, used as log and metric labels.
const (
	SourceDefault = "default"
	SourceManual  = "manual"
	SourceBulk    = "bulk"
)

// Admission errors.
var (
	ErrInvalidRange    = errors.New("start date is after end date")
	ErrDuplicateTriple = errors.New("period already exists")
	ErrDuplicateRange  = errors.New("a period with the same dates already exists")
	ErrOverlap         = errors.New("period overlaps an existing period")
)

// Admission is the outcome of offering a period to a registry.
type Admission int

// Admission outcomes, in the order the checks run.
const (
	Accepted Admission = iota
	RejectedInvalidRange
	RejectedDuplicateTriple
	RejectedDuplicateRange
	RejectedOverlap
)

func (a Admission) String() string {
	switch a {
	case Accepted:
		return "accepted"
	case RejectedInvalidRange:
		return "invalid_range"
	case RejectedDuplicateTriple:
		return "duplicate"
	case RejectedDuplicateRange:
		return "duplicate_range"
	case RejectedOverlap:
		return "overlap"
	}
	return "unknown"
}

// Err returns the sentinel error of a rejection, or nil when accepted.
func (a Admission) Err() error {
	switch a {
	case RejectedInvalidRange:
		return ErrInvalidRange
	case RejectedDuplicateTriple:
		return ErrDuplicateTriple
	case RejectedDuplicateRange:
		return ErrDuplicateRange
	case RejectedOverlap:
		return ErrOverlap
	}
	return nil
}

// Decision pairs a candidate period with its admission outcome.
type Decision struct {
	Period    model.Period
	Admission Admission
}

// Registry holds mutually non-overlapping periods in insertion order.
// It is built once and then only read, but every method is safe for
// concurrent use.
type Registry struct {
	periods []model.Period
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// TryAdd admits p unless it is invalid, a duplicate, or overlaps a member.
func (r *Registry) TryAdd(p model.Period) Admission {
	p = model.NewPeriod(p.Name, p.Start, p.End)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !p.Valid() {
		return RejectedInvalidRange
	}

	for _, existing := range r.periods {
		if existing.Equal(p) {
			return RejectedDuplicateTriple
		}
	}
	for _, existing := range r.periods {
		if existing.SameRange(p) {
			return RejectedDuplicateRange
		}
	}
	for _, existing := range r.periods {
		if existing.Overlaps(p) {
			return RejectedOverlap
		}
	}

	r.periods = append(r.periods, p)
	return Accepted
}

// Reset removes every period.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods = nil
}

// Periods returns a copy of the members in insertion order.
func (r *Registry) Periods() []model.Period {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Period(nil), r.periods...)
}

// Len returns the number of members.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.periods)
}

// Assign returns the name of the period containing the calendar date of t,
// or NoPeriod. A zero time is never assigned.
func (r *Registry) Assign(t time.Time) string {
	if t.IsZero() {
		return NoPeriod
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.periods {
		if p.Contains(t) {
			return p.Name
		}
	}
	return NoPeriod
}

// AddDefaults offers the default calendar periods covering [minDate, maxDate].
func (r *Registry) AddDefaults(minDate, maxDate time.Time) []Decision {
	candidates := GenerateDefaults(minDate, maxDate)
	decisions := make([]Decision, 0, len(candidates))
	for _, p := range candidates {
		decisions = append(decisions, Decision{Period: p, Admission: r.admit(p, SourceDefault)})
	}
	return decisions
}

// AddManual offers a single operator-entered period.
func (r *Registry) AddManual(name string, start, end time.Time) Admission {
	return r.admit(model.NewPeriod(name, start, end), SourceManual)
}

func (r *Registry) admit(p model.Period, source string) Admission {
	a := r.TryAdd(p)
	observability.PeriodAdmissions.WithLabelValues(source, a.String()).Inc()

	if a == Accepted {
		slog.Debug("Period added", "source", source, "period", p.String())
	} else {
		slog.Warn("Period rejected", "source", source, "period", p.String(), "reason", a.Err())
	}
	return a
}
