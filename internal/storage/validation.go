package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/sweep/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun checks that a run can be written.
func validateRun(run *Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.Table == nil {
		return fmt.Errorf("%w: missing table", ErrInvalidRun)
	}

	seen := make(map[int]struct{}, len(run.Table.Records))
	for i, rec := range run.Table.Records {
		if _, dup := seen[rec.Row]; dup {
			return fmt.Errorf("%w: record at index %d repeats row %d", ErrInvalidRun, i, rec.Row)
		}
		seen[rec.Row] = struct{}{}
	}

	for i, p := range run.Periods {
		if err := validatePeriod(p); err != nil {
			return fmt.Errorf("period at index %d: %w", i, err)
		}
	}
	return nil
}

func validatePeriod(p model.Period) error {
	if p.Name == "" {
		return fmt.Errorf("%w: period without name", ErrInvalidRun)
	}
	if !p.Valid() {
		return fmt.Errorf("%w: period %s ends before it starts", ErrInvalidRun, p.Name)
	}
	return nil
}
