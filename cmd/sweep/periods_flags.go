package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/period"
)

// parseManualPeriods parses --period values of the form
// "name,DD/MM/YYYY,DD/MM/YYYY". Only the shape and the dates are checked;
// range validity is left to the registry.
func parseManualPeriods(values []string) ([]model.Period, error) {
	periods := make([]model.Period, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --period %q: want name,start,end", v)
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("invalid --period %q: missing name", v)
		}
		start, err := period.ParseDate(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid --period %q: start: %w", v, err)
		}
		end, err := period.ParseDate(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid --period %q: end: %w", v, err)
		}

		periods = append(periods, model.NewPeriod(name, start, end))
	}
	return periods, nil
}
