package period

import (
	"time"

	"github.com/Veraticus/sweep/internal/model"
)

// Default period names.
const (
	DoubleDay = "Double Day"
	MidMonth  = "Mid Month"
	PayDay    = "Pay Day"
)

// GenerateDefaults returns the monthly calendar periods for every month
// touched by [minDate, maxDate]: Double Day (1st to 13th), Mid Month (14th
// to 20th) and Pay Day (21st to month end). Periods are clipped to the
// range and omitted when the clip leaves nothing. Months reuse the same
// names; the registry tells them apart by range.
func GenerateDefaults(minDate, maxDate time.Time) []model.Period {
	lo, hi := model.Day(minDate), model.Day(maxDate)
	if lo.After(hi) {
		return nil
	}

	var out []model.Period
	for month := model.Date(lo.Year(), lo.Month(), 1); !month.After(hi); month = month.AddDate(0, 1, 0) {
		y, m := month.Year(), month.Month()
		last := month.AddDate(0, 1, -1).Day()

		spans := []struct {
			name     string
			from, to int
		}{
			{DoubleDay, 1, 13},
			{MidMonth, 14, 20},
			{PayDay, 21, last},
		}

		for _, s := range spans {
			start := model.Date(y, m, s.from)
			end := model.Date(y, m, s.to)
			if start.Before(lo) {
				start = lo
			}
			if end.After(hi) {
				end = hi
			}
			if start.After(end) {
				continue
			}
			out = append(out, model.NewPeriod(s.name, start, end))
		}
	}

	return out
}
