package booking

import (
	"fmt"
	"time"

	"pitchbook/models"
)

const dateLayout = "2006-01-02"

// RecurringDates expands a recurrence into concrete dates. The origin date
// itself is excluded; the end date is included when a step lands on it.
func RecurringDates(origin, end, frequency string) ([]string, error) {
	from, err := time.Parse(dateLayout, origin)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", origin)
	}
	until, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", end)
	}

	var step func(time.Time) time.Time
	switch frequency {
	case models.FreqWeekly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case models.FreqBiweekly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 14) }
	case models.FreqMonthly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	default:
		return nil, fmt.Errorf("unknown frequency %q", frequency)
	}

	var dates []string
	for d := step(from); !d.After(until); d = step(d) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
