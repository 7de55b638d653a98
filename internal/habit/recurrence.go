package habit

import (
	"time"

	"github.com/existflow/glow/internal/model"
)

// Today is the sentinel day choice meaning "whatever weekday it is
// right now". It resolves once, at task creation, and is never
// re-evaluated afterwards.
const Today model.Weekday = "Today"

// ExpandRecurrence turns a recurrence choice into the concrete weekday
// set stored on a task. The result is never empty.
//
// Twice and thrice take the user's explicit day picks verbatim: the
// count is deliberately not checked against the kind, so "twice" with
// one or four days is accepted as-is.
func ExpandRecurrence(rec model.Recurrence, now time.Time) ([]model.Weekday, error) {
	switch rec.Kind {
	case model.RecurrenceNone:
		if rec.Day == "" {
			return nil, invalid("day", "a day is required for a non-repeating habit")
		}
		day := rec.Day
		if day == Today {
			day = model.WeekdayOf(now)
		} else if _, err := model.ParseWeekday(string(day)); err != nil {
			return nil, invalid("day", err.Error())
		}
		return []model.Weekday{day}, nil

	case model.RecurrenceDaily:
		return append([]model.Weekday(nil), model.AllWeekdays...), nil

	case model.RecurrenceTwice, model.RecurrenceThrice:
		if len(rec.Days) == 0 {
			return nil, invalid("days", "pick at least one day")
		}
		seen := make(map[model.Weekday]bool, len(rec.Days))
		var days []model.Weekday
		for _, d := range rec.Days {
			if _, err := model.ParseWeekday(string(d)); err != nil {
				return nil, invalid("days", err.Error())
			}
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
		return days, nil
	}
	return nil, invalid("recurrence", "unknown kind "+string(rec.Kind))
}
