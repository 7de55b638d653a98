package habit

import (
	"github.com/existflow/glow/internal/model"
)

// dayComplete reports whether every task scheduled for the given
// weekday on a page is complete. An empty day is never complete: zero
// scheduled tasks must not produce a day log.
func dayComplete(tasks []model.Task, page model.Page, day model.Weekday) bool {
	found := false
	for i := range tasks {
		t := &tasks[i]
		if t.Page != page || !t.OnWeekday(day) {
			continue
		}
		if !t.Completed {
			return false
		}
		found = true
	}
	return found
}

// hasDayLog reports whether a (date, page) pair is already logged.
// Uniqueness is check-before-insert, not a storage constraint.
func hasDayLog(logs []model.DayLogEntry, date string, page model.Page) bool {
	for i := range logs {
		if logs[i].Date == date && logs[i].Page == page {
			return true
		}
	}
	return false
}
