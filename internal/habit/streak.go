package habit

import (
	"time"

	"github.com/existflow/glow/internal/model"
)

// streakLookback caps the backward walk at one year of history.
const streakLookback = 365

// CurrentStreak counts the consecutive fully-completed days for one
// page ending today. Today itself counts if logged, but an unlogged
// today does not break the run; the first unlogged *past* day does.
func CurrentStreak(logs []model.DayLogEntry, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	logged := make(map[string]bool, len(logs))
	for i := range logs {
		if logs[i].AllCompleted {
			logged[logs[i].Date] = true
		}
	}

	streak := 0
	for i := 0; i <= streakLookback; i++ {
		day := model.DateOf(today.AddDate(0, 0, -i))
		if logged[day] {
			streak++
			continue
		}
		if i == 0 {
			// Today may simply not be finished yet.
			continue
		}
		break
	}
	return streak
}
