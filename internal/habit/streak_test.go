package habit

import (
	"testing"
	"time"

	"github.com/existflow/glow/internal/model"
)

func dayLog(t time.Time, page model.Page) model.DayLogEntry {
	return model.DayLogEntry{Date: model.DateOf(t), Page: page, AllCompleted: true}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2026, 8, 28, 18, 0, 0, 0, time.Local)

	t.Run("empty log is streak zero", func(t *testing.T) {
		if got := CurrentStreak(nil, today); got != 0 {
			t.Errorf("streak = %d, want 0", got)
		}
	})

	t.Run("yesterday and today count as two", func(t *testing.T) {
		logs := []model.DayLogEntry{
			dayLog(today.AddDate(0, 0, -1), model.PageDaily),
			dayLog(today, model.PageDaily),
		}
		if got := CurrentStreak(logs, today); got != 2 {
			t.Errorf("streak = %d, want 2", got)
		}
	})

	t.Run("an unlogged today does not break the run", func(t *testing.T) {
		logs := []model.DayLogEntry{
			dayLog(today.AddDate(0, 0, -2), model.PageDaily),
			dayLog(today.AddDate(0, 0, -1), model.PageDaily),
		}
		if got := CurrentStreak(logs, today); got != 2 {
			t.Errorf("streak = %d, want 2", got)
		}
	})

	t.Run("a gap at yesterday ends the streak", func(t *testing.T) {
		logs := []model.DayLogEntry{
			dayLog(today.AddDate(0, 0, -3), model.PageDaily),
		}
		if got := CurrentStreak(logs, today); got != 0 {
			t.Errorf("streak = %d, want 0", got)
		}
	})

	t.Run("walk stops at the first missing past day", func(t *testing.T) {
		logs := []model.DayLogEntry{
			dayLog(today, model.PageDaily),
			dayLog(today.AddDate(0, 0, -1), model.PageDaily),
			// -2 missing
			dayLog(today.AddDate(0, 0, -3), model.PageDaily),
		}
		if got := CurrentStreak(logs, today); got != 2 {
			t.Errorf("streak = %d, want 2", got)
		}
	})

	t.Run("history past a year is ignored", func(t *testing.T) {
		var logs []model.DayLogEntry
		for i := 0; i < 500; i++ {
			logs = append(logs, dayLog(today.AddDate(0, 0, -i), model.PageDaily))
		}
		if got := CurrentStreak(logs, today); got != streakLookback+1 {
			t.Errorf("streak = %d, want %d", got, streakLookback+1)
		}
	})
}
