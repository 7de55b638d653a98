package cli

import (
	"testing"

	"github.com/existflow/glow/internal/model"
)

func TestParseWeekdays(t *testing.T) {
	t.Run("lowercase names as in the flag help", func(t *testing.T) {
		days, err := parseWeekdays([]string{"monday,wednesday,friday"})
		if err != nil {
			t.Fatalf("parseWeekdays failed: %v", err)
		}
		want := []model.Weekday{model.Monday, model.Wednesday, model.Friday}
		if len(days) != len(want) {
			t.Fatalf("days = %v, want %v", days, want)
		}
		for i := range want {
			if days[i] != want[i] {
				t.Errorf("days[%d] = %v, want %v", i, days[i], want[i])
			}
		}
	})

	t.Run("mixed case and spaces", func(t *testing.T) {
		days, err := parseWeekdays([]string{" TUESDAY ", "Thursday"})
		if err != nil {
			t.Fatalf("parseWeekdays failed: %v", err)
		}
		if len(days) != 2 || days[0] != model.Tuesday || days[1] != model.Thursday {
			t.Errorf("days = %v, want [Tuesday Thursday]", days)
		}
	})

	t.Run("unknown day is an error", func(t *testing.T) {
		if _, err := parseWeekdays([]string{"someday"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("empty tokens are skipped", func(t *testing.T) {
		days, err := parseWeekdays([]string{"monday,,"})
		if err != nil {
			t.Fatalf("parseWeekdays failed: %v", err)
		}
		if len(days) != 1 || days[0] != model.Monday {
			t.Errorf("days = %v, want [Monday]", days)
		}
	})
}

func TestBuildRecurrence(t *testing.T) {
	t.Run("none needs exactly one day", func(t *testing.T) {
		if _, err := buildRecurrence("none", nil, false); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("thrice keeps lowercase picks", func(t *testing.T) {
		rec, err := buildRecurrence("thrice", []string{"monday,wednesday,friday"}, false)
		if err != nil {
			t.Fatalf("buildRecurrence failed: %v", err)
		}
		if rec.Kind != model.RecurrenceThrice || len(rec.Days) != 3 {
			t.Errorf("rec = %+v, want thrice with 3 days", rec)
		}
	})
}
