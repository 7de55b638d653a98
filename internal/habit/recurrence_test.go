package habit

import (
	"errors"
	"testing"
	"time"

	"github.com/existflow/glow/internal/model"
)

// a known Tuesday
var tuesday = time.Date(2026, 8, 25, 10, 0, 0, 0, time.Local)

func TestExpandRecurrence(t *testing.T) {
	t.Run("none yields exactly the chosen day", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{Kind: model.RecurrenceNone, Day: model.Friday}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 1 || days[0] != model.Friday {
			t.Errorf("days = %v, want [Friday]", days)
		}
	})

	t.Run("today sentinel resolves at creation time", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{Kind: model.RecurrenceNone, Day: Today}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 1 || days[0] != model.Tuesday {
			t.Errorf("days = %v, want [Tuesday]", days)
		}
	})

	t.Run("none without a day is a validation error", func(t *testing.T) {
		_, err := ExpandRecurrence(model.Recurrence{Kind: model.RecurrenceNone}, tuesday)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("daily yields all seven days", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{Kind: model.RecurrenceDaily}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 7 {
			t.Errorf("len(days) = %d, want 7", len(days))
		}
	})

	t.Run("twice takes explicit picks verbatim", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{
			Kind: model.RecurrenceTwice,
			Days: []model.Weekday{model.Tuesday, model.Friday},
		}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 2 || days[0] != model.Tuesday || days[1] != model.Friday {
			t.Errorf("days = %v, want [Tuesday Friday]", days)
		}
	})

	t.Run("day count is not checked against the kind", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{
			Kind: model.RecurrenceTwice,
			Days: []model.Weekday{model.Monday, model.Wednesday, model.Friday, model.Sunday},
		}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 4 {
			t.Errorf("len(days) = %d, want 4", len(days))
		}
	})

	t.Run("thrice with no picks is a validation error", func(t *testing.T) {
		_, err := ExpandRecurrence(model.Recurrence{Kind: model.RecurrenceThrice}, tuesday)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("duplicate picks collapse", func(t *testing.T) {
		days, err := ExpandRecurrence(model.Recurrence{
			Kind: model.RecurrenceThrice,
			Days: []model.Weekday{model.Monday, model.Monday, model.Friday},
		}, tuesday)
		if err != nil {
			t.Fatalf("ExpandRecurrence failed: %v", err)
		}
		if len(days) != 2 {
			t.Errorf("days = %v, want [Monday Friday]", days)
		}
	})
}
