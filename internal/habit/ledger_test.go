package habit

import (
	"testing"
	"time"

	"github.com/existflow/glow/internal/model"
)

func TestCompletionEntries(t *testing.T) {
	at := time.Date(2026, 8, 28, 9, 30, 0, 0, time.Local)

	t.Run("one entry per identity with a shared timestamp", func(t *testing.T) {
		entries := CompletionEntries("t1", []string{"a", "b", "c"}, false, at)
		if len(entries) != 3 {
			t.Fatalf("len(entries) = %d, want 3", len(entries))
		}
		for _, e := range entries {
			if e.TaskID != "t1" || !e.OccurredAt.Equal(at) || e.WasTwoMinuteVersion {
				t.Errorf("unexpected entry: %+v", e)
			}
			if e.FrictionReason != "" {
				t.Errorf("FrictionReason = %q, want unset", e.FrictionReason)
			}
		}
	})

	t.Run("no identities means no entries", func(t *testing.T) {
		if entries := CompletionEntries("t1", nil, false, at); len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
	})
}

func TestFrictionEntry(t *testing.T) {
	at := time.Now()

	t.Run("empty reason records the skip marker", func(t *testing.T) {
		e := FrictionEntry("t1", "a", "", at)
		if e.FrictionReason != model.FrictionSkipped {
			t.Errorf("FrictionReason = %q, want %q", e.FrictionReason, model.FrictionSkipped)
		}
	})

	t.Run("a user reason is kept verbatim", func(t *testing.T) {
		e := FrictionEntry("t1", "", "too tired", at)
		if e.FrictionReason != "too tired" {
			t.Errorf("FrictionReason = %q, want %q", e.FrictionReason, "too tired")
		}
		if e.IdentityID != "" {
			t.Errorf("IdentityID = %q, want unattributed", e.IdentityID)
		}
	})
}

func TestDailyScore(t *testing.T) {
	today := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)

	t.Run("skipped entries do not score", func(t *testing.T) {
		entries := append(
			CompletionEntries("t1", []string{"a", "b", "c"}, false, today),
			FrictionEntry("t2", "a", "", today),
		)
		if got := DailyScore(entries, today); got != 30 {
			t.Errorf("score = %d, want 30", got)
		}
	})

	t.Run("other days do not count", func(t *testing.T) {
		entries := CompletionEntries("t1", []string{"a"}, false, today.AddDate(0, 0, -1))
		if got := DailyScore(entries, today); got != 0 {
			t.Errorf("score = %d, want 0", got)
		}
	})

	t.Run("friction reasons other than skipped still score", func(t *testing.T) {
		entries := []model.CompletionLogEntry{FrictionEntry("t1", "a", "only half of it", today)}
		if got := DailyScore(entries, today); got != 10 {
			t.Errorf("score = %d, want 10", got)
		}
	})

	t.Run("two minute completions score normally", func(t *testing.T) {
		entries := CompletionEntries("t1", []string{"a"}, true, today)
		if got := DailyScore(entries, today); got != 10 {
			t.Errorf("score = %d, want 10", got)
		}
	})
}

func TestIdentityScore(t *testing.T) {
	at := time.Now()
	entries := []model.CompletionLogEntry{
		{TaskID: "t1", IdentityID: "a", OccurredAt: at},
		{TaskID: "t2", IdentityID: "a", OccurredAt: at.AddDate(0, 0, -40)},
		{TaskID: "t3", IdentityID: "b", OccurredAt: at},
		{TaskID: "t4", OccurredAt: at}, // unattributed
		{TaskID: "t5", IdentityID: "a", FrictionReason: model.FrictionSkipped, OccurredAt: at},
	}

	if got := IdentityScore(entries, "a"); got != 20 {
		t.Errorf("score(a) = %d, want 20", got)
	}
	if got := IdentityScore(entries, "b"); got != 10 {
		t.Errorf("score(b) = %d, want 10", got)
	}
	if got := IdentityScore(entries, ""); got != 0 {
		t.Errorf("score(\"\") = %d, want 0", got)
	}
}
