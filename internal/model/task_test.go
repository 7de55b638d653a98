package model

import (
	"testing"
	"time"
)

func TestParsePage(t *testing.T) {
	for _, s := range []string{"daily", "work"} {
		if _, err := ParsePage(s); err != nil {
			t.Errorf("ParsePage(%q): %v", s, err)
		}
	}
	if _, err := ParsePage("weekend"); err == nil {
		t.Error("expected error for unknown page")
	}
}

func TestParseWeekday(t *testing.T) {
	if d, err := ParseWeekday("Thursday"); err != nil || d != Thursday {
		t.Errorf("got %v, %v", d, err)
	}
	if _, err := ParseWeekday("thursday"); err == nil {
		t.Error("weekday names are case sensitive")
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2026-08-25 is a Tuesday.
	tuesday := time.Date(2026, 8, 25, 10, 0, 0, 0, time.Local)
	if got := WeekdayOf(tuesday); got != Tuesday {
		t.Errorf("got %v, want Tuesday", got)
	}
}

func TestOnWeekday(t *testing.T) {
	t.Run("all-day tasks belong to every day", func(t *testing.T) {
		task := Task{Schedule: AllDay(), Weekdays: []Weekday{Monday}}
		for _, d := range AllWeekdays {
			if !task.OnWeekday(d) {
				t.Errorf("all-day task should be on %s", d)
			}
		}
	})

	t.Run("timed tasks stay on their days", func(t *testing.T) {
		task := Task{Schedule: At("09:00"), Weekdays: []Weekday{Tuesday, Friday}}
		if !task.OnWeekday(Tuesday) || !task.OnWeekday(Friday) {
			t.Error("task should be on its scheduled days")
		}
		if task.OnWeekday(Monday) {
			t.Error("task should not be on Monday")
		}
	})
}

func TestFirstIdentity(t *testing.T) {
	task := Task{IdentityTags: []string{"a", "b"}}
	if got := task.FirstIdentity(); got != "a" {
		t.Errorf("got %q", got)
	}
	untagged := Task{}
	if got := untagged.FirstIdentity(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCountsForScore(t *testing.T) {
	cases := []struct {
		reason string
		want   bool
	}{
		{"", true},
		{"was traveling", true},
		{FrictionSkipped, false},
	}
	for _, tc := range cases {
		e := CompletionLogEntry{FrictionReason: tc.reason}
		if got := e.CountsForScore(); got != tc.want {
			t.Errorf("reason %q: got %v, want %v", tc.reason, got, tc.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 25, 0, 30, 0, 0, time.Local)
	night := time.Date(2026, 8, 25, 23, 30, 0, 0, time.Local)
	next := time.Date(2026, 8, 26, 0, 30, 0, 0, time.Local)

	if !SameDay(morning, night) {
		t.Error("same calendar day expected")
	}
	if SameDay(night, next) {
		t.Error("different calendar days expected")
	}
}
