package model

import (
	"fmt"
	"time"
)

// Page identifies which board a task lives on.
type Page string

const (
	PageDaily Page = "daily"
	PageWork  Page = "work"
)

// Pages lists all boards in display order.
var Pages = []Page{PageDaily, PageWork}

// ParsePage validates a page name.
func ParsePage(s string) (Page, error) {
	switch Page(s) {
	case PageDaily, PageWork:
		return Page(s), nil
	}
	return "", fmt.Errorf("unknown page: %q", s)
}

// Weekday is a named day of the week, Monday first.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// AllWeekdays lists the seven weekdays Monday through Sunday.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the weekday name for a point in time.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// ParseWeekday validates a weekday name.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range AllWeekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday: %q", s)
}

// RecurrenceKind is how often a habit repeats.
type RecurrenceKind string

const (
	RecurrenceNone   RecurrenceKind = "none"
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceTwice  RecurrenceKind = "twice"
	RecurrenceThrice RecurrenceKind = "thrice"
)

// Recurrence is the user's repeat choice at creation time. Day is set
// for kind none; Days for twice/thrice. Once a task's weekday set is
// resolved the recurrence is informational only and never re-expanded.
type Recurrence struct {
	Kind RecurrenceKind `json:"kind"`
	Day  Weekday        `json:"day,omitempty"`
	Days []Weekday      `json:"days,omitempty"`
}

// Schedule is when in the day a habit happens: a clock time or all day.
// The two are mutually exclusive; use At or AllDay.
type Schedule struct {
	AllDay bool   `json:"all_day"`
	Time   string `json:"time,omitempty"` // "15:04", empty when AllDay
}

// At returns a schedule fixed to a clock time.
func At(hhmm string) Schedule {
	return Schedule{Time: hhmm}
}

// AllDay returns a schedule with no fixed time.
func AllDay() Schedule {
	return Schedule{AllDay: true}
}

// Task is a single habit on a page. Weekdays is derived once from the
// recurrence choice at creation and never recomputed. Completed is the
// current flag only; history lives in the completion and day logs.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	Completed        bool       `json:"completed"`
	Page             Page       `json:"page"`
	Weekdays         []Weekday  `json:"weekdays"`
	Schedule         Schedule   `json:"schedule"`
	IdentityTags     []string   `json:"identity_tags,omitempty"`
	TwoMinuteVersion string     `json:"two_minute_version,omitempty"`
	Recurrence       Recurrence `json:"recurrence"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// OnWeekday reports whether the task is scheduled for the given day.
// All-day tasks belong to every day.
func (t *Task) OnWeekday(day Weekday) bool {
	if t.Schedule.AllDay {
		return true
	}
	for _, d := range t.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// FirstIdentity returns the first identity tag, or "" if untagged.
func (t *Task) FirstIdentity() string {
	if len(t.IdentityTags) == 0 {
		return ""
	}
	return t.IdentityTags[0]
}
