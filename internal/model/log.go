package model

import "time"

// FrictionSkipped is the reason value that marks a non-completion.
// Any other reason (or none) still counts as a completion for scoring.
const FrictionSkipped = "skipped"

// CompletionLogEntry is one append-only record of a habit outcome,
// attributed to at most one identity. IdentityID empty means the
// completion is unattributed and contributes to no identity score.
type CompletionLogEntry struct {
	ID                  string    `json:"id"`
	TaskID              string    `json:"task_id"`
	IdentityID          string    `json:"identity_id,omitempty"`
	WasTwoMinuteVersion bool      `json:"was_two_minute_version"`
	FrictionReason      string    `json:"friction_reason,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// CountsForScore reports whether the entry earns points: everything
// except an explicit skip.
func (e *CompletionLogEntry) CountsForScore() bool {
	return e.FrictionReason != FrictionSkipped
}

// DayLogEntry records that every scheduled task on a page was complete
// on a calendar day. Dates are "2006-01-02". At most one entry exists
// per (date, page), enforced by check-before-insert.
type DayLogEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Page         Page      `json:"page"`
	AllCompleted bool      `json:"all_completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// DateFormat is the calendar-day layout used by day logs.
const DateFormat = "2006-01-02"

// DateOf formats a point in time as a day-log date.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDay reports whether two instants fall on the same calendar day
// in the local zone.
func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}
