package habit

import (
	"time"

	"github.com/existflow/glow/internal/model"
)

// PointsPerCompletion is the score value of one counting ledger entry.
const PointsPerCompletion = 10

// CompletionEntries builds the ledger fan-out for a full completion:
// one entry per tagged identity, all sharing the same timestamp and
// two-minute flag. A task with no identity tags produces no entries
// and therefore no score.
func CompletionEntries(taskID string, identityIDs []string, twoMinute bool, at time.Time) []model.CompletionLogEntry {
	entries := make([]model.CompletionLogEntry, 0, len(identityIDs))
	for _, id := range identityIDs {
		entries = append(entries, model.CompletionLogEntry{
			TaskID:              taskID,
			IdentityID:          id,
			WasTwoMinuteVersion: twoMinute,
			OccurredAt:          at,
		})
	}
	return entries
}

// FrictionEntry builds the single ledger entry for a skipped or
// partially-done habit, attributed to at most one identity. An empty
// reason records the literal "skipped" marker.
func FrictionEntry(taskID, identityID, reason string, at time.Time) model.CompletionLogEntry {
	if reason == "" {
		reason = model.FrictionSkipped
	}
	return model.CompletionLogEntry{
		TaskID:         taskID,
		IdentityID:     identityID,
		FrictionReason: reason,
		OccurredAt:     at,
	}
}

// DailyScore folds the ledger into the glow score for one calendar
// day: ten points per entry on that day whose reason is not "skipped".
// Always recomputed from the entries, never cached.
func DailyScore(entries []model.CompletionLogEntry, asOf time.Time) int {
	score := 0
	for i := range entries {
		e := &entries[i]
		if model.SameDay(e.OccurredAt, asOf) && e.CountsForScore() {
			score += PointsPerCompletion
		}
	}
	return score
}

// IdentityScore folds the ledger into an identity's lifetime score,
// with the same counting rule and no date bound. Unattributed entries
// contribute to no identity.
func IdentityScore(entries []model.CompletionLogEntry, identityID string) int {
	if identityID == "" {
		return 0
	}
	score := 0
	for i := range entries {
		e := &entries[i]
		if e.IdentityID == identityID && e.CountsForScore() {
			score += PointsPerCompletion
		}
	}
	return score
}
