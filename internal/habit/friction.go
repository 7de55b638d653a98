package habit

import "github.com/existflow/glow/internal/model"

// FrictionChoice is one of the three exits from the friction prompt
// shown when the user tries to uncomplete a task.
type FrictionChoice int

const (
	// FrictionTwoMinute: the reduced-effort version was done. Counts
	// as a completion, flagged distinctly; the task stays complete.
	FrictionTwoMinute FrictionChoice = iota
	// FrictionCompletedWithReason: the habit happened, with a caveat
	// the user wants on record. The task stays complete.
	FrictionCompletedWithReason
	// FrictionSkipped: the habit did not happen today. The only exit
	// that returns the task to pending.
	FrictionSkipped
)

// FrictionPrompt is returned by Toggle when the user tries to
// uncomplete a task. Nothing has been written yet; the presentation
// layer must resolve it via ResolveFriction. There is no silent
// uncomplete.
type FrictionPrompt struct {
	Task model.Task
}

// ToggleResult reports what a toggle did. When Friction is non-nil the
// toggle is pending a friction decision and no state was changed.
type ToggleResult struct {
	Completed bool
	Friction  *FrictionPrompt
}
