package habit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/existflow/glow/internal/model"
	"github.com/existflow/glow/internal/store"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	svc := NewService(store.NewMemory())
	svc.now = func() time.Time { return tuesday }
	ctx := context.Background()
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return svc, ctx
}

func createTask(t *testing.T, svc *Service, ctx context.Context, in NewTaskInput) model.Task {
	t.Helper()
	task, err := svc.CreateTask(ctx, in)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	return task
}

func ledgerEntries(t *testing.T, svc *Service, ctx context.Context) []model.CompletionLogEntry {
	t.Helper()
	entries, err := svc.store.ListCompletionLogs(ctx)
	if err != nil {
		t.Fatalf("ListCompletionLogs failed: %v", err)
	}
	return entries
}

func TestCreateTask(t *testing.T) {
	t.Run("expands recurrence into the weekday set", func(t *testing.T) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title: "Morning run",
			Page:  model.PageDaily,
			Recurrence: model.Recurrence{
				Kind: model.RecurrenceTwice,
				Days: []model.Weekday{model.Tuesday, model.Friday},
			},
		})
		if len(task.Weekdays) != 2 || task.Weekdays[0] != model.Tuesday || task.Weekdays[1] != model.Friday {
			t.Errorf("Weekdays = %v, want [Tuesday Friday]", task.Weekdays)
		}
	})

	t.Run("rejects a blank title before any store call", func(t *testing.T) {
		svc, ctx := newTestService(t)
		_, err := svc.CreateTask(ctx, NewTaskInput{
			Title:      "   ",
			Page:       model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if tasks := svc.PageTasks(model.PageDaily); len(tasks) != 0 {
			t.Errorf("tasks = %d, want 0", len(tasks))
		}
	})

	t.Run("a missing time means all day", func(t *testing.T) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:      "Drink water",
			Page:       model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if !task.Schedule.AllDay {
			t.Errorf("Schedule = %+v, want all day", task.Schedule)
		}
	})

	t.Run("rejects a malformed time", func(t *testing.T) {
		svc, ctx := newTestService(t)
		_, err := svc.CreateTask(ctx, NewTaskInput{
			Title:      "Stretch",
			Page:       model.PageDaily,
			Schedule:   model.At("9 o'clock"),
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})
}

func TestToggle(t *testing.T) {
	t.Run("direct completion fans out the ledger", func(t *testing.T) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:        "Meditate",
			Page:         model.PageDaily,
			IdentityTags: []string{"id-a", "id-b"},
			Recurrence:   model.Recurrence{Kind: model.RecurrenceDaily},
		})

		res, err := svc.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !res.Completed || res.Friction != nil {
			t.Errorf("result = %+v, want completed without friction", res)
		}

		entries := ledgerEntries(t, svc, ctx)
		if len(entries) != 2 {
			t.Fatalf("len(entries) = %d, want 2", len(entries))
		}
		for _, e := range entries {
			if e.WasTwoMinuteVersion || e.FrictionReason != "" {
				t.Errorf("unexpected entry: %+v", e)
			}
			if !e.OccurredAt.Equal(entries[0].OccurredAt) {
				t.Errorf("timestamps differ across the fan-out")
			}
		}
	})

	t.Run("an untagged task completes without scoring", func(t *testing.T) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:      "Tidy desk",
			Page:       model.PageWork,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if _, err := svc.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if entries := ledgerEntries(t, svc, ctx); len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
		if got := svc.DailyGlowScore(); got != 0 {
			t.Errorf("score = %d, want 0", got)
		}
	})

	t.Run("toggling a completed task opens friction and writes nothing", func(t *testing.T) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:        "Journal",
			Page:         model.PageDaily,
			IdentityTags: []string{"id-a"},
			Recurrence:   model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if _, err := svc.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		before := len(ledgerEntries(t, svc, ctx))

		res, err := svc.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("second Toggle failed: %v", err)
		}
		if res.Friction == nil {
			t.Fatal("want a friction prompt")
		}
		if !res.Completed {
			t.Error("task must stay complete until friction resolves")
		}
		if after := len(ledgerEntries(t, svc, ctx)); after != before {
			t.Errorf("ledger grew from %d to %d during the prompt", before, after)
		}
	})

	t.Run("unknown task id", func(t *testing.T) {
		svc, ctx := newTestService(t)
		if _, err := svc.Toggle(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestResolveFriction(t *testing.T) {
	completed := func(t *testing.T) (*Service, context.Context, model.Task) {
		svc, ctx := newTestService(t)
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:        "Read",
			Page:         model.PageDaily,
			IdentityTags: []string{"id-a", "id-b"},
			Recurrence:   model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if _, err := svc.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		return svc, ctx, task
	}

	t.Run("two minute keeps the task complete and flags the entries", func(t *testing.T) {
		svc, ctx, task := completed(t)
		if err := svc.ResolveFriction(ctx, task.ID, FrictionTwoMinute, ""); err != nil {
			t.Fatalf("ResolveFriction failed: %v", err)
		}
		entries := ledgerEntries(t, svc, ctx)
		if len(entries) != 4 {
			t.Fatalf("len(entries) = %d, want 4", len(entries))
		}
		flagged := 0
		for _, e := range entries {
			if e.WasTwoMinuteVersion {
				flagged++
			}
		}
		if flagged != 2 {
			t.Errorf("two-minute entries = %d, want 2", flagged)
		}
		if got := svc.PageTasks(model.PageDaily)[0]; !got.Completed {
			t.Error("task flipped to pending")
		}
	})

	t.Run("completed with reason writes one attributed entry", func(t *testing.T) {
		svc, ctx, task := completed(t)
		if err := svc.ResolveFriction(ctx, task.ID, FrictionCompletedWithReason, "half of it"); err != nil {
			t.Fatalf("ResolveFriction failed: %v", err)
		}
		entries := ledgerEntries(t, svc, ctx)
		last := entries[len(entries)-1]
		if last.FrictionReason != "half of it" || last.IdentityID != "id-a" {
			t.Errorf("entry = %+v, want reason attributed to first tag", last)
		}
		if got := svc.PageTasks(model.PageDaily)[0]; !got.Completed {
			t.Error("task flipped to pending")
		}
	})

	t.Run("completed with reason requires a reason", func(t *testing.T) {
		svc, ctx, task := completed(t)
		err := svc.ResolveFriction(ctx, task.ID, FrictionCompletedWithReason, "  ")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("skip returns the task to pending with exactly one entry", func(t *testing.T) {
		svc, ctx, task := completed(t)
		before := len(ledgerEntries(t, svc, ctx))
		if err := svc.ResolveFriction(ctx, task.ID, FrictionSkipped, ""); err != nil {
			t.Fatalf("ResolveFriction failed: %v", err)
		}
		entries := ledgerEntries(t, svc, ctx)
		if len(entries) != before+1 {
			t.Fatalf("ledger grew by %d, want 1", len(entries)-before)
		}
		last := entries[len(entries)-1]
		if last.FrictionReason != model.FrictionSkipped {
			t.Errorf("FrictionReason = %q, want %q", last.FrictionReason, model.FrictionSkipped)
		}
		if got := svc.PageTasks(model.PageDaily)[0]; got.Completed {
			t.Error("task still complete after skip")
		}
	})

	t.Run("skip keeps user text over the marker", func(t *testing.T) {
		svc, ctx, task := completed(t)
		if err := svc.ResolveFriction(ctx, task.ID, FrictionSkipped, "travelling"); err != nil {
			t.Fatalf("ResolveFriction failed: %v", err)
		}
		entries := ledgerEntries(t, svc, ctx)
		if last := entries[len(entries)-1]; last.FrictionReason != "travelling" {
			t.Errorf("FrictionReason = %q, want %q", last.FrictionReason, "travelling")
		}
	})
}

func TestDayLogRecording(t *testing.T) {
	t.Run("an empty day never completes", func(t *testing.T) {
		svc, ctx := newTestService(t)
		// Task on the work page only; the daily page has nothing today.
		task := createTask(t, svc, ctx, NewTaskInput{
			Title:      "Ship release",
			Page:       model.PageWork,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if _, err := svc.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		logs, _ := svc.store.ListDayLogs(ctx, model.PageDaily)
		if len(logs) != 0 {
			t.Errorf("daily page logged %d entries, want 0", len(logs))
		}
	})

	t.Run("completing the last task logs the day once", func(t *testing.T) {
		svc, ctx := newTestService(t)
		a := createTask(t, svc, ctx, NewTaskInput{
			Title: "A", Page: model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		b := createTask(t, svc, ctx, NewTaskInput{
			Title: "B", Page: model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})

		if _, err := svc.Toggle(ctx, a.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		logs, _ := svc.store.ListDayLogs(ctx, model.PageDaily)
		if len(logs) != 0 {
			t.Fatalf("day logged with a task still pending")
		}

		if _, err := svc.Toggle(ctx, b.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		logs, _ = svc.store.ListDayLogs(ctx, model.PageDaily)
		if len(logs) != 1 {
			t.Fatalf("len(logs) = %d, want 1", len(logs))
		}
		if logs[0].Date != model.DateOf(tuesday) || !logs[0].AllCompleted {
			t.Errorf("log = %+v", logs[0])
		}

		// Skip and re-complete within the same day: no duplicate.
		if err := svc.ResolveFriction(ctx, b.ID, FrictionSkipped, ""); err != nil {
			t.Fatalf("ResolveFriction failed: %v", err)
		}
		if _, err := svc.Toggle(ctx, b.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		logs, _ = svc.store.ListDayLogs(ctx, model.PageDaily)
		if len(logs) != 1 {
			t.Errorf("len(logs) = %d after re-complete, want 1", len(logs))
		}
	})

	t.Run("tasks scheduled for other weekdays do not block today", func(t *testing.T) {
		svc, ctx := newTestService(t)
		todayTask := createTask(t, svc, ctx, NewTaskInput{
			Title: "Today only", Page: model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceNone, Day: Today},
		})
		createTask(t, svc, ctx, NewTaskInput{
			Title: "Saturday thing", Page: model.PageDaily,
			Schedule:   model.At("10:00"),
			Recurrence: model.Recurrence{Kind: model.RecurrenceNone, Day: model.Saturday},
		})
		if _, err := svc.Toggle(ctx, todayTask.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		logs, _ := svc.store.ListDayLogs(ctx, model.PageDaily)
		if len(logs) != 1 {
			t.Errorf("len(logs) = %d, want 1", len(logs))
		}
	})

	t.Run("streak follows the day logs", func(t *testing.T) {
		svc, ctx := newTestService(t)
		yesterday := tuesday.AddDate(0, 0, -1)
		if _, err := svc.store.AppendDayLog(ctx, model.DayLogEntry{
			Date: model.DateOf(yesterday), Page: model.PageDaily, AllCompleted: true,
		}); err != nil {
			t.Fatalf("AppendDayLog failed: %v", err)
		}
		if err := svc.Refresh(ctx); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		task := createTask(t, svc, ctx, NewTaskInput{
			Title: "Only habit", Page: model.PageDaily,
			Recurrence: model.Recurrence{Kind: model.RecurrenceDaily},
		})
		if got := svc.CurrentStreak(model.PageDaily); got != 1 {
			t.Errorf("streak = %d before completing today, want 1", got)
		}
		if _, err := svc.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if got := svc.CurrentStreak(model.PageDaily); got != 2 {
			t.Errorf("streak = %d, want 2", got)
		}
	})
}

func TestAdoptArchetype(t *testing.T) {
	seed := func(t *testing.T) (*Service, context.Context, model.Archetype) {
		svc, ctx := newTestService(t)
		arch, err := svc.AddArchetype(ctx, model.Archetype{
			Name:              "Disciplined Creator",
			Emoji:             "🎨",
			Description:       "Makes something every day.",
			DefaultIdentities: []string{"Creator", "Finisher"},
			TemplateHabits: []model.TemplateHabit{
				{Title: "Sketch for an hour", TwoMinuteVersion: "Open the sketchbook"},
				{Title: "Publish one thing"},
			},
		})
		if err != nil {
			t.Fatalf("AddArchetype failed: %v", err)
		}
		return svc, ctx, arch
	}

	t.Run("creates identities and template tasks", func(t *testing.T) {
		svc, ctx, arch := seed(t)
		res, err := svc.AdoptArchetype(ctx, arch.ID)
		if err != nil {
			t.Fatalf("AdoptArchetype failed: %v", err)
		}
		if len(res.Identities) != 2 || len(res.Tasks) != 2 {
			t.Fatalf("result = %d identities, %d tasks; want 2 and 2", len(res.Identities), len(res.Tasks))
		}
		for _, task := range res.Tasks {
			if task.Page != model.PageDaily {
				t.Errorf("Page = %q, want daily", task.Page)
			}
			if len(task.Weekdays) != 1 || task.Weekdays[0] != model.Monday {
				t.Errorf("Weekdays = %v, want [Monday]", task.Weekdays)
			}
			if task.Schedule.Time != "09:00" {
				t.Errorf("Time = %q, want 09:00", task.Schedule.Time)
			}
			if len(task.IdentityTags) != 2 {
				t.Errorf("IdentityTags = %v, want both created identities", task.IdentityTags)
			}
		}
		if res.Tasks[0].TwoMinuteVersion != "Open the sketchbook" {
			t.Errorf("TwoMinuteVersion = %q", res.Tasks[0].TwoMinuteVersion)
		}
	})

	t.Run("unknown archetype", func(t *testing.T) {
		svc, ctx, _ := seed(t)
		if _, err := svc.AdoptArchetype(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

// End-to-end path: create a twice-weekly habit, complete it on a
// scheduled day, and observe ledger and score.
func TestCompleteOnScheduledDay(t *testing.T) {
	svc, ctx := newTestService(t)
	task := createTask(t, svc, ctx, NewTaskInput{
		Title:        "Strength training",
		Page:         model.PageDaily,
		IdentityTags: []string{"id-a"},
		Recurrence: model.Recurrence{
			Kind: model.RecurrenceTwice,
			Days: []model.Weekday{model.Tuesday, model.Friday},
		},
	})

	// The fixed clock is a Tuesday.
	if _, err := svc.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	entries := ledgerEntries(t, svc, ctx)
	if len(entries) != 1 || entries[0].WasTwoMinuteVersion {
		t.Fatalf("entries = %+v, want one plain completion", entries)
	}
	if got := svc.DailyGlowScore(); got != PointsPerCompletion {
		t.Errorf("score = %d, want %d", got, PointsPerCompletion)
	}
	if got := svc.IdentityScore("id-a"); got != PointsPerCompletion {
		t.Errorf("identity score = %d, want %d", got, PointsPerCompletion)
	}
}
