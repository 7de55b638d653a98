// Package habit implements the Glow habit model: recurrence
// expansion, the append-only completion ledger and its scores, day
// logs and streaks, and the friction workflow that guards
// uncompleting a task. All persistence goes through a store.Store;
// the Service keeps an in-memory snapshot that mutations update in
// place rather than re-fetching whole collections.
package habit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/glow/internal/logger"
	"github.com/existflow/glow/internal/model"
	"github.com/existflow/glow/internal/store"
)

// Service coordinates the habit core against the persistence store.
// It is driven by a single user session; methods are serialized with a
// mutex so the TUI and background refreshes cannot interleave.
type Service struct {
	store store.Store
	now   func() time.Time

	mu          sync.Mutex
	tasks       []model.Task
	identities  []model.Identity
	archetypes  []model.Archetype
	completions []model.CompletionLogEntry
	dayLogs     map[model.Page][]model.DayLogEntry
	categories  []model.Category
}

// NewService creates a service over the given store. Call Refresh
// before reading.
func NewService(st store.Store) *Service {
	return &Service{
		store:   st,
		now:     time.Now,
		dayLogs: make(map[model.Page][]model.DayLogEntry),
	}
}

// Refresh reloads the full snapshot from the store.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx, "")
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	identities, err := s.store.ListIdentities(ctx)
	if err != nil {
		return fmt.Errorf("load identities: %w", err)
	}
	archetypes, err := s.store.ListArchetypes(ctx)
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	completions, err := s.store.ListCompletionLogs(ctx)
	if err != nil {
		return fmt.Errorf("load completion logs: %w", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	dayLogs := make(map[model.Page][]model.DayLogEntry, len(model.Pages))
	for _, page := range model.Pages {
		logs, err := s.store.ListDayLogs(ctx, page)
		if err != nil {
			return fmt.Errorf("load day logs for %s: %w", page, err)
		}
		dayLogs[page] = logs
	}

	s.tasks = tasks
	s.identities = identities
	s.archetypes = archetypes
	s.completions = completions
	s.categories = categories
	s.dayLogs = dayLogs
	return nil
}

// NewTaskInput is the user's creation form for a habit.
type NewTaskInput struct {
	Title            string
	Category         string
	Page             model.Page
	Recurrence       model.Recurrence
	Schedule         model.Schedule
	IdentityTags     []string
	TwoMinuteVersion string
}

// CreateTask validates the input, expands the recurrence into a
// concrete weekday set, and inserts the task.
func (s *Service) CreateTask(ctx context.Context, in NewTaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, invalid("title", "title is required")
	}
	if _, err := model.ParsePage(string(in.Page)); err != nil {
		return model.Task{}, invalid("page", err.Error())
	}
	sched := in.Schedule
	if !sched.AllDay {
		if sched.Time == "" {
			sched = model.AllDay()
		} else if _, err := time.Parse("15:04", sched.Time); err != nil {
			return model.Task{}, invalid("time", "want HH:MM, got "+sched.Time)
		}
	}
	weekdays, err := ExpandRecurrence(in.Recurrence, s.now())
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		Title:            title,
		Category:         in.Category,
		Page:             in.Page,
		Weekdays:         weekdays,
		Schedule:         sched,
		IdentityTags:     in.IdentityTags,
		TwoMinuteVersion: in.TwoMinuteVersion,
		Recurrence:       in.Recurrence,
	}
	task, err = s.store.InsertTask(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	s.tasks = append(s.tasks, task)
	logger.Info("Task created",
		logger.F("id", task.ID),
		logger.F("title", task.Title),
		logger.F("weekdays", len(task.Weekdays)))
	return task, nil
}

// UpdateTask replaces an existing task's editable fields.
func (s *Service) UpdateTask(ctx context.Context, t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(t.Title) == "" {
		return invalid("title", "title is required")
	}
	if len(t.Weekdays) == 0 {
		return invalid("weekdays", "a task needs at least one weekday")
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			break
		}
	}
	return nil
}

// DeleteTask removes a task. Its ledger history is kept.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Toggle flips a pending task to complete, recording the ledger
// fan-out first and the flag second (two separate requests, no
// transaction). Toggling an already-complete task changes nothing and
// returns a FrictionPrompt instead: the caller has to come back
// through ResolveFriction.
func (s *Service) Toggle(ctx context.Context, taskID string) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(taskID)
	if task == nil {
		return ToggleResult{}, store.ErrNotFound
	}
	if task.Completed {
		return ToggleResult{Completed: true, Friction: &FrictionPrompt{Task: *task}}, nil
	}

	if err := s.appendCompletions(ctx, CompletionEntries(task.ID, task.IdentityTags, false, s.now())); err != nil {
		return ToggleResult{}, err
	}
	if err := s.setCompleted(ctx, task, true); err != nil {
		return ToggleResult{}, err
	}
	s.maybeRecordDayLog(ctx, task.Page)
	return ToggleResult{Completed: true}, nil
}

// ResolveFriction applies the user's choice from the friction prompt.
// Every exit writes exactly one batch of ledger entries; only
// FrictionSkipped returns the task to pending.
func (s *Service) ResolveFriction(ctx context.Context, taskID string, choice FrictionChoice, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(taskID)
	if task == nil {
		return store.ErrNotFound
	}
	reason = strings.TrimSpace(reason)

	switch choice {
	case FrictionTwoMinute:
		if err := s.appendCompletions(ctx, CompletionEntries(task.ID, task.IdentityTags, true, s.now())); err != nil {
			return err
		}
		if !task.Completed {
			return s.setCompleted(ctx, task, true)
		}
		return nil

	case FrictionCompletedWithReason:
		if reason == "" {
			return invalid("reason", "a reason is required")
		}
		entry := FrictionEntry(task.ID, task.FirstIdentity(), reason, s.now())
		if err := s.appendCompletions(ctx, []model.CompletionLogEntry{entry}); err != nil {
			return err
		}
		if !task.Completed {
			return s.setCompleted(ctx, task, true)
		}
		return nil

	case FrictionSkipped:
		entry := FrictionEntry(task.ID, task.FirstIdentity(), reason, s.now())
		if err := s.appendCompletions(ctx, []model.CompletionLogEntry{entry}); err != nil {
			return err
		}
		return s.setCompleted(ctx, task, false)
	}
	return invalid("choice", "unknown friction choice")
}

// appendCompletions writes ledger entries one request at a time. A
// failure part way through is logged and surfaced, never rolled back.
func (s *Service) appendCompletions(ctx context.Context, entries []model.CompletionLogEntry) error {
	for i, e := range entries {
		saved, err := s.store.AppendCompletionLog(ctx, e)
		if err != nil {
			if i > 0 {
				logger.Warn("Partial ledger write",
					logger.F("written", i),
					logger.F("total", len(entries)),
					logger.F("error", err))
			}
			return fmt.Errorf("append completion log: %w", err)
		}
		s.completions = append(s.completions, saved)
	}
	return nil
}

func (s *Service) setCompleted(ctx context.Context, task *model.Task, completed bool) error {
	if err := s.store.SetTaskCompleted(ctx, task.ID, completed); err != nil {
		// The ledger entry for this toggle is already written; the
		// inconsistency is accepted and logged, not rolled back.
		logger.Warn("Task flag write failed after ledger write",
			logger.F("task", task.ID),
			logger.F("error", err))
		return fmt.Errorf("set task completed: %w", err)
	}
	task.Completed = completed
	return nil
}

// maybeRecordDayLog appends a day-completion record when every task
// scheduled for today on the page is complete and the day is not
// already logged. A day with no scheduled tasks never completes.
func (s *Service) maybeRecordDayLog(ctx context.Context, page model.Page) {
	today := model.DateOf(s.now())
	if !dayComplete(s.tasks, page, model.WeekdayOf(s.now())) {
		return
	}
	if hasDayLog(s.dayLogs[page], today, page) {
		return
	}
	entry, err := s.store.AppendDayLog(ctx, model.DayLogEntry{
		Date:         today,
		Page:         page,
		AllCompleted: true,
	})
	if err != nil {
		logger.Warn("Day log write failed",
			logger.F("page", page),
			logger.F("date", today),
			logger.F("error", err))
		return
	}
	s.dayLogs[page] = append(s.dayLogs[page], entry)
	logger.Info("Day complete", logger.F("page", page), logger.F("date", today))
}

func (s *Service) findTask(id string) *model.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// PageTasks returns the tasks on a page, in creation order.
func (s *Service) PageTasks(page model.Page) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.Page == page {
			out = append(out, t)
		}
	}
	return out
}

// TodayTasks returns the tasks on a page scheduled for the current
// weekday.
func (s *Service) TodayTasks(page model.Page) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := model.WeekdayOf(s.now())
	var out []model.Task
	for i := range s.tasks {
		if s.tasks[i].Page == page && s.tasks[i].OnWeekday(day) {
			out = append(out, s.tasks[i])
		}
	}
	return out
}

// DailyGlowScore is today's score across all identities.
func (s *Service) DailyGlowScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DailyScore(s.completions, s.now())
}

// IdentityScore is an identity's lifetime score.
func (s *Service) IdentityScore(identityID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return IdentityScore(s.completions, identityID)
}

// CurrentStreak is the page's consecutive-day streak ending today.
func (s *Service) CurrentStreak(page model.Page) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CurrentStreak(s.dayLogs[page], s.now())
}

// Identities returns the snapshot of identities.
func (s *Service) Identities() []model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Identity(nil), s.identities...)
}

// Archetypes returns the snapshot of the archetype catalog.
func (s *Service) Archetypes() []model.Archetype {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Archetype(nil), s.archetypes...)
}

// Categories returns the snapshot of categories.
func (s *Service) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.categories...)
}

// AddIdentity creates a user-defined identity.
func (s *Service) AddIdentity(ctx context.Context, name, emoji string) (model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addIdentityLocked(ctx, name, emoji)
}

func (s *Service) addIdentityLocked(ctx context.Context, name, emoji string) (model.Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Identity{}, invalid("name", "name is required")
	}
	id, err := s.store.InsertIdentity(ctx, model.Identity{Name: name, Emoji: emoji})
	if err != nil {
		return model.Identity{}, fmt.Errorf("insert identity: %w", err)
	}
	s.identities = append(s.identities, id)
	return id, nil
}

// AddCategory creates a user-defined category.
func (s *Service) AddCategory(ctx context.Context, name, emoji string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, invalid("name", "name is required")
	}
	c, err := s.store.InsertCategory(ctx, model.Category{Name: name, Emoji: emoji})
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}
	s.categories = append(s.categories, c)
	return c, nil
}

// AddArchetype extends the catalog with a user-defined archetype.
func (s *Service) AddArchetype(ctx context.Context, a model.Archetype) (model.Archetype, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(a.Name) == "" {
		return model.Archetype{}, invalid("name", "name is required")
	}
	saved, err := s.store.InsertArchetype(ctx, a)
	if err != nil {
		return model.Archetype{}, fmt.Errorf("insert archetype: %w", err)
	}
	s.archetypes = append(s.archetypes, saved)
	return saved, nil
}
