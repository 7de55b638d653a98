package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/glow/internal/model"
)

// Memory is a map-backed Store. It backs `glow --demo` and the habit
// core's tests. Safe for concurrent use.
type Memory struct {
	mu          sync.Mutex
	tasks       []model.Task
	identities  []model.Identity
	archetypes  []model.Archetype
	completions []model.CompletionLogEntry
	dayLogs     []model.DayLogEntry
	categories  []model.Category
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListTasks(ctx context.Context, page model.Page) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.tasks {
		if page == "" || t.Page == page {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) InsertTask(ctx context.Context, t model.Task) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.UpdatedAt = t.CreatedAt
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *Memory) UpdateTask(ctx context.Context, t model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID {
			t.UpdatedAt = time.Now()
			m.tasks[i] = t
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Completed = completed
			m.tasks[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListIdentities(ctx context.Context) ([]model.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Identity(nil), m.identities...), nil
}

func (m *Memory) InsertIdentity(ctx context.Context, i model.Identity) (model.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	m.identities = append(m.identities, i)
	return i, nil
}

func (m *Memory) ListArchetypes(ctx context.Context) ([]model.Archetype, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Archetype(nil), m.archetypes...), nil
}

func (m *Memory) InsertArchetype(ctx context.Context, a model.Archetype) (model.Archetype, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.archetypes = append(m.archetypes, a)
	return a, nil
}

func (m *Memory) ListCompletionLogs(ctx context.Context) ([]model.CompletionLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CompletionLogEntry(nil), m.completions...), nil
}

func (m *Memory) AppendCompletionLog(ctx context.Context, e model.CompletionLogEntry) (model.CompletionLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	m.completions = append(m.completions, e)
	return e, nil
}

func (m *Memory) ListDayLogs(ctx context.Context, page model.Page) ([]model.DayLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DayLogEntry
	for _, e := range m.dayLogs {
		if page == "" || e.Page == page {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) AppendDayLog(ctx context.Context, e model.DayLogEntry) (model.DayLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m.dayLogs = append(m.dayLogs, e)
	return e, nil
}

func (m *Memory) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Category(nil), m.categories...), nil
}

func (m *Memory) InsertCategory(ctx context.Context, c model.Category) (model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.categories = append(m.categories, c)
	return c, nil
}
