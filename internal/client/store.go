package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/existflow/glow/internal/model"
)

// The client implements store.Store against the generic collection
// API. Rows travel as JSON attribute maps; the structs below pin the
// column names.

type listResponse struct {
	Rows []map[string]interface{} `json:"rows"`
}

type taskRow struct {
	ID               string           `json:"id,omitempty"`
	Title            string           `json:"title"`
	Category         string           `json:"category"`
	Completed        bool             `json:"completed"`
	Page             string           `json:"page"`
	Weekdays         []model.Weekday  `json:"weekdays"`
	AllDay           bool             `json:"all_day"`
	ScheduledTime    string           `json:"scheduled_time"`
	IdentityTags     []string         `json:"identity_tags"`
	TwoMinuteVersion string           `json:"two_minute_version"`
	Recurrence       model.Recurrence `json:"recurrence"`
	CreatedAt        string           `json:"created_at,omitempty"`
	UpdatedAt        string           `json:"updated_at,omitempty"`
}

func taskFromRow(r taskRow) model.Task {
	return model.Task{
		ID:               r.ID,
		Title:            r.Title,
		Category:         r.Category,
		Completed:        r.Completed,
		Page:             model.Page(r.Page),
		Weekdays:         r.Weekdays,
		Schedule:         model.Schedule{AllDay: r.AllDay, Time: r.ScheduledTime},
		IdentityTags:     r.IdentityTags,
		TwoMinuteVersion: r.TwoMinuteVersion,
		Recurrence:       r.Recurrence,
		CreatedAt:        parseRowTime(r.CreatedAt),
		UpdatedAt:        parseRowTime(r.UpdatedAt),
	}
}

func taskToRow(t model.Task) taskRow {
	if t.Weekdays == nil {
		t.Weekdays = []model.Weekday{}
	}
	if t.IdentityTags == nil {
		t.IdentityTags = []string{}
	}
	return taskRow{
		Title:            t.Title,
		Category:         t.Category,
		Completed:        t.Completed,
		Page:             string(t.Page),
		Weekdays:         t.Weekdays,
		AllDay:           t.Schedule.AllDay,
		ScheduledTime:    t.Schedule.Time,
		IdentityTags:     t.IdentityTags,
		TwoMinuteVersion: t.TwoMinuteVersion,
		Recurrence:       t.Recurrence,
	}
}

func parseRowTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// list fetches a collection and decodes its rows into out via a
// per-row decoder working on re-marshalled JSON.
func (c *Client) list(path string, decode func(map[string]interface{})) error {
	var resp listResponse
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return err
	}
	for _, row := range resp.Rows {
		decode(row)
	}
	return nil
}

func decodeRow(row map[string]interface{}, out interface{}) {
	data, err := json.Marshal(row)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, out)
}

func (c *Client) ListTasks(ctx context.Context, page model.Page) ([]model.Task, error) {
	path := "/api/v1/data/tasks"
	if page != "" {
		path += "?page=" + url.QueryEscape(string(page))
	}
	var tasks []model.Task
	err := c.list(path, func(row map[string]interface{}) {
		var r taskRow
		decodeRow(row, &r)
		tasks = append(tasks, taskFromRow(r))
	})
	return tasks, err
}

func (c *Client) InsertTask(ctx context.Context, t model.Task) (model.Task, error) {
	var r taskRow
	if err := c.do(http.MethodPost, "/api/v1/data/tasks", taskToRow(t), &r); err != nil {
		return model.Task{}, err
	}
	return taskFromRow(r), nil
}

func (c *Client) UpdateTask(ctx context.Context, t model.Task) error {
	return c.do(http.MethodPatch, "/api/v1/data/tasks/"+t.ID, taskToRow(t), nil)
}

func (c *Client) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	return c.do(http.MethodPatch, "/api/v1/data/tasks/"+id,
		map[string]interface{}{"completed": completed}, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(http.MethodDelete, "/api/v1/data/tasks/"+id, nil, nil)
}

type identityRow struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (c *Client) ListIdentities(ctx context.Context) ([]model.Identity, error) {
	var out []model.Identity
	err := c.list("/api/v1/data/identities", func(row map[string]interface{}) {
		var r identityRow
		decodeRow(row, &r)
		out = append(out, model.Identity{
			ID: r.ID, Name: r.Name, Emoji: r.Emoji, CreatedAt: parseRowTime(r.CreatedAt),
		})
	})
	return out, err
}

func (c *Client) InsertIdentity(ctx context.Context, i model.Identity) (model.Identity, error) {
	var r identityRow
	err := c.do(http.MethodPost, "/api/v1/data/identities",
		identityRow{Name: i.Name, Emoji: i.Emoji}, &r)
	if err != nil {
		return model.Identity{}, err
	}
	return model.Identity{ID: r.ID, Name: r.Name, Emoji: r.Emoji, CreatedAt: parseRowTime(r.CreatedAt)}, nil
}

type archetypeRow struct {
	ID          string                `json:"id,omitempty"`
	Name        string                `json:"name"`
	Emoji       string                `json:"emoji"`
	Description string                `json:"description"`
	Identities  []string              `json:"identities"`
	Habits      []model.TemplateHabit `json:"habits"`
	CreatedAt   string                `json:"created_at,omitempty"`
}

func archetypeFromRow(r archetypeRow) model.Archetype {
	return model.Archetype{
		ID:                r.ID,
		Name:              r.Name,
		Emoji:             r.Emoji,
		Description:       r.Description,
		DefaultIdentities: r.Identities,
		TemplateHabits:    r.Habits,
		CreatedAt:         parseRowTime(r.CreatedAt),
	}
}

func (c *Client) ListArchetypes(ctx context.Context) ([]model.Archetype, error) {
	var out []model.Archetype
	err := c.list("/api/v1/data/archetypes", func(row map[string]interface{}) {
		var r archetypeRow
		decodeRow(row, &r)
		out = append(out, archetypeFromRow(r))
	})
	return out, err
}

func (c *Client) InsertArchetype(ctx context.Context, a model.Archetype) (model.Archetype, error) {
	if a.DefaultIdentities == nil {
		a.DefaultIdentities = []string{}
	}
	if a.TemplateHabits == nil {
		a.TemplateHabits = []model.TemplateHabit{}
	}
	var r archetypeRow
	err := c.do(http.MethodPost, "/api/v1/data/archetypes", archetypeRow{
		Name:        a.Name,
		Emoji:       a.Emoji,
		Description: a.Description,
		Identities:  a.DefaultIdentities,
		Habits:      a.TemplateHabits,
	}, &r)
	if err != nil {
		return model.Archetype{}, err
	}
	return archetypeFromRow(r), nil
}

type completionRow struct {
	ID             string `json:"id,omitempty"`
	TaskID         string `json:"task_id"`
	IdentityID     string `json:"identity_id"`
	TwoMinute      bool   `json:"two_minute"`
	FrictionReason string `json:"friction_reason"`
	OccurredAt     string `json:"occurred_at,omitempty"`
}

func completionFromRow(r completionRow) model.CompletionLogEntry {
	return model.CompletionLogEntry{
		ID:                  r.ID,
		TaskID:              r.TaskID,
		IdentityID:          r.IdentityID,
		WasTwoMinuteVersion: r.TwoMinute,
		FrictionReason:      r.FrictionReason,
		OccurredAt:          parseRowTime(r.OccurredAt),
	}
}

func (c *Client) ListCompletionLogs(ctx context.Context) ([]model.CompletionLogEntry, error) {
	var out []model.CompletionLogEntry
	err := c.list("/api/v1/data/completion_logs", func(row map[string]interface{}) {
		var r completionRow
		decodeRow(row, &r)
		out = append(out, completionFromRow(r))
	})
	return out, err
}

func (c *Client) AppendCompletionLog(ctx context.Context, e model.CompletionLogEntry) (model.CompletionLogEntry, error) {
	row := completionRow{
		TaskID:         e.TaskID,
		IdentityID:     e.IdentityID,
		TwoMinute:      e.WasTwoMinuteVersion,
		FrictionReason: e.FrictionReason,
	}
	if !e.OccurredAt.IsZero() {
		row.OccurredAt = e.OccurredAt.Format(time.RFC3339Nano)
	}
	var saved completionRow
	if err := c.do(http.MethodPost, "/api/v1/data/completion_logs", row, &saved); err != nil {
		return model.CompletionLogEntry{}, err
	}
	return completionFromRow(saved), nil
}

type dayLogRow struct {
	ID           string `json:"id,omitempty"`
	Date         string `json:"date"`
	Page         string `json:"page"`
	AllCompleted bool   `json:"all_completed"`
	CreatedAt    string `json:"created_at,omitempty"`
}

func (c *Client) ListDayLogs(ctx context.Context, page model.Page) ([]model.DayLogEntry, error) {
	path := "/api/v1/data/day_logs"
	if page != "" {
		path += "?page=" + url.QueryEscape(string(page))
	}
	var out []model.DayLogEntry
	err := c.list(path, func(row map[string]interface{}) {
		var r dayLogRow
		decodeRow(row, &r)
		out = append(out, model.DayLogEntry{
			ID:           r.ID,
			Date:         r.Date,
			Page:         model.Page(r.Page),
			AllCompleted: r.AllCompleted,
			CreatedAt:    parseRowTime(r.CreatedAt),
		})
	})
	return out, err
}

func (c *Client) AppendDayLog(ctx context.Context, e model.DayLogEntry) (model.DayLogEntry, error) {
	var r dayLogRow
	err := c.do(http.MethodPost, "/api/v1/data/day_logs", dayLogRow{
		Date:         e.Date,
		Page:         string(e.Page),
		AllCompleted: e.AllCompleted,
	}, &r)
	if err != nil {
		return model.DayLogEntry{}, err
	}
	return model.DayLogEntry{
		ID: r.ID, Date: r.Date, Page: model.Page(r.Page),
		AllCompleted: r.AllCompleted, CreatedAt: parseRowTime(r.CreatedAt),
	}, nil
}

type categoryRow struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.list("/api/v1/data/categories", func(row map[string]interface{}) {
		var r categoryRow
		decodeRow(row, &r)
		out = append(out, model.Category{
			ID: r.ID, Name: r.Name, Emoji: r.Emoji, CreatedAt: parseRowTime(r.CreatedAt),
		})
	})
	return out, err
}

func (c *Client) InsertCategory(ctx context.Context, cat model.Category) (model.Category, error) {
	var r categoryRow
	err := c.do(http.MethodPost, "/api/v1/data/categories",
		categoryRow{Name: cat.Name, Emoji: cat.Emoji}, &r)
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: r.ID, Name: r.Name, Emoji: r.Emoji, CreatedAt: parseRowTime(r.CreatedAt)}, nil
}
