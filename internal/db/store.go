package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/glow/internal/model"
	"github.com/existflow/glow/internal/store"
)

// JSON-encoded columns keep the weekday and tag sets readable in the
// file without a join table; data volumes are tens of rows.

func marshal(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func unmarshalWeekdays(s string) []model.Weekday {
	var out []model.Weekday
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

func unmarshalStrings(s string) []string {
	var out []string
	_ = json.Unmarshal([]byte(s), &out)
	return out
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func (db *DB) ListTasks(ctx context.Context, page model.Page) ([]model.Task, error) {
	query := `SELECT id, title, category, completed, page, weekdays, all_day, scheduled_time,
	                 identity_tags, two_minute_version, recurrence, created_at, updated_at
	          FROM tasks`
	args := []interface{}{}
	if page != "" {
		query += ` WHERE page = ?`
		args = append(args, string(page))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var weekdays, tags, recurrence, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Completed, &t.Page, &weekdays,
			&t.Schedule.AllDay, &t.Schedule.Time, &tags, &t.TwoMinuteVersion,
			&recurrence, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Weekdays = unmarshalWeekdays(weekdays)
		t.IdentityTags = unmarshalStrings(tags)
		_ = json.Unmarshal([]byte(recurrence), &t.Recurrence)
		t.CreatedAt = parseTime(createdAt)
		t.UpdatedAt = parseTime(updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (db *DB) InsertTask(ctx context.Context, t model.Task) (model.Task, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.UpdatedAt = t.CreatedAt

	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, category, completed, page, weekdays, all_day, scheduled_time,
		                   identity_tags, two_minute_version, recurrence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Category, t.Completed, string(t.Page), marshal(t.Weekdays),
		t.Schedule.AllDay, t.Schedule.Time, marshal(t.IdentityTags), t.TwoMinuteVersion,
		marshal(t.Recurrence), t.CreatedAt.Format(time.RFC3339Nano), t.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (db *DB) UpdateTask(ctx context.Context, t model.Task) error {
	t.UpdatedAt = time.Now()
	res, err := db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, category = ?, completed = ?, page = ?, weekdays = ?,
		       all_day = ?, scheduled_time = ?, identity_tags = ?, two_minute_version = ?,
		       recurrence = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Category, t.Completed, string(t.Page), marshal(t.Weekdays),
		t.Schedule.AllDay, t.Schedule.Time, marshal(t.IdentityTags), t.TwoMinuteVersion,
		marshal(t.Recurrence), t.UpdatedAt.Format(time.RFC3339Nano), t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(res)
}

func (db *DB) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	res, err := db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?`,
		completed, time.Now().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	return requireRow(res)
}

func (db *DB) DeleteTask(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (db *DB) ListIdentities(ctx context.Context) ([]model.Identity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, emoji, created_at FROM identities ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var out []model.Identity
	for rows.Next() {
		var i model.Identity
		var createdAt string
		if err := rows.Scan(&i.ID, &i.Name, &i.Emoji, &createdAt); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		i.CreatedAt = parseTime(createdAt)
		out = append(out, i)
	}
	return out, rows.Err()
}

func (db *DB) InsertIdentity(ctx context.Context, i model.Identity) (model.Identity, error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO identities (id, name, emoji, created_at) VALUES (?, ?, ?, ?)`,
		i.ID, i.Name, i.Emoji, i.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Identity{}, fmt.Errorf("insert identity: %w", err)
	}
	return i, nil
}

func (db *DB) ListArchetypes(ctx context.Context) ([]model.Archetype, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, emoji, description, identities, habits, created_at
		 FROM archetypes ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list archetypes: %w", err)
	}
	defer rows.Close()

	var out []model.Archetype
	for rows.Next() {
		var a model.Archetype
		var identities, habits, createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Emoji, &a.Description, &identities, &habits, &createdAt); err != nil {
			return nil, fmt.Errorf("scan archetype: %w", err)
		}
		a.DefaultIdentities = unmarshalStrings(identities)
		_ = json.Unmarshal([]byte(habits), &a.TemplateHabits)
		a.CreatedAt = parseTime(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (db *DB) InsertArchetype(ctx context.Context, a model.Archetype) (model.Archetype, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO archetypes (id, name, emoji, description, identities, habits, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Emoji, a.Description,
		marshal(a.DefaultIdentities), marshal(a.TemplateHabits),
		a.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Archetype{}, fmt.Errorf("insert archetype: %w", err)
	}
	return a, nil
}

func (db *DB) ListCompletionLogs(ctx context.Context) ([]model.CompletionLogEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, task_id, identity_id, two_minute, friction_reason, occurred_at
		 FROM completion_logs ORDER BY occurred_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list completion logs: %w", err)
	}
	defer rows.Close()

	var out []model.CompletionLogEntry
	for rows.Next() {
		var e model.CompletionLogEntry
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.TaskID, &e.IdentityID, &e.WasTwoMinuteVersion,
			&e.FrictionReason, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan completion log: %w", err)
		}
		e.OccurredAt = parseTime(occurredAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (db *DB) AppendCompletionLog(ctx context.Context, e model.CompletionLogEntry) (model.CompletionLogEntry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO completion_logs (id, task_id, identity_id, two_minute, friction_reason, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.TaskID, e.IdentityID, e.WasTwoMinuteVersion, e.FrictionReason,
		e.OccurredAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.CompletionLogEntry{}, fmt.Errorf("append completion log: %w", err)
	}
	return e, nil
}

func (db *DB) ListDayLogs(ctx context.Context, page model.Page) ([]model.DayLogEntry, error) {
	query := `SELECT id, date, page, all_completed, created_at FROM day_logs`
	args := []interface{}{}
	if page != "" {
		query += ` WHERE page = ?`
		args = append(args, string(page))
	}
	query += ` ORDER BY date ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	defer rows.Close()

	var out []model.DayLogEntry
	for rows.Next() {
		var e model.DayLogEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Date, &e.Page, &e.AllCompleted, &createdAt); err != nil {
			return nil, fmt.Errorf("scan day log: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (db *DB) AppendDayLog(ctx context.Context, e model.DayLogEntry) (model.DayLogEntry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO day_logs (id, date, page, all_completed, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date, string(e.Page), e.AllCompleted, e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.DayLogEntry{}, fmt.Errorf("append day log: %w", err)
	}
	return e, nil
}

func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, emoji, created_at FROM categories ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &createdAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) InsertCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (id, name, emoji, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Emoji, c.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}
