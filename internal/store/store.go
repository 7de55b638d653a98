// Package store defines the persistence collaborator the habit core
// talks to: row CRUD over named collections, rendered as a typed Go
// interface. Implementations exist for the local SQLite database
// (internal/db), the Glow server HTTP API (internal/client), and an
// in-memory store used by tests and demo mode.
package store

import (
	"context"
	"errors"

	"github.com/existflow/glow/internal/model"
)

// ErrNotFound is returned when a row id does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract. Every call is a discrete
// request/response; there is no transaction spanning calls. Inserts
// fill in id and created_at when the caller leaves them empty.
type Store interface {
	ListTasks(ctx context.Context, page model.Page) ([]model.Task, error)
	InsertTask(ctx context.Context, t model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, t model.Task) error
	SetTaskCompleted(ctx context.Context, id string, completed bool) error
	DeleteTask(ctx context.Context, id string) error

	ListIdentities(ctx context.Context) ([]model.Identity, error)
	InsertIdentity(ctx context.Context, i model.Identity) (model.Identity, error)

	ListArchetypes(ctx context.Context) ([]model.Archetype, error)
	InsertArchetype(ctx context.Context, a model.Archetype) (model.Archetype, error)

	ListCompletionLogs(ctx context.Context) ([]model.CompletionLogEntry, error)
	AppendCompletionLog(ctx context.Context, e model.CompletionLogEntry) (model.CompletionLogEntry, error)

	ListDayLogs(ctx context.Context, page model.Page) ([]model.DayLogEntry, error)
	AppendDayLog(ctx context.Context, e model.DayLogEntry) (model.DayLogEntry, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	InsertCategory(ctx context.Context, c model.Category) (model.Category, error)
}
