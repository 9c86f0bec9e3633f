package ports

import (
	"context"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
)

// ListFilter selects which todos a list operation returns.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterActive    ListFilter = "active"
	FilterCompleted ListFilter = "completed"
	FilterOverdue   ListFilter = "overdue"
)

// IsValid returns true if the filter is one of the defined constants.
func (f ListFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterOverdue:
		return true
	default:
		return false
	}
}

// TodoService defines the service port for todo operations. Implemented by
// the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// ListTodos returns todos matching the filter, newest-created-first
	// (overdue filtering happens in memory over the active set).
	ListTodos(ctx context.Context, filter ListFilter) ([]todo.Todo, error)

	// GetTodo returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	GetTodo(ctx context.Context, id string) (*todo.Todo, error)

	// CreateTodo validates and persists a new todo, returning it with the
	// assigned identifier. Returns domain.ErrValidation on bad input.
	CreateTodo(ctx context.Context, title string, priority todo.Priority, dueDate *time.Time) (*todo.Todo, error)

	// UpdateTodo applies a partial update.
	// Returns domain.ErrNotFound if the todo does not exist and
	// domain.ErrValidation on bad input.
	UpdateTodo(ctx context.Context, id string, patch TodoPatch) (*todo.Todo, error)

	// CompleteTodo marks a todo done. Returns domain.ErrAlreadyCompleted
	// when it already is, and domain.ErrNotFound for unknown ids.
	CompleteTodo(ctx context.Context, id string) (*todo.Todo, error)

	// ToggleTodo flips the completion flag unconditionally.
	// Returns domain.ErrNotFound for unknown ids.
	ToggleTodo(ctx context.Context, id string) (*todo.Todo, error)

	// DeleteTodo removes a todo. Returns domain.ErrNotFound for unknown ids.
	DeleteTodo(ctx context.Context, id string) error

	// Stats aggregates classification counts over all todos.
	Stats(ctx context.Context) (todo.Stats, error)
}
