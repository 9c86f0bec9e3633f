package ports

import (
	"context"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
)

// TodoPatch carries a partial update for an existing todo. Nil fields are
// left untouched. ClearDueDate distinguishes "clear the due date" from
// "leave it unchanged"; when set, DueDate is ignored.
type TodoPatch struct {
	Title        *string
	Completed    *bool
	Priority     *todo.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// TodoRepository is the persistence port. Every implementation, regardless
// of backend, honors identical semantics:
//
//   - Create assigns the identifier; the todo passed in has none.
//   - Update and Delete return domain.ErrNotFound for unknown identifiers.
//   - GetByID treats a miss as a normal outcome (false, nil), not an error.
//   - The retrieval methods return collections ordered newest-created-first;
//     the presentation layer relies on that order without re-sorting.
//   - Backend/connectivity errors propagate unmodified.
//
// Each implementation owns exactly one underlying connection, opened once by
// the backend selector and reused for the process lifetime.
type TodoRepository interface {
	// Create persists a new todo and returns the assigned identifier.
	Create(ctx context.Context, t todo.Todo) (string, error)

	// Update applies the supplied fields to the stored todo and returns the
	// updated entity. Returns domain.ErrNotFound if the id does not exist.
	Update(ctx context.Context, id string, patch TodoPatch) (todo.Todo, error)

	// Delete removes the todo. Returns domain.ErrNotFound if the id does
	// not exist.
	Delete(ctx context.Context, id string) error

	// GetByID returns the todo and true when found, or a zero todo and
	// false when absent. A miss is not an error.
	GetByID(ctx context.Context, id string) (todo.Todo, bool, error)

	// GetAll returns every todo, newest-created-first.
	GetAll(ctx context.Context) ([]todo.Todo, error)

	// GetActive returns not-completed todos, newest-created-first.
	GetActive(ctx context.Context) ([]todo.Todo, error)

	// GetCompleted returns completed todos, newest-created-first.
	GetCompleted(ctx context.Context) ([]todo.Todo, error)

	// Count returns the total number of todos.
	Count(ctx context.Context) (int, error)

	// CountActive returns the number of not-completed todos.
	CountActive(ctx context.Context) (int, error)

	// CountCompleted returns the number of completed todos.
	CountCompleted(ctx context.Context) (int, error)
}
