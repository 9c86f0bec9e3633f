// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and persistence through port interfaces.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService by orchestrating calls to the
// configured storage backend through the TodoRepository port. Completion
// state changes go through the entity's transition methods so their rules
// hold identically for every backend.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewTodoService creates a TodoService. The repository port provides access
// to the configured storage backend. The logger is used for structured
// request/error logging.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	return &TodoService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListTodos returns todos matching the filter, newest-created-first. The
// overdue filter narrows the active set in memory since overdue is a
// time-dependent classification, not a stored column.
func (s *TodoService) ListTodos(ctx context.Context, filter ports.ListFilter) ([]todo.Todo, error) {
	s.logger.InfoContext(ctx, "listing todos", slog.String("filter", string(filter)))

	if !filter.IsValid() {
		return nil, domain.NewValidationError("INVALID_FILTER",
			"filter must be one of: all, active, completed, overdue")
	}

	var (
		todos []todo.Todo
		err   error
	)
	switch filter {
	case ports.FilterActive:
		todos, err = s.repo.GetActive(ctx)
	case ports.FilterCompleted:
		todos, err = s.repo.GetCompleted(ctx)
	case ports.FilterOverdue:
		todos, err = s.repo.GetActive(ctx)
		if err == nil {
			overdue := todo.OverdueSpec(s.now().UTC())
			kept := todos[:0]
			for _, t := range todos {
				if overdue.IsSatisfiedBy(t) {
					kept = append(kept, t)
				}
			}
			todos = kept
		}
	default:
		todos, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.String("filter", string(filter)),
			slog.Any("error", err),
		)
		return nil, err
	}

	return todos, nil
}

// GetTodo returns a single todo by ID.
func (s *TodoService) GetTodo(ctx context.Context, id string) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "fetching todo", slog.String("id", id))

	t, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "GetTodo"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("no todo with id " + id)
	}

	return &t, nil
}

// CreateTodo validates and persists a new todo, returning it with the
// assigned identifier.
func (s *TodoService) CreateTodo(ctx context.Context, title string, priority todo.Priority, dueDate *time.Time) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "creating todo", slog.String("priority", priority.String()))

	opts := []todo.Option{todo.WithPriority(priority)}
	if dueDate != nil {
		opts = append(opts, todo.WithDueDate(*dueDate))
	}
	t, err := todo.New(title, opts...)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return nil, err
	}

	created := t.WithID(id)
	return &created, nil
}

// UpdateTodo applies a partial update and returns the updated todo.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, patch ports.TodoPatch) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.String("id", id))

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update todo",
			slog.String("operation", "UpdateTodo"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &t, nil
}

// CompleteTodo marks a todo done through the entity transition, so
// completing an already-completed todo fails.
func (s *TodoService) CompleteTodo(ctx context.Context, id string) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "completing todo", slog.String("id", id))

	t, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "CompleteTodo"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("no todo with id " + id)
	}

	completed, err := t.Complete()
	if err != nil {
		return nil, err
	}

	return s.persistCompletion(ctx, "CompleteTodo", id, completed.Completed())
}

// ToggleTodo flips the completion flag unconditionally.
func (s *TodoService) ToggleTodo(ctx context.Context, id string) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "toggling todo", slog.String("id", id))

	t, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "ToggleTodo"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("no todo with id " + id)
	}

	return s.persistCompletion(ctx, "ToggleTodo", id, t.Toggle().Completed())
}

// DeleteTodo removes a todo.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.String("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "DeleteTodo"),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// Stats aggregates classification counts over all todos as of now.
func (s *TodoService) Stats(ctx context.Context) (todo.Stats, error) {
	s.logger.InfoContext(ctx, "computing todo stats")

	todos, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load todos for stats",
			slog.String("operation", "Stats"),
			slog.Any("error", err),
		)
		return todo.Stats{}, err
	}

	return todo.ComputeStats(todos, s.now().UTC()), nil
}

// persistCompletion writes a completion flag change through the repository
// patch path so every backend applies it the same way.
func (s *TodoService) persistCompletion(ctx context.Context, operation, id string, completed bool) (*todo.Todo, error) {
	updated, err := s.repo.Update(ctx, id, ports.TodoPatch{Completed: &completed})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist completion state",
			slog.String("operation", operation),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &updated, nil
}
