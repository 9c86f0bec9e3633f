package todo

import (
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
)

// Todos without a due date count as overdue this long after creation.
const overdueAfter = 7 * 24 * time.Hour

// Todo is the immutable aggregate root. Every state change returns a new
// value; the receiver is never mutated. The identifier is empty until the
// persistence layer assigns one on first create.
type Todo struct {
	id        string
	title     Title
	completed bool
	createdAt time.Time
	priority  Priority
	dueDate   *time.Time
}

// Option configures optional fields at construction time.
type Option func(*Todo)

// WithPriority sets the initial priority. Invalid priorities are ignored,
// leaving the default in place; use ParsePriority to validate user input.
func WithPriority(p Priority) Option {
	return func(t *Todo) {
		if p.IsValid() {
			t.priority = p
		}
	}
}

// WithDueDate sets the initial due date. An already-past due date is
// permitted: it represents a task that is already late.
func WithDueDate(due time.Time) Option {
	return func(t *Todo) {
		d := due
		t.dueDate = &d
	}
}

// WithCreatedAt overrides the creation timestamp. Used by tests and by
// persistence rehydration; createdAt is immutable afterwards.
func WithCreatedAt(at time.Time) Option {
	return func(t *Todo) {
		t.createdAt = at
	}
}

// New creates a not-yet-persisted Todo: no identifier, not completed,
// priority medium, createdAt now. The title is validated through NewTitle.
func New(rawTitle string, opts ...Option) (Todo, error) {
	title, err := NewTitle(rawTitle)
	if err != nil {
		return Todo{}, err
	}

	t := Todo{
		title:     title,
		priority:  DefaultPriority,
		createdAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t, nil
}

// Rehydrate reconstructs a Todo from already-validated persisted state.
// Value objects are constructed upstream (by the mapper), so no invariants
// are re-checked here.
func Rehydrate(id string, title Title, completed bool, createdAt time.Time, priority Priority, dueDate *time.Time) Todo {
	var due *time.Time
	if dueDate != nil {
		d := *dueDate
		due = &d
	}
	return Todo{
		id:        id,
		title:     title,
		completed: completed,
		createdAt: createdAt,
		priority:  priority,
		dueDate:   due,
	}
}

// ID returns the assigned identifier, or an empty string when the Todo has
// not been persisted yet.
func (t Todo) ID() string { return t.id }

// Title returns the title value object.
func (t Todo) Title() Title { return t.title }

// Completed reports whether the todo is done.
func (t Todo) Completed() bool { return t.completed }

// CreatedAt returns the creation timestamp. It never changes after construction.
func (t Todo) CreatedAt() time.Time { return t.createdAt }

// Priority returns the priority value object.
func (t Todo) Priority() Priority { return t.priority }

// DueDate returns a copy of the optional due date, or nil when unset.
func (t Todo) DueDate() *time.Time {
	if t.dueDate == nil {
		return nil
	}
	d := *t.dueDate
	return &d
}

// WithID returns a copy carrying the identifier assigned by the persistence
// layer. The identifier is immutable once assigned; repositories call this
// exactly once per entity.
func (t Todo) WithID(id string) Todo {
	t.id = id
	return t
}

// Retitle returns a copy with a new validated title.
func (t Todo) Retitle(rawTitle string) (Todo, error) {
	title, err := NewTitle(rawTitle)
	if err != nil {
		return Todo{}, err
	}
	t.title = title
	return t, nil
}

// Complete marks the todo done. It is not idempotent: completing an
// already-completed todo fails with an already-completed error.
func (t Todo) Complete() (Todo, error) {
	if t.completed {
		return Todo{}, domain.NewAlreadyCompletedError("todo is already completed")
	}
	t.completed = true
	return t, nil
}

// Toggle flips the completion flag unconditionally.
func (t Todo) Toggle() Todo {
	t.completed = !t.completed
	return t
}

// Reprioritize returns a copy with the given priority. Invalid input falls
// back to the default, mirroring construction.
func (t Todo) Reprioritize(p Priority) Todo {
	if !p.IsValid() {
		p = DefaultPriority
	}
	t.priority = p
	return t
}

// Reschedule returns a copy with the due date replaced. Passing nil clears
// the due date.
func (t Todo) Reschedule(due *time.Time) Todo {
	if due == nil {
		t.dueDate = nil
		return t
	}
	d := *due
	t.dueDate = &d
	return t
}

// Validate re-checks all entity invariants, returning the first violation.
// Useful after a batch of updates assembled outside the transition methods.
func (t Todo) Validate() error {
	if _, err := NewTitle(t.title.String()); err != nil {
		return err
	}
	if !t.priority.IsValid() {
		return domain.NewValidationError(domain.CodeInvalidPriority,
			"priority must be one of: low, medium, high")
	}
	return nil
}

// IsOverdue reports whether the todo is overdue at the given reference time.
// Completed todos are never overdue. With a due date set, overdue means the
// reference time is past it; without one, overdue means more than seven days
// have passed since creation.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.completed {
		return false
	}
	if t.dueDate != nil {
		return now.After(*t.dueDate)
	}
	return now.Sub(t.createdAt) > overdueAfter
}
