// Package record defines the flat transport representation of a Todo shared
// by the storage adapters, plus the pure bidirectional mapper between it and
// the domain entity. Each adapter owns its backend-specific row/document
// model; Record is the common intermediate shape.
package record

import (
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// Record is the plain, serializable form of a Todo. Value objects are
// flattened to primitives and timestamps are canonical UTC. An empty ID
// means the entity has not been persisted yet.
type Record struct {
	ID        string     `json:"id,omitempty" db:"id"`
	Title     string     `json:"title" db:"title"`
	Completed bool       `json:"completed" db:"completed"`
	Priority  string     `json:"priority" db:"priority"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DueDate   *time.Time `json:"due_date,omitempty" db:"due_date"`
}

// ToRecord flattens a domain Todo into its transport form. Timestamps are
// normalized to UTC so every backend stores the same canonical instant.
func ToRecord(t todo.Todo) Record {
	rec := Record{
		ID:        t.ID(),
		Title:     t.Title().String(),
		Completed: t.Completed(),
		Priority:  t.Priority().String(),
		CreatedAt: t.CreatedAt().UTC(),
	}
	if due := t.DueDate(); due != nil {
		d := due.UTC()
		rec.DueDate = &d
	}
	return rec
}

// ToDomain reconstructs the domain entity from its transport form. The
// title and priority value objects are rebuilt through their constructors,
// so a corrupt record surfaces as a validation error. A missing priority
// defaults to medium; an empty ID maps back to "not yet persisted".
func ToDomain(rec Record) (todo.Todo, error) {
	title, err := todo.NewTitle(rec.Title)
	if err != nil {
		return todo.Todo{}, err
	}
	priority, err := todo.ParsePriority(rec.Priority)
	if err != nil {
		return todo.Todo{}, err
	}
	return todo.Rehydrate(rec.ID, title, rec.Completed, rec.CreatedAt.UTC(), priority, rec.DueDate), nil
}

// ApplyPatch returns a copy of rec with the patch's supplied fields applied.
// Nil patch fields leave the record untouched; ClearDueDate wins over DueDate.
// A patched title or priority is validated through its value object before
// anything is written, so an invalid patch never reaches a backend.
func ApplyPatch(rec Record, patch ports.TodoPatch) (Record, error) {
	if patch.Title != nil {
		title, err := todo.NewTitle(*patch.Title)
		if err != nil {
			return Record{}, err
		}
		rec.Title = title.String()
	}
	if patch.Completed != nil {
		rec.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		priority, err := todo.ParsePriority(patch.Priority.String())
		if err != nil {
			return Record{}, err
		}
		rec.Priority = priority.String()
	}
	if patch.ClearDueDate {
		rec.DueDate = nil
	} else if patch.DueDate != nil {
		d := patch.DueDate.UTC()
		rec.DueDate = &d
	}
	return rec, nil
}
