// Package memory provides an in-process TodoRepository backed by a mutex-guarded
// map. It is the default backend for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/record"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*Repository)(nil)
	_ ports.HealthChecker  = (*Repository)(nil)
)

// entry pairs the stored record with its insertion sequence, which breaks
// creation-time ties so the newest-first ordering stays deterministic.
type entry struct {
	rec record.Record
	seq uint64
}

// Repository is a thread-safe in-memory implementation of ports.TodoRepository.
type Repository struct {
	mu      sync.RWMutex
	entries map[string]entry
	nextSeq uint64
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{entries: make(map[string]entry)}
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return "memory" }

// HealthCheck implements ports.HealthChecker. The map has no connection to
// lose, so the check only honors context cancellation.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Create assigns a UUID identifier and stores the todo.
func (r *Repository) Create(_ context.Context, t todo.Todo) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	rec := record.ToRecord(t.WithID(id))

	r.entries[id] = entry{rec: rec, seq: r.nextSeq}
	r.nextSeq++
	return id, nil
}

// Update applies the supplied patch fields to the stored todo.
func (r *Repository) Update(_ context.Context, id string, patch ports.TodoPatch) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}

	rec, err := record.ApplyPatch(e.rec, patch)
	if err != nil {
		return todo.Todo{}, err
	}

	updated, err := record.ToDomain(rec)
	if err != nil {
		return todo.Todo{}, err
	}

	r.entries[id] = entry{rec: rec, seq: e.seq}
	return updated, nil
}

// Delete removes the todo.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.NewNotFoundError("no todo with id " + id)
	}
	delete(r.entries, id)
	return nil
}

// GetByID returns the todo and true when found; a miss is (zero, false, nil).
func (r *Repository) GetByID(_ context.Context, id string) (todo.Todo, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return todo.Todo{}, false, nil
	}
	t, err := record.ToDomain(e.rec)
	if err != nil {
		return todo.Todo{}, false, err
	}
	return t, true, nil
}

// GetAll returns every todo, newest-created-first.
func (r *Repository) GetAll(_ context.Context) ([]todo.Todo, error) {
	return r.collect(func(record.Record) bool { return true })
}

// GetActive returns not-completed todos, newest-created-first.
func (r *Repository) GetActive(_ context.Context) ([]todo.Todo, error) {
	return r.collect(func(rec record.Record) bool { return !rec.Completed })
}

// GetCompleted returns completed todos, newest-created-first.
func (r *Repository) GetCompleted(_ context.Context) ([]todo.Todo, error) {
	return r.collect(func(rec record.Record) bool { return rec.Completed })
}

// Count returns the total number of todos.
func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

// CountActive returns the number of not-completed todos.
func (r *Repository) CountActive(_ context.Context) (int, error) {
	return r.count(func(rec record.Record) bool { return !rec.Completed })
}

// CountCompleted returns the number of completed todos.
func (r *Repository) CountCompleted(_ context.Context) (int, error) {
	return r.count(func(rec record.Record) bool { return rec.Completed })
}

func (r *Repository) count(keep func(record.Record) bool) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.entries {
		if keep(e.rec) {
			n++
		}
	}
	return n, nil
}

// collect snapshots matching entries under the read lock, then sorts by
// creation time descending with insertion sequence as the tie-break.
func (r *Repository) collect(keep func(record.Record) bool) ([]todo.Todo, error) {
	r.mu.RLock()
	matched := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e.rec) {
			matched = append(matched, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].rec.CreatedAt.Equal(matched[j].rec.CreatedAt) {
			return matched[i].rec.CreatedAt.After(matched[j].rec.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	todos := make([]todo.Todo, 0, len(matched))
	for _, e := range matched {
		t, err := record.ToDomain(e.rec)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}
