// Package sqlitedb provides the bespoke sqlite TodoRepository. It talks to
// the embedded database directly through sqlx with squirrel-built queries,
// using the pure-Go modernc driver.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

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

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	priority   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	due_date   TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at);
`

var todoColumns = []string{"id", "title", "completed", "priority", "created_at", "due_date"}

// Repository is the sqlite implementation of ports.TodoRepository. It owns a
// single connection pool for the process lifetime.
type Repository struct {
	db *sqlx.DB
}

// Open connects to the sqlite database at dsn (":memory:" or a file path)
// and ensures the schema exists. The connection is opened once and reused.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// sqlite allows a single writer; serializing through one connection
	// avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating todos schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return "sqlite" }

// HealthCheck implements ports.HealthChecker.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create assigns a UUID identifier and inserts the todo.
func (r *Repository) Create(ctx context.Context, t todo.Todo) (string, error) {
	id := uuid.NewString()
	rec := record.ToRecord(t.WithID(id))

	query, args, err := sq.Insert("todos").
		Columns(todoColumns...).
		Values(rec.ID, rec.Title, rec.Completed, rec.Priority, rec.CreatedAt, rec.DueDate).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("inserting todo: %w", err)
	}
	return id, nil
}

// Update loads the row, applies the patch, and writes it back. The two
// statements are not wrapped in a transaction: concurrent updates on the
// same identifier have last-write-wins semantics.
func (r *Repository) Update(ctx context.Context, id string, patch ports.TodoPatch) (todo.Todo, error) {
	rec, found, err := r.fetch(ctx, id)
	if err != nil {
		return todo.Todo{}, err
	}
	if !found {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}

	rec, err = record.ApplyPatch(rec, patch)
	if err != nil {
		return todo.Todo{}, err
	}

	query, args, err := sq.Update("todos").
		Set("title", rec.Title).
		Set("completed", rec.Completed).
		Set("priority", rec.Priority).
		Set("due_date", rec.DueDate).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return todo.Todo{}, fmt.Errorf("building update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return todo.Todo{}, fmt.Errorf("updating todo %s: %w", id, err)
	}
	return record.ToDomain(rec)
}

// Delete removes the row, failing with not-found when nothing matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := sq.Delete("todos").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("no todo with id " + id)
	}
	return nil
}

// GetByID returns the todo and true when found; a miss is (zero, false, nil).
func (r *Repository) GetByID(ctx context.Context, id string) (todo.Todo, bool, error) {
	rec, found, err := r.fetch(ctx, id)
	if err != nil || !found {
		return todo.Todo{}, false, err
	}
	t, err := record.ToDomain(rec)
	if err != nil {
		return todo.Todo{}, false, err
	}
	return t, true, nil
}

// GetAll returns every todo, newest-created-first.
func (r *Repository) GetAll(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, nil)
}

// GetActive returns not-completed todos, newest-created-first.
func (r *Repository) GetActive(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, sq.Eq{"completed": false})
}

// GetCompleted returns completed todos, newest-created-first.
func (r *Repository) GetCompleted(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, sq.Eq{"completed": true})
}

// Count returns the total number of todos.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

// CountActive returns the number of not-completed todos.
func (r *Repository) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, sq.Eq{"completed": false})
}

// CountCompleted returns the number of completed todos.
func (r *Repository) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, sq.Eq{"completed": true})
}

func (r *Repository) fetch(ctx context.Context, id string) (record.Record, bool, error) {
	query, args, err := sq.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return record.Record{}, false, fmt.Errorf("building select query: %w", err)
	}

	var rec record.Record
	if err := r.db.GetContext(ctx, &rec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.Record{}, false, nil
		}
		return record.Record{}, false, fmt.Errorf("fetching todo %s: %w", id, err)
	}
	return rec, true, nil
}

func (r *Repository) list(ctx context.Context, where sq.Sqlizer) ([]todo.Todo, error) {
	builder := sq.Select(todoColumns...).
		From("todos").
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	var recs []record.Record
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	todos := make([]todo.Todo, 0, len(recs))
	for _, rec := range recs {
		t, err := record.ToDomain(rec)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *Repository) count(ctx context.Context, where sq.Sqlizer) (int, error) {
	builder := sq.Select("COUNT(*)").From("todos")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return n, nil
}
