// Package sqlxdb provides a TodoRepository that works against any supported
// SQL engine through database/sql. Queries are built with squirrel so the
// same code serves sqlite, MySQL, and PostgreSQL, with only the placeholder
// format and bootstrap DDL varying per engine.
package sqlxdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	// Registered database/sql drivers for the supported engines.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
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

const (
	sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	priority   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	due_date   TIMESTAMP
);`

	mysqlSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id         VARCHAR(36) PRIMARY KEY,
	title      VARCHAR(255) NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	priority   VARCHAR(16) NOT NULL,
	created_at DATETIME(6) NOT NULL,
	due_date   DATETIME(6)
);`

	postgresSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id         VARCHAR(36) PRIMARY KEY,
	title      VARCHAR(255) NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	priority   VARCHAR(16) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	due_date   TIMESTAMPTZ
);`
)

var todoColumns = []string{"id", "title", "completed", "priority", "created_at", "due_date"}

// Repository is a multi-engine SQL implementation of ports.TodoRepository.
type Repository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	name    string
}

// Open connects to the engine ("sqlite", "mysql", or "postgresql") at dsn
// and ensures the todos table exists.
func Open(ctx context.Context, engine, dsn string) (*Repository, error) {
	var (
		driver      string
		schema      string
		placeholder sq.PlaceholderFormat
	)
	switch engine {
	case "sqlite":
		driver, schema, placeholder = "sqlite", sqliteSchema, sq.Question
	case "mysql":
		driver, schema, placeholder = "mysql", mysqlSchema, sq.Question
	case "postgresql":
		driver, schema, placeholder = "postgres", postgresSchema, sq.Dollar
	default:
		return nil, fmt.Errorf("unsupported sql engine %q", engine)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", engine, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", engine, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating todos schema: %w", err)
	}

	return &Repository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		name:    engine,
	}, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return r.name }

// HealthCheck implements ports.HealthChecker.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create assigns a UUID identifier and inserts the todo.
func (r *Repository) Create(ctx context.Context, t todo.Todo) (string, error) {
	id := uuid.NewString()
	rec := record.ToRecord(t.WithID(id))

	query, args, err := r.builder.Insert("todos").
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

// Update loads the row, applies the patch, and writes it back.
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

	query, args, err := r.builder.Update("todos").
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
	query, args, err := r.builder.Delete("todos").Where(sq.Eq{"id": id}).ToSql()
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
	query, args, err := r.builder.Select(todoColumns...).
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
	builder := r.builder.Select(todoColumns...).
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
	builder := r.builder.Select("COUNT(*)").From("todos")
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
