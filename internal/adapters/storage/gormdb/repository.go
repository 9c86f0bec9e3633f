// Package gormdb provides the ORM-backed TodoRepository. A single adapter
// covers every SQL engine by swapping the gorm dialector, which makes it the
// fallback backend for engine and ORM combinations without a bespoke
// implementation.
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

type todoModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string `gorm:"size:255;not null"`
	Completed bool   `gorm:"not null;default:false"`
	Priority  string `gorm:"size:16;not null"`
	CreatedAt time.Time
	DueDate   *time.Time
}

func (todoModel) TableName() string { return "todos" }

func toModel(rec record.Record) todoModel {
	return todoModel{
		ID:        rec.ID,
		Title:     rec.Title,
		Completed: rec.Completed,
		Priority:  rec.Priority,
		CreatedAt: rec.CreatedAt,
		DueDate:   rec.DueDate,
	}
}

func toRecord(m todoModel) record.Record {
	return record.Record{
		ID:        m.ID,
		Title:     m.Title,
		Completed: m.Completed,
		Priority:  m.Priority,
		CreatedAt: m.CreatedAt,
		DueDate:   m.DueDate,
	}
}

// Repository is the gorm implementation of ports.TodoRepository.
type Repository struct {
	db   *gorm.DB
	name string
}

// Open connects to the engine ("sqlite", "mysql", or "postgresql") at dsn
// and migrates the todos table.
func Open(ctx context.Context, engine, dsn string) (*Repository, error) {
	var dialector gorm.Dialector
	switch engine {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql engine %q", engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", engine, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	if engine == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging %s database: %w", engine, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&todoModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating todos table: %w", err)
	}

	return &Repository{db: db, name: engine}, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return r.name }

// HealthCheck implements ports.HealthChecker.
func (r *Repository) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Create assigns a UUID identifier and inserts the todo.
func (r *Repository) Create(ctx context.Context, t todo.Todo) (string, error) {
	id := uuid.NewString()
	model := toModel(record.ToRecord(t.WithID(id)))

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", fmt.Errorf("inserting todo: %w", err)
	}
	return id, nil
}

// Update loads the row, applies the patch, and saves the full row back.
func (r *Repository) Update(ctx context.Context, id string, patch ports.TodoPatch) (todo.Todo, error) {
	var model todoModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}
	if err != nil {
		return todo.Todo{}, fmt.Errorf("fetching todo %s: %w", id, err)
	}

	rec, err := record.ApplyPatch(toRecord(model), patch)
	if err != nil {
		return todo.Todo{}, err
	}

	// Save writes every column, so cleared due dates reach the database.
	model = toModel(rec)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return todo.Todo{}, fmt.Errorf("updating todo %s: %w", id, err)
	}
	return record.ToDomain(rec)
}

// Delete removes the row, failing with not-found when nothing matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&todoModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting todo %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("no todo with id " + id)
	}
	return nil
}

// GetByID returns the todo and true when found; a miss is (zero, false, nil).
func (r *Repository) GetByID(ctx context.Context, id string) (todo.Todo, bool, error) {
	var model todoModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return todo.Todo{}, false, nil
	}
	if err != nil {
		return todo.Todo{}, false, fmt.Errorf("fetching todo %s: %w", id, err)
	}

	t, err := record.ToDomain(toRecord(model))
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
	return r.list(ctx, boolPtr(false))
}

// GetCompleted returns completed todos, newest-created-first.
func (r *Repository) GetCompleted(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, boolPtr(true))
}

// Count returns the total number of todos.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

// CountActive returns the number of not-completed todos.
func (r *Repository) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, boolPtr(false))
}

// CountCompleted returns the number of completed todos.
func (r *Repository) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, boolPtr(true))
}

func (r *Repository) list(ctx context.Context, completed *bool) ([]todo.Todo, error) {
	tx := r.db.WithContext(ctx).Order("created_at DESC")
	if completed != nil {
		tx = tx.Where("completed = ?", *completed)
	}

	var models []todoModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	todos := make([]todo.Todo, 0, len(models))
	for _, model := range models {
		t, err := record.ToDomain(toRecord(model))
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *Repository) count(ctx context.Context, completed *bool) (int, error) {
	tx := r.db.WithContext(ctx).Model(&todoModel{})
	if completed != nil {
		tx = tx.Where("completed = ?", *completed)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return int(n), nil
}

func boolPtr(b bool) *bool { return &b }
