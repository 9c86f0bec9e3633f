// Package storage selects and opens the persistence backend described by
// configuration. Resolution is a pure function over the engine and ORM
// settings so the fallback rules stay testable without live connections.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/gormdb"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/memory"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/mongodb"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/sqlitedb"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/sqlxdb"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/platform/config"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// Adapter identifies a concrete TodoRepository implementation.
type Adapter string

const (
	AdapterMemory Adapter = "memory"
	AdapterSqlite Adapter = "sqlite"
	AdapterSqlx   Adapter = "sqlx"
	AdapterGorm   Adapter = "gorm"
	AdapterMongo  Adapter = "mongo"
)

// Resolve maps an engine and ORM setting to the adapter that serves it.
//
// The memory and mongodb engines ignore the ORM setting since exactly one
// adapter speaks each. For SQL engines, the requested ORM wins when an
// adapter exists for it; native sqlite has a bespoke adapter, and every
// remaining combination falls back to the gorm adapter, which covers all
// SQL engines.
func Resolve(engine, orm string) Adapter {
	switch engine {
	case config.EngineMemory:
		return AdapterMemory
	case config.EngineMongoDB:
		return AdapterMongo
	}

	switch orm {
	case config.ORMGorm:
		return AdapterGorm
	case config.ORMSqlx:
		return AdapterSqlx
	case config.ORMNative:
		if engine == config.EngineSqlite {
			return AdapterSqlite
		}
	}
	return AdapterGorm
}

// Open resolves the configured backend and establishes its connection. The
// returned close function releases the connection and is a no-op for the
// in-memory backend. Open is called once at startup; every request shares
// the connection it creates.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (ports.TodoRepository, func() error, error) {
	adapter := Resolve(cfg.Engine, cfg.ORM)
	logger.InfoContext(ctx, "opening storage backend",
		slog.String("engine", cfg.Engine),
		slog.String("orm", cfg.ORM),
		slog.String("adapter", string(adapter)),
	)

	noop := func() error { return nil }

	switch adapter {
	case AdapterMemory:
		return memory.New(), noop, nil

	case AdapterSqlite:
		repo, err := sqlitedb.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		return repo, repo.Close, nil

	case AdapterSqlx:
		repo, err := sqlxdb.Open(ctx, cfg.Engine, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlx backend: %w", err)
		}
		return repo, repo.Close, nil

	case AdapterGorm:
		repo, err := gormdb.Open(ctx, cfg.Engine, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gorm backend: %w", err)
		}
		return repo, repo.Close, nil

	case AdapterMongo:
		repo, err := mongodb.Open(ctx, cfg.DSN, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("opening mongodb backend: %w", err)
		}
		return repo, repo.Close, nil
	}

	return nil, nil, fmt.Errorf("no adapter for engine %q orm %q", cfg.Engine, cfg.ORM)
}
