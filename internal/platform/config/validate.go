package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Storage.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (st *StorageConfig) validate() error {
	var errs []error

	switch st.Engine {
	case EngineMemory, EngineSqlite, EngineMySQL, EnginePostgreSQL, EngineMongoDB:
		// Valid engines.
	default:
		errs = append(errs, fmt.Errorf(
			"storage.engine must be one of: memory, sqlite, mysql, postgresql, mongodb; got %q", st.Engine))
	}

	switch st.ORM {
	case ORMNative, ORMGorm, ORMSqlx, ORMMongo:
		// Valid data access layers.
	default:
		errs = append(errs, fmt.Errorf(
			"storage.orm must be one of: native, gorm, sqlx, mongo; got %q", st.ORM))
	}

	if st.Engine != EngineMemory && st.DSN == "" {
		errs = append(errs, fmt.Errorf("storage.dsn must not be empty for engine %q", st.Engine))
	}
	if st.Engine == EngineMongoDB && st.Database == "" {
		errs = append(errs, errors.New("storage.database must not be empty for engine mongodb"))
	}

	return errors.Join(errs...)
}
