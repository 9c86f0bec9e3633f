// Package config provides configuration loading and validation for the
// service. Configuration is loaded from YAML files with environment variable
// overrides using a layered system: defaults -> base.yaml -> {profile}.yaml
// -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Storage StorageConfig `koanf:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Supported storage engines.
const (
	EngineMemory     = "memory"
	EngineSqlite     = "sqlite"
	EngineMySQL      = "mysql"
	EnginePostgreSQL = "postgresql"
	EngineMongoDB    = "mongodb"
)

// Supported data access layers for SQL engines. Non-SQL engines ignore the
// setting.
const (
	ORMNative = "native"
	ORMGorm   = "gorm"
	ORMSqlx   = "sqlx"
	ORMMongo  = "mongo"
)

// StorageConfig holds persistence backend settings. Engine picks the
// database, ORM picks the data access layer for SQL engines, DSN is the
// connection string, and Database names the MongoDB database.
type StorageConfig struct {
	Engine   string `koanf:"engine"`
	ORM      string `koanf:"orm"`
	DSN      string `koanf:"dsn"`
	Database string `koanf:"database"`
}
