package config_test

import (
	"testing"
	"time"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Storage.Engine != config.EngineMemory {
		t.Errorf("Storage.Engine = %q, want \"memory\" for local", cfg.Storage.Engine)
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if cfg.Storage.Engine != config.EnginePostgreSQL {
		t.Errorf("Storage.Engine = %q, want \"postgresql\" for prod", cfg.Storage.Engine)
	}
	if cfg.Storage.DSN == "" {
		t.Error("Storage.DSN is empty, want non-empty for prod")
	}
}

func TestLoad_DefaultsApplyWhenUnset(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// Neither base.yaml nor local.yaml set these; they come from defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (default)", cfg.Server.Host)
	}
	if cfg.Storage.ORM != config.ORMNative {
		t.Errorf("Storage.ORM = %q, want \"native\" (default)", cfg.Storage.ORM)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideStorageBackend(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_STORAGE_ENGINE", "sqlite")
	t.Setenv("APP_STORAGE_ORM", "sqlx")
	t.Setenv("APP_STORAGE_DSN", ":memory:")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Storage.Engine != config.EngineSqlite {
		t.Errorf("Storage.Engine = %q, want \"sqlite\" (env override)", cfg.Storage.Engine)
	}
	if cfg.Storage.ORM != config.ORMSqlx {
		t.Errorf("Storage.ORM = %q, want \"sqlx\" (env override)", cfg.Storage.ORM)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_InvalidEngine(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Storage.Engine = "dynamodb"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for unknown engine")
	}
}

func TestValidate_InvalidORM(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Storage.ORM = "typeorm"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for unknown orm")
	}
}

func TestValidate_MissingDSNForSQLEngine(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Storage.Engine = config.EnginePostgreSQL
	cfg.Storage.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for empty dsn")
	}
}

func TestValidate_MissingMongoDatabase(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Storage.Engine = config.EngineMongoDB
	cfg.Storage.DSN = "mongodb://localhost:27017"
	cfg.Storage.Database = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for empty mongodb database")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: config.StorageConfig{
			Engine:   config.EngineMemory,
			ORM:      config.ORMNative,
			DSN:      "file:todos.db",
			Database: "todos",
		},
	}
}
