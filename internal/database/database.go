// Package database opens gorm connections for the recording backends,
// preferring Postgres and falling back to local SQLite.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seaward-sim/seaward/internal/config"
)

// Manager handles database connections for recording storage.
type Manager struct {
	DB             *gorm.DB
	IsSqlite       bool
	SqliteFilePath string
	Logger         zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect establishes a database connection, falling back to SQLite if
// Postgres is unreachable.
func (m *Manager) Connect(cfg config.DBConfig) error {
	var err error

	m.DB, err = GetPostgresDB(cfg)
	if err == nil {
		if sqlDB, dbErr := m.DB.DB(); dbErr == nil && sqlDB.Ping() == nil {
			sqlDB.SetMaxOpenConns(10)
			m.Logger.Info().Msg("Connected to Postgres")
			return nil
		}
	}

	m.Logger.Warn().Err(err).Msg("Postgres unavailable, using local SQLite")
	m.IsSqlite = true
	m.SqliteFilePath = cfg.SqlitePath
	m.DB, err = GetSqliteDB(cfg.SqlitePath)
	if err != nil {
		return fmt.Errorf("failed to get local SQLite DB: %w", err)
	}
	return nil
}

// GetPostgresDB returns a connection to the configured Postgres database.
func GetPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        10000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// GetSqliteDB returns a connection to a SQLite database. If path is empty,
// an in-memory database is used.
func GetSqliteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return db, nil
}
