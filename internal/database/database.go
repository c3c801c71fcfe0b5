package database

import (
	"fmt"
	"time"

	"finledger/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// migrationSource locates the SQL migration files relative to the
// working directory of the server and migrate binaries.
const migrationSource = "file://migrations"

// Manager owns the database handle and its schema lifecycle.
type Manager struct {
	db  *gorm.DB
	url string
}

// NewManager connects to PostgreSQL and configures the connection pool.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, url: config.URL()}, nil
}

// Migrate applies pending SQL migrations from the migrations/ directory.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New(migrationSource, m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(mig)

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Reset drops the entire schema and reapplies every migration. It backs
// the admin-gated reset endpoint and must never run as part of normal
// startup.
func (m *Manager) Reset() error {
	logger.Get().Warn("Resetting database schema")

	mig, err := migrate.New(migrationSource, m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(mig)

	if err := mig.Drop(); err != nil {
		return fmt.Errorf("schema drop failed: %w", err)
	}

	// Drop removes the migration bookkeeping table too, so rebuild from a
	// fresh instance.
	fresh, err := migrate.New(migrationSource, m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(fresh)

	if err := fresh.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("schema rebuild failed: %w", err)
	}

	logger.Get().Info("Database schema reset complete")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}
