package db

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/lib/pq"

	"github.com/tropicaldog17/zakat/internal/config"
	"github.com/tropicaldog17/zakat/internal/models"
)

// DB wraps the GORM database connection
type DB struct {
	*gorm.DB
}

// DSN builds the postgres connection string for cfg.
func DSN(cfg config.Database) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Connect opens the configured database and migrates the cache tables.
func Connect(cfg config.Database) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(DSN(cfg))
	case "sqlite", "":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{gdb}
	if err := d.Migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Migrate creates or updates the cache and request-counter tables.
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&models.CachedEntry{}, &models.RequestCounter{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks if the database connection is healthy
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetSQLDB returns the underlying *sql.DB
func (db *DB) GetSQLDB() (*sql.DB, error) {
	return db.DB.DB()
}
