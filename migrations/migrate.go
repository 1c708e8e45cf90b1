package main

import (
	"database/sql"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
)

//go:embed *.sql
var sqlFiles embed.FS

// Migration is one numbered SQL file, e.g. 001_cached_prices.sql.
type Migration struct {
	ID       int
	Filename string
	Content  string
}

func main() {
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	db, err := sql.Open("postgres", connString())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	if err := createMigrationsTable(db); err != nil {
		log.Fatal("Failed to create migrations table:", err)
	}

	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		log.Fatal("Failed to get current version:", err)
	}

	migrations, err := loadMigrations(sqlFiles)
	if err != nil {
		log.Fatal("Failed to load migrations:", err)
	}

	applied := 0
	for _, m := range migrations {
		if m.ID <= currentVersion {
			continue
		}
		if *dryRun {
			log.Printf("Pending migration %d: %s", m.ID, m.Filename)
			continue
		}
		log.Printf("Running migration %d: %s", m.ID, m.Filename)
		if err := runMigration(db, m); err != nil {
			log.Fatalf("Failed to run migration %d: %v", m.ID, err)
		}
		applied++
	}

	log.Printf("Schema at version %d, %d migration(s) applied", max(currentVersion, lastID(migrations)), applied)
}

// connString prefers DATABASE_URL and otherwise builds a DSN from the DB_* variables.
func connString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5433"),
		getEnv("DB_USER", "zakat_user"),
		getEnv("DB_PASSWORD", "zakat_password"),
		getEnv("DB_NAME", "zakat"),
		getEnv("DB_SSL_MODE", "disable"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			filename VARCHAR(255) NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	return err
}

func getCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{ID: id, Filename: name, Content: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].ID < migrations[j].ID })
	return migrations, nil
}

func lastID(migrations []Migration) int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].ID
}

func runMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.Content); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, filename) VALUES ($1, $2)",
		m.ID, m.Filename,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
