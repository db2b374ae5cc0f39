package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Open opens the SQLite database at dsn.
// PRE: dsn is a file path or MemoryDSN
// POST: in-memory databases are limited to one connection so every query sees the same data
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dsn, err)
	}
	return db, nil
}

// migration is one step of the schema history. Steps never change once released.
type migration func(tx *sql.Tx) error

var migrations = []migration{
	migrateBaseline,
	migratePages,
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion returns the applied schema version, 0 for an untracked database.
// PRE: db is a valid database connection
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema_version: %w", err)
	}
	return v, nil
}

// MigrateDB applies every pending migration, each in its own transaction.
// PRE: db is a valid database connection
// POST: SchemaVersion(db) == LatestSchemaVersion(); foreign keys enforced; WAL mode on file databases
func MigrateDB(db *sql.DB, dsn string) error {
	if dsn != MemoryDSN {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", version, err)
		}
		if err := migrations[i](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: record version: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", version, err)
		}
	}
	return nil
}

func migrateBaseline(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS capacity_row (
		id INTEGER PRIMARY KEY,
		tm_area TEXT NOT NULL,
		tm_region TEXT NOT NULL,
		tm_division TEXT NOT NULL,
		tm_territory TEXT NOT NULL,
		capacity_percent INTEGER NOT NULL,
		pacing_percent INTEGER NOT NULL,
		region_color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS filter_option (
		category TEXT NOT NULL,
		value TEXT NOT NULL,
		position INTEGER NOT NULL,
		is_default INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (category, value)
	);

	CREATE TABLE IF NOT EXISTS state_area (
		state TEXT PRIMARY KEY,
		area TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS state_capacity (
		state TEXT PRIMARY KEY,
		capacity INTEGER NOT NULL,
		tile_row INTEGER NOT NULL,
		tile_col INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS territory_capacity (
		position INTEGER PRIMARY KEY,
		territory TEXT NOT NULL,
		capacity INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_capacity_row_area ON capacity_row(tm_area, tm_region);
	`)
	return err
}

func migratePages(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS page (
		view TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT ''
	);
	`)
	return err
}
