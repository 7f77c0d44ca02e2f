package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

// DB returns the underlying *sql.DB instance
func (d *Database) DB() *sql.DB {
	return d.db
}

func New(path string) (*Database, error) {
	// Create the directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with a single connection
	dbInstance := &Database{db: db}

	// Run migrations
	if err := dbInstance.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return dbInstance, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Begin starts a new transaction
func (d *Database) Begin() (*sql.Tx, error) {
	return d.db.Begin()
}

// migrate runs the database migrations
func (d *Database) migrate() error {
	// Check if migrations table exists
	var tableExists int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='_migrations'`,
	).Scan(&tableExists)

	if err != nil {
		return fmt.Errorf("failed to check migrations table: %v", err)
	}

	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	// Create migrations table if it doesn't exist
	if tableExists == 0 {
		if _, err := tx.Exec(`
			CREATE TABLE _migrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				run_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`); err != nil {
			return fmt.Errorf("failed to create migrations table: %v", err)
		}
	}

	// Run migrations in order
	for _, migration := range getMigrations() {
		// Check if migration already ran
		var count int
		err := tx.QueryRow(
			`SELECT COUNT(*) FROM _migrations WHERE name = ?`,
			migration.name,
		).Scan(&count)

		if err != nil {
			return fmt.Errorf("failed to check migration status: %v", err)
		}

		if count == 0 {
			// Run migration
			if _, err := tx.Exec(migration.statement); err != nil {
				return fmt.Errorf("failed to run migration %s: %v", migration.name, err)
			}

			// Record migration
			if _, err := tx.Exec(
				`INSERT INTO _migrations (name) VALUES (?)`,
				migration.name,
			); err != nil {
				return fmt.Errorf("failed to record migration %s: %v", migration.name, err)
			}
		}
	}

	return tx.Commit()
}

type migration struct {
	name      string
	statement string
}

func getMigrations() []migration {
	return []migration{
		{
			name: "initial_schema",
			statement: `
				-- Users table
				CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					username TEXT NOT NULL,
					email TEXT NOT NULL UNIQUE,
					hashed_password TEXT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);

				-- Calendars
				CREATE TABLE IF NOT EXISTS calendars (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL DEFAULT 'My Calendar',
					color TEXT NOT NULL DEFAULT '#1a73e8',
					visible BOOLEAN NOT NULL DEFAULT 1,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
				);

				CREATE INDEX IF NOT EXISTS idx_calendars_user ON calendars(user_id);

				-- Events
				CREATE TABLE IF NOT EXISTS events (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					calendar_id TEXT NOT NULL,
					title TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					start_time TIMESTAMP NOT NULL,
					end_time TIMESTAMP NOT NULL,
					all_day BOOLEAN NOT NULL DEFAULT 0,
					color TEXT NOT NULL DEFAULT '#1a73e8',
					location TEXT NOT NULL DEFAULT '',
					recurrence TEXT,
					timezone TEXT NOT NULL DEFAULT 'UTC',
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
					FOREIGN KEY (calendar_id) REFERENCES calendars(id)
				);

				CREATE INDEX IF NOT EXISTS idx_events_user_window ON events(user_id, start_time, end_time);
				CREATE INDEX IF NOT EXISTS idx_events_calendar ON events(calendar_id);

				-- Settings, one row per user
				CREATE TABLE IF NOT EXISTS settings (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL UNIQUE,
					language TEXT NOT NULL DEFAULT 'en',
					date_format TEXT NOT NULL DEFAULT 'MM/DD/YYYY',
					time_format TEXT NOT NULL DEFAULT 'h:mm a',
					time_zone TEXT NOT NULL DEFAULT 'UTC',
					default_event_duration INTEGER NOT NULL DEFAULT 60,
					week_start TEXT NOT NULL DEFAULT 'sunday',
					show_weekends BOOLEAN NOT NULL DEFAULT 1,
					working_hours_start TEXT NOT NULL DEFAULT '09:00',
					working_hours_end TEXT NOT NULL DEFAULT '17:00',
					location TEXT NOT NULL DEFAULT '',
					notify_email BOOLEAN NOT NULL DEFAULT 1,
					notify_desktop BOOLEAN NOT NULL DEFAULT 1,
					offline_mode BOOLEAN NOT NULL DEFAULT 0,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
				);
			`,
		},
		// Add more migrations here as needed
	}
}
