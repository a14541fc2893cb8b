package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change. Migrations are embedded rather
// than loaded from disk so a single binary carries its schema.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_projects",
		SQL: `
			CREATE TABLE IF NOT EXISTS projects (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_magnetic_readings",
		SQL: `
			CREATE TABLE IF NOT EXISTS magnetic_readings (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				altitude REAL DEFAULT 0,
				accuracy REAL DEFAULT 0,
				field_x REAL NOT NULL,
				field_y REAL NOT NULL,
				field_z REAL NOT NULL,
				total_field REAL NOT NULL,
				heading REAL DEFAULT -1,
				note TEXT DEFAULT '',
				captured_at INTEGER NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_readings_project ON magnetic_readings(project_id);
			CREATE INDEX IF NOT EXISTS idx_readings_captured ON magnetic_readings(captured_at);
		`,
	},
	{
		Version: 3,
		Name:    "create_grid_files",
		SQL: `
			CREATE TABLE IF NOT EXISTS grid_files (
				name TEXT PRIMARY KEY,
				data TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// RunMigrations applies every pending migration in version order
func RunMigrations(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", m.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}

	log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	return nil
}
