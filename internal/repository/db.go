package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	// Ensure directory exists (skip for :memory: test databases)
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db}, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS course_materials (
			course_id TEXT NOT NULL,
			chapter_name TEXT NOT NULL,
			doc_uri TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (course_id, chapter_name, doc_uri)
		)`,
		`CREATE TABLE IF NOT EXISTS ocr_cache (
			course_id TEXT NOT NULL,
			chapter_name TEXT NOT NULL,
			doc_uri TEXT NOT NULL,
			ocr_text TEXT NOT NULL,
			last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (course_id, chapter_name, doc_uri)
		)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_name TEXT NOT NULL,
			assignment_name TEXT NOT NULL,
			assignment_uri TEXT NOT NULL,
			solution_uri TEXT,
			score INTEGER,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (course_name, assignment_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_materials_course ON course_materials(course_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}
