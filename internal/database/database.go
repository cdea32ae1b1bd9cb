package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// New opens the local SQLite database. A single connection keeps in-memory
// databases consistent across queries.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL,
		token TEXT NOT NULL,
		created_at INTEGER NOT NULL -- unix milliseconds
	);

	CREATE TABLE IF NOT EXISTS activity (
		id TEXT NOT NULL PRIMARY KEY,
		invocation_id TEXT NOT NULL,
		category TEXT NOT NULL,
		phase TEXT NOT NULL,
		message TEXT,
		created_at INTEGER NOT NULL -- unix milliseconds
	);

	CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity (created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
