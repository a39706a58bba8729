package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		phone TEXT,
		reward_points INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS crime_reports (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		description TEXT NOT NULL,
		-- Point coordinates, stored split so they can be indexed
		longitude REAL NOT NULL,
		latitude REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Supports the bounding-box prefilter of the nearby query
	CREATE INDEX IF NOT EXISTS idx_crime_reports_lat_lng
		ON crime_reports (latitude, longitude);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
