package sqlite

import "database/sql"

// schema sets up the local cache. It runs on startup to ensure the table exists.
// value holds the JSON snapshot document exactly as the remote stores it.
const schema = `
CREATE TABLE IF NOT EXISTS cache (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
