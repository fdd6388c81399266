package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// testSchema mirrors the production DDL in SQLite dialect. The
// repositories only use statements valid on both engines, so the same
// code under test runs against this in-memory database.
const testSchema = `
CREATE TABLE users (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	email           TEXT NOT NULL UNIQUE,
	username        TEXT,
	hashed_password TEXT NOT NULL
);

CREATE TABLE blog_posts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	author     TEXT NOT NULL,
	image_url  TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE post_reactions (
	post_id       INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
	reaction_type TEXT NOT NULL,
	count         INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (post_id, reaction_type)
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// A :memory: database exists per connection, so the pool must stay
	// at a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
