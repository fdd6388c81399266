package services

import (
	"database/sql"
	"testing"

	"github.com/akinalp/blogapi/database"
	_ "modernc.org/sqlite"
)

// testSchema is the SQLite rendition of the production DDL. The
// repositories stick to statements valid on both engines, so the
// services run unchanged against this in-memory database.
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

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// :memory: lives per connection; keep the pool at one.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(testSchema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return &database.DB{Conn: conn}
}
