// Package database manages the Postgres connection pool and transaction
// helpers.
//
// The pool is an injected dependency with an explicit lifecycle: main
// constructs it, passes it down, and closes it on shutdown. No package
// globals.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// DB wraps the sql.DB pool. *sql.DB is safe for concurrent use; every
// request borrows a connection from the pool and returns it when done.
type DB struct {
	Conn *sql.DB
}

// New opens a Postgres pool from an already-sanitized connection URL and
// verifies it with a ping before the server starts accepting requests.
// Schema changes are applied by the migration tooling, not here.
func New(ctx context.Context, url string) (*DB, error) {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	// Recycle connections periodically so the pool never hands out a
	// socket the server side has already dropped.
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("[database] connection pool established")
	return &DB{Conn: conn}, nil
}

// Close releases the pool.
func (db *DB) Close() error {
	return db.Conn.Close()
}
