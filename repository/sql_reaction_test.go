package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/blogapi/pkg"
)

func TestReactionIncrement(t *testing.T) {
	db := newTestDB(t)
	posts := NewSQLPostRepo(db)
	reactions := NewSQLReactionRepo(db)
	ctx := context.Background()

	post := seedPost(t, posts, "Reactable", "c", "alice", time.Now().UTC())

	count, err := reactions.Increment(ctx, post.ID, "👍")
	if err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	count, err = reactions.Increment(ctx, post.ID, "👍")
	if err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	// Distinct reaction types count independently.
	count, err = reactions.Increment(ctx, post.ID, "🎉")
	if err != nil {
		t.Fatalf("increment other type: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected independent count 1, got %d", count)
	}
}

func TestReactionDecrement(t *testing.T) {
	db := newTestDB(t)
	posts := NewSQLPostRepo(db)
	reactions := NewSQLReactionRepo(db)
	ctx := context.Background()

	post := seedPost(t, posts, "Reactable", "c", "alice", time.Now().UTC())

	for i := 0; i < 3; i++ {
		if _, err := reactions.Increment(ctx, post.ID, "👍"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	count, err := reactions.Decrement(ctx, post.ID, "👍")
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	// Down to 1, then the next decrement deletes the row.
	if _, err := reactions.Decrement(ctx, post.ID, "👍"); err != nil {
		t.Fatalf("decrement to 1: %v", err)
	}
	count, err = reactions.Decrement(ctx, post.ID, "👍")
	if err != nil {
		t.Fatalf("decrement at 1: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected remaining count 0, got %d", count)
	}

	// Gone now.
	if _, err := reactions.Decrement(ctx, post.ID, "👍"); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReactionDecrementMissing(t *testing.T) {
	db := newTestDB(t)
	posts := NewSQLPostRepo(db)
	reactions := NewSQLReactionRepo(db)
	ctx := context.Background()

	post := seedPost(t, posts, "Reactable", "c", "alice", time.Now().UTC())

	if _, err := reactions.Decrement(ctx, post.ID, "👍"); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
