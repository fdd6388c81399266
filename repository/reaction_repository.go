package repository

import "context"

// ReactionRepository is the database surface for per-post reaction
// counters.
//
// Increment is a single atomic upsert, so two concurrent reactions on the
// same (post, type) pair cannot lose an update. Decrement runs two
// statements and must be called inside a transaction.
type ReactionRepository interface {
	// Increment bumps the counter for (postID, reactionType), creating
	// the row with count 1 on first use, and returns the new count.
	Increment(ctx context.Context, postID int64, reactionType string) (int, error)
	// Decrement lowers the counter, deleting the row when the count was
	// 1. Returns the remaining count (0 after deletion) or
	// pkg.ErrNotFound when no such row exists.
	Decrement(ctx context.Context, postID int64, reactionType string) (int, error)
}
