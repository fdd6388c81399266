package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/pkg"
)

// sqlReactionRepo implements ReactionRepository over database/sql.
type sqlReactionRepo struct {
	db database.TxQuerier
}

// NewSQLReactionRepo returns a ReactionRepository over the given querier.
func NewSQLReactionRepo(db database.TxQuerier) ReactionRepository {
	return &sqlReactionRepo{db: db}
}

func (r *sqlReactionRepo) Increment(ctx context.Context, postID int64, reactionType string) (int, error) {
	// Upsert-with-increment in one statement. The database serializes
	// concurrent calls on the primary key, so no increment is lost.
	query := `
		INSERT INTO post_reactions (post_id, reaction_type, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (post_id, reaction_type)
		DO UPDATE SET count = post_reactions.count + 1
		RETURNING count`

	var count int
	if err := r.db.QueryRowContext(ctx, query, postID, reactionType).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment reaction: %w", err)
	}
	return count, nil
}

func (r *sqlReactionRepo) Decrement(ctx context.Context, postID int64, reactionType string) (int, error) {
	// Decrement only while the counter stays above zero; a counter at 1
	// is deleted instead, so a zero count never persists.
	updateQuery := `
		UPDATE post_reactions SET count = count - 1
		WHERE post_id = $1 AND reaction_type = $2 AND count > 1
		RETURNING count`

	var count int
	err := r.db.QueryRowContext(ctx, updateQuery, postID, reactionType).Scan(&count)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("decrement reaction: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"DELETE FROM post_reactions WHERE post_id = $1 AND reaction_type = $2",
		postID, reactionType)
	if err != nil {
		return 0, fmt.Errorf("delete reaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete reaction rows affected: %w", err)
	}
	if affected == 0 {
		return 0, pkg.ErrNotFound
	}
	return 0, nil
}
