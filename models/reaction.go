package models

// PostReaction is a counted reaction label on a post, one row per
// distinct (post, label) pair. The count never persists at zero: the row
// is deleted instead.
type PostReaction struct {
	PostID       int64  `json:"post_id"`
	ReactionType string `json:"reaction_type"`
	Count        int    `json:"count"`
}
