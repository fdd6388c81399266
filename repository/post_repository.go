// Package repository holds the data-access interfaces and their SQL
// implementations. Services depend on the interfaces, never directly on
// SQL, so storage can be swapped (tests run the same repositories against
// an in-memory SQLite database).
package repository

import (
	"context"

	"github.com/akinalp/blogapi/models"
)

// PostRepository is the database surface for blog posts.
//
// Every method is atomic on its own; multi-statement operations are
// composed by the service layer inside a single transaction via
// database.WithTx.
type PostRepository interface {
	// Create inserts the post and fills in its generated ID.
	Create(ctx context.Context, post *models.BlogPost) error
	// Count returns the number of posts in the store.
	Count(ctx context.Context) (int64, error)
	// List returns one page ordered by creation time (ID as tiebreak so
	// equal timestamps page deterministically).
	List(ctx context.Context, limit, offset int, descending bool) ([]models.BlogPost, error)
	// GetByID returns the post or pkg.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.BlogPost, error)
	// Update writes only the supplied fields and returns the new row, or
	// pkg.ErrNotFound when the ID is absent.
	Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.BlogPost, error)
	// Delete removes the post, or returns pkg.ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// SetImageURL stores the served image path on the post.
	SetImageURL(ctx context.Context, id int64, url string) error
	// SearchCount returns how many posts match the substring query.
	SearchCount(ctx context.Context, query string) (int64, error)
	// Search returns a page of posts whose title, content, or author
	// contains the query, case-insensitively.
	Search(ctx context.Context, query string, limit, offset int) ([]models.BlogPost, error)
}
