package repository

import (
	"context"

	"github.com/akinalp/blogapi/models"
)

// UserRepository is the database surface for accounts. Accounts are only
// created and looked up; nothing in the API mutates or deletes them.
type UserRepository interface {
	// Create inserts the user and fills in its generated ID.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail returns the user or pkg.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
