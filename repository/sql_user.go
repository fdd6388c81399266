package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
)

// sqlUserRepo implements UserRepository over database/sql.
type sqlUserRepo struct {
	db database.TxQuerier
}

// NewSQLUserRepo returns a UserRepository over the given querier.
func NewSQLUserRepo(db database.TxQuerier) UserRepository {
	return &sqlUserRepo{db: db}
}

func (r *sqlUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.HashedPassword,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *sqlUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT id, email, username, hashed_password FROM users WHERE email = $1"

	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Username, &user.HashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}
