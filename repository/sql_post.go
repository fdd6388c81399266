package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
)

// sqlPostRepo implements PostRepository over database/sql.
// $N placeholders, RETURNING, and LOWER(...) LIKE keep the statements
// valid on both Postgres (runtime) and SQLite (tests).
type sqlPostRepo struct {
	db database.TxQuerier
}

// NewSQLPostRepo returns a PostRepository over the given querier, which
// may be the pool or an open transaction.
func NewSQLPostRepo(db database.TxQuerier) PostRepository {
	return &sqlPostRepo{db: db}
}

const postColumns = "id, title, content, author, image_url, created_at"

func (r *sqlPostRepo) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (title, content, author, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Author, post.ImageURL, post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *sqlPostRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_posts").Scan(&total); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *sqlPostRepo) List(ctx context.Context, limit, offset int, descending bool) ([]models.BlogPost, error) {
	dir := "ASC"
	if descending {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM blog_posts
		ORDER BY created_at %s, id %s
		LIMIT $1 OFFSET $2`, postColumns, dir, dir)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *sqlPostRepo) GetByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	query := fmt.Sprintf("SELECT %s FROM blog_posts WHERE id = $1", postColumns)

	var post models.BlogPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Author, &post.ImageURL, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (r *sqlPostRepo) Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.BlogPost, error) {
	// Build the SET clause from the supplied fields only. Untouched
	// columns keep their values.
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.Author != nil {
		add("author", *req.Author)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE blog_posts SET %s
		WHERE id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args), postColumns)

	var post models.BlogPost
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&post.ID, &post.Title, &post.Content, &post.Author, &post.ImageURL, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return &post, nil
}

func (r *sqlPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqlPostRepo) SetImageURL(ctx context.Context, id int64, url string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE blog_posts SET image_url = $1 WHERE id = $2", url, id)
	if err != nil {
		return fmt.Errorf("set image url on post %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set image url rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqlPostRepo) SearchCount(ctx context.Context, query string) (int64, error) {
	pattern := likePattern(query)

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM blog_posts
		WHERE LOWER(title) LIKE $1 ESCAPE '\'
		   OR LOWER(content) LIKE $1 ESCAPE '\'
		   OR LOWER(author) LIKE $1 ESCAPE '\'`, pattern).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count search results: %w", err)
	}
	return total, nil
}

func (r *sqlPostRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.BlogPost, error) {
	pattern := likePattern(query)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM blog_posts
		WHERE LOWER(title) LIKE $1 ESCAPE '\'
		   OR LOWER(content) LIKE $1 ESCAPE '\'
		   OR LOWER(author) LIKE $1 ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, postColumns), pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE
// metacharacters so user input cannot widen the match.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}

func scanPosts(rows *sql.Rows) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Author, &post.ImageURL, &post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}
	return posts, nil
}
