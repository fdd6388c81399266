// Package services holds the business logic between the HTTP handlers
// and the repositories. Services never touch http.Request or raw SQL.
//
// Every mutating operation runs inside exactly one transaction
// (database.WithTx): validation happens first, and a failure anywhere
// rolls the whole operation back, so partial writes cannot survive.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/repository"
)

// PostService is the business-logic surface for posts, reactions, and
// search.
type PostService interface {
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.BlogPost, error)
	// List returns a page in the given creation-time order ("asc" or
	// "desc") plus the computed next/previous offsets.
	List(ctx context.Context, limit, offset int, order string) (*models.PostPage, error)
	Get(ctx context.Context, id int64) (*models.BlogPost, error)
	Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.BlogPost, error)
	Delete(ctx context.Context, id int64) error
	// React increments the (post, reactionType) counter, creating it at 1.
	React(ctx context.Context, postID int64, reactionType string) (int, error)
	// Unreact decrements the counter, removing the row at zero. The
	// returned count is 0 once the row is gone.
	Unreact(ctx context.Context, postID int64, reactionType string) (int, error)
	Search(ctx context.Context, query string, limit, offset int) (*models.SearchResult, error)
}

type postService struct {
	db    *database.DB
	posts repository.PostRepository
}

// NewPostService wires a PostService. Reads go through the injected
// repository; mutations open a transaction and run tx-scoped
// repositories inside it.
func NewPostService(db *database.DB, posts repository.PostRepository) PostService {
	return &postService{db: db, posts: posts}
}

func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post := &models.BlogPost{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		return repository.NewSQLPostRepo(tx).Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, limit, offset int, order string) (*models.PostPage, error) {
	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx, limit, offset, order == "desc")
	if err != nil {
		return nil, err
	}

	page := &models.PostPage{
		TotalPosts: total,
		Limit:      limit,
		Offset:     offset,
		Posts:      posts,
	}
	if next := offset + limit; int64(next) < total {
		page.NextOffset = &next
	}
	if prev := offset - limit; prev >= 0 {
		page.PreviousOffset = &prev
	}
	return page, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, postNotFound(err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var post *models.BlogPost
	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		var txErr error
		post, txErr = repository.NewSQLPostRepo(tx).Update(ctx, id, req)
		return txErr
	})
	if err != nil {
		return nil, postNotFound(err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		return repository.NewSQLPostRepo(tx).Delete(ctx, id)
	})
	return postNotFound(err)
}

func (s *postService) React(ctx context.Context, postID int64, reactionType string) (int, error) {
	if reactionType == "" {
		return 0, fmt.Errorf("%w: reaction_type is required", pkg.ErrBadRequest)
	}

	var count int
	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		// Reacting to a missing post is a 404, not an orphan row.
		if _, err := repository.NewSQLPostRepo(tx).GetByID(ctx, postID); err != nil {
			return postNotFound(err)
		}
		var txErr error
		count, txErr = repository.NewSQLReactionRepo(tx).Increment(ctx, postID, reactionType)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *postService) Unreact(ctx context.Context, postID int64, reactionType string) (int, error) {
	if reactionType == "" {
		return 0, fmt.Errorf("%w: reaction_type is required", pkg.ErrBadRequest)
	}

	var count int
	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		var txErr error
		count, txErr = repository.NewSQLReactionRepo(tx).Decrement(ctx, postID, reactionType)
		if errors.Is(txErr, pkg.ErrNotFound) {
			return fmt.Errorf("%w: reaction not found", pkg.ErrNotFound)
		}
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *postService) Search(ctx context.Context, query string, limit, offset int) (*models.SearchResult, error) {
	total, err := s.posts.SearchCount(ctx, query)
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return &models.SearchResult{TotalCount: 0, Posts: []models.BlogPost{}}, nil
	}

	posts, err := s.posts.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.SearchResult{TotalCount: total, Posts: posts}, nil
}

// postNotFound rewrites a bare repository ErrNotFound into the detail
// string clients see. Other errors pass through unchanged.
func postNotFound(err error) error {
	if errors.Is(err, pkg.ErrNotFound) {
		return fmt.Errorf("%w: post not found", pkg.ErrNotFound)
	}
	return err
}
