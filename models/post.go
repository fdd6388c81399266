// Package models defines the domain structs and the request/response
// shapes of the API, with their boundary validation.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// BlogPost is a published post. Author is a free-text display name, not a
// reference to a user account. CreatedAt is server-assigned and never
// changes after creation.
type BlogPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest is the body of POST /posts/.
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Author   string  `json:"author"`
	ImageURL *string `json:"image_url"`
}

// Validate checks required fields and length bounds.
func (r *CreatePostRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > 200 {
		return fmt.Errorf("title must be at most 200 characters")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	r.Author = strings.TrimSpace(r.Author)
	if r.Author == "" {
		return fmt.Errorf("author is required")
	}
	return nil
}

// UpdatePostRequest is the body of PUT /posts/{id}. Nil fields are left
// untouched; only supplied fields are written.
type UpdatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	ImageURL *string `json:"image_url"`
}

// Validate rejects supplied-but-empty required fields.
func (r *UpdatePostRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return fmt.Errorf("content must not be empty")
	}
	if r.Author != nil && strings.TrimSpace(*r.Author) == "" {
		return fmt.Errorf("author must not be empty")
	}
	return nil
}

// PostPage is the response of GET /posts/: one page plus the offsets a
// client needs to walk the listing. Next/previous are null when out of
// range.
type PostPage struct {
	TotalPosts     int64      `json:"total_posts"`
	Limit          int        `json:"limit"`
	Offset         int        `json:"offset"`
	NextOffset     *int       `json:"next_offset"`
	PreviousOffset *int       `json:"previous_offset"`
	Posts          []BlogPost `json:"posts"`
}

// SearchResult is the response of GET /search/.
type SearchResult struct {
	TotalCount int64      `json:"total_count"`
	Posts      []BlogPost `json:"posts"`
}
