package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/blogapi/models"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/services"
)

// PostHandler serves the post CRUD and reaction endpoints.
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler is the constructor.
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create godoc
// POST /posts/
// Body: { "title": "...", "content": "...", "author": "...", "image_url": optional }
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// List godoc
// GET /posts/?limit=10&offset=0&order=desc
//
// limit must be in [1,100], offset ≥ 0, order one of asc|desc. Anything
// outside those bounds is a 400, not silently clamped.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paginationParams(w, r)
	if !ok {
		return
	}

	order := r.URL.Query().Get("order")
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "order must be 'asc' or 'desc'")
		return
	}

	page, err := h.postService.List(r.Context(), limit, offset, order)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// Get godoc
// GET /posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Update godoc
// PUT /posts/{id}
// Partial update: only the fields present in the body change.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Delete godoc
// DELETE /posts/{id}
// Success is 204 with an empty body.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// React godoc
// POST /posts/{id}/react?reaction_type=👍
//
// The reaction label travels as a query parameter so the add and remove
// endpoints share one shape (DELETE bodies are unreliable).
func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	count, err := h.postService.React(r.Context(), id, r.URL.Query().Get("reaction_type"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":  "Reaction added",
		"reaction": r.URL.Query().Get("reaction_type"),
		"count":    count,
	})
}

// Unreact godoc
// DELETE /posts/{id}/react?reaction_type=👍
func (h *PostHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(w, r)
	if !ok {
		return
	}

	remaining, err := h.postService.Unreact(r.Context(), id, r.URL.Query().Get("reaction_type"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":         "Reaction removed",
		"reaction":        r.URL.Query().Get("reaction_type"),
		"remaining_count": remaining,
	})
}

// postIDParam parses the {id} path segment, writing a 400 on garbage.
func postIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

// paginationParams parses limit/offset with the shared bounds used by
// listing and search.
func paginationParams(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = 10
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 100 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return 0, 0, false
		}
		limit = parsed
	}

	offset = 0
	if o := r.URL.Query().Get("offset"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil || parsed < 0 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "offset must be 0 or greater")
			return 0, 0, false
		}
		offset = parsed
	}

	return limit, offset, true
}
