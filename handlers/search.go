package handlers

import (
	"net/http"

	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/services"
)

// SearchHandler serves the substring search endpoint.
type SearchHandler struct {
	postService services.PostService
}

// NewSearchHandler is the constructor.
func NewSearchHandler(postService services.PostService) *SearchHandler {
	return &SearchHandler{postService: postService}
}

// Search godoc
// GET /search/?query=...&limit=10&offset=0
// Case-insensitive substring match against title, content, or author.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "query parameter 'query' is required")
		return
	}

	limit, offset, ok := paginationParams(w, r)
	if !ok {
		return
	}

	result, err := h.postService.Search(r.Context(), query, limit, offset)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
