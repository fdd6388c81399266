package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/services"
)

// UploadHandler serves the image upload endpoint.
type UploadHandler struct {
	uploadService services.UploadService
	maxSize       int64
}

// NewUploadHandler is the constructor. maxSize caps the whole multipart
// body before the service sees it.
func NewUploadHandler(uploadService services.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxSize: maxSize}
}

// Upload godoc
// POST /upload/?post_id=1
// Multipart form with an "image" file field. Saves the file, points the
// post's image_url at it, and returns the served URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.URL.Query().Get("post_id"), 10, 64)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "post_id query parameter is required")
		return
	}

	// Slack for the multipart framing on top of the file cap.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "file too large")
			return
		}
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "image file field is required")
		return
	}
	defer file.Close()

	url, err := h.uploadService.SaveImage(r.Context(), postID, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message": "File(s) uploaded successfully",
		"urls":    map[string]string{"image_url": url},
	})
}
