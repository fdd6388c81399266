package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/pkg"
	"github.com/akinalp/blogapi/repository"
	"github.com/google/uuid"
)

// PublicUploadPrefix is the URL prefix under which saved images are
// served. It is stored on posts as part of image_url, so changing it
// invalidates previously uploaded links.
const PublicUploadPrefix = "/uploads/"

// allowedImageExts restricts uploads to image files.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadService attaches uploaded images to posts.
type UploadService interface {
	// SaveImage validates the file, writes it under a fresh
	// collision-resistant name, persists the served URL on the post, and
	// returns that URL. pkg.ErrNotFound when the post does not exist.
	SaveImage(ctx context.Context, postID int64, file multipart.File, header *multipart.FileHeader) (string, error)
}

type uploadService struct {
	db        *database.DB
	uploadDir string
	maxSize   int64
}

// NewUploadService wires an UploadService writing into uploadDir.
func NewUploadService(db *database.DB, uploadDir string, maxSize int64) UploadService {
	return &uploadService{db: db, uploadDir: uploadDir, maxSize: maxSize}
}

func (s *uploadService) SaveImage(ctx context.Context, postID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: unsupported image type %q", pkg.ErrBadRequest, ext)
	}

	// The original extension is preserved; the rest of the name is a
	// fresh UUID, so concurrent uploads cannot collide.
	filename := "image_" + strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	diskPath := filepath.Join(s.uploadDir, filename)
	publicURL := PublicUploadPrefix + filename

	if err := writeFile(diskPath, file); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		return postNotFound(repository.NewSQLPostRepo(tx).SetImageURL(ctx, postID, publicURL))
	})
	if err != nil {
		// The post row was not updated, so the file on disk is an
		// orphan; best effort removal.
		if rmErr := os.Remove(diskPath); rmErr != nil {
			log.Printf("[upload] failed to remove orphaned file %s: %v", diskPath, rmErr)
		}
		return "", err
	}

	return publicURL, nil
}

func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
