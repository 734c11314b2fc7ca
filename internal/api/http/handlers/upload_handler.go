package handlers

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsure/admin-api/internal/storage"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// maxImageSize bounds uploaded car images at 5 MiB.
const maxImageSize = 5 * 1024 * 1024

// UploadHandler accepts car image uploads and stores them in the object
// store.
type UploadHandler struct {
	store storage.ObjectStore
}

// NewUploadHandler constructs handler.
func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadImage handles POST /upload/images. Expects a multipart form with a
// single "file" part.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewBadRequest("file is required")
	}
	if fileHeader.Size > maxImageSize {
		return apperrors.NewBadRequest("file exceeds the 5MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewBadRequest("only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if len(raw) > maxImageSize {
		return apperrors.NewBadRequest("file exceeds the 5MB limit")
	}

	key := "cars/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	url, err := h.store.Upload(c.UserContext(), key, contentType, bytes.NewReader(raw))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"url": url,
			"key": key,
		},
	})
}
