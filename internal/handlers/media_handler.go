package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MediaHandler handles image and video uploads to the object-storage
// bucket, yielding a retrievable URL for use as a post's media reference
// or a profile avatar.
type MediaHandler struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(bucket *storage.BucketHandle, bucketName string) *MediaHandler {
	return &MediaHandler{
		bucket:     bucket,
		bucketName: bucketName,
	}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media/images", h.UploadImage)
	g.POST("/media/videos", h.UploadVideo)
}

// UploadImage uploads an image file and returns its URL
func (h *MediaHandler) UploadImage(c echo.Context) error {
	return h.upload(c, "images")
}

// UploadVideo uploads a video file and returns its URL
func (h *MediaHandler) UploadVideo(c echo.Context) error {
	return h.upload(c, "videos")
}

func (h *MediaHandler) upload(c echo.Context, prefix string) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file form field is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to read uploaded file")
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%s/%s%s", prefix, userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	object := h.bucket.Object(objectName)

	writer := object.NewWriter(c.Request().Context())
	writer.ContentType = fileHeader.Header.Get("Content-Type")
	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := writer.Close(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := object.ACL().Set(c.Request().Context(), storage.AllUsers, storage.RoleReader); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.bucketName, objectName)
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
