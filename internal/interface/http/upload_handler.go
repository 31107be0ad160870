package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/helpers"
	"github.com/eventapp/server/pkg/response"
)

type UploadHandler struct {
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploadHandler(gcs *storage.Client, bucket string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{GCS: gcs, Bucket: bucket, Logger: logger}
}

// Upload POST /api/upload stores a multipart file in the configured bucket
// under uploads/<user>/<random><ext>.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	defer func() { _ = file.Close() }()

	if h.GCS == nil || h.Bucket == "" {
		response.Fail(c, http.StatusInternalServerError, "upload storage not configured", nil)
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	ext := strings.ToLower(filepath.Ext(header.Filename))
	objectPath := filepath.ToSlash(filepath.Join("uploads", uid, uuid.NewString()+ext))

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, objectPath, contentType, file)
	if err != nil {
		h.Logger.WithError(err).Error("upload to gcs failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"filename":     header.Filename,
		"size":         header.Size,
		"content_type": contentType,
		"url":          url,
	}, "File uploaded successfully")
}
