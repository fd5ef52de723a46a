package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/upload"
)

// DefaultMaxUploadBytes bounds a single image upload.
const DefaultMaxUploadBytes int64 = 10 << 20

type UploadHandler struct {
	log      *logger.Logger
	uploader upload.Uploader
	maxBytes int64
}

func NewUploadHandler(log *logger.Logger, uploader upload.Uploader, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadHandler{log: log.With("handler", "UploadHandler"), uploader: uploader, maxBytes: maxBytes}
}

// UploadImage takes the multipart field "file" and returns the hosted URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Errorf("file exceeds %d bytes", h.maxBytes))
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", errors.New("multipart field \"file\" is required"))
		return
	}
	if upload.ContentType(fh.Filename) == "" {
		respondErr(c, h.log, upload.ErrNotImage, nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_upload", err)
		return
	}
	defer f.Close()

	url, err := h.uploader.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	h.log.Info("image uploaded", "filename", fh.Filename, "size", fh.Size)
	response.RespondCreated(c, gin.H{"url": url})
}
