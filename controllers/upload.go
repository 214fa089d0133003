package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadImage stores a multipart image in the bucket and returns its public
// URL, for user photos and scholarship banners. Admin only.
func (h *Handler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	folder := c.PostForm("folder")
	if folder == "" {
		folder = "images"
	}

	url, err := h.uploader.Upload(c.Request.Context(), file, contentType, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to upload image: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
