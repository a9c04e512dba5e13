package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/services"
)

type UploadHandler struct {
	imageService *services.ImageService
}

func NewUploadHandler(imageService *services.ImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService}
}

// @Summary Upload Image
// @Description Upload an image and get back its URL and thumbnail URL
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (jpg, jpeg or png)"
// @Success 201 {object} services.UploadResult
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /upload [post]
func (h *UploadHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	result, err := h.imageService.ProcessAndSave(file, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       result.URL,
		"thumb_url": result.ThumbURL,
		"filename":  result.Filename,
	})
}
