package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/service"
)

// ImageHandler serves stored image payloads back to clients. Uploads are
// registered under the recipe routes; these endpoints only read.
type ImageHandler struct {
	images *service.ImageService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// RegisterRoutes registers the image retrieval routes.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	{
		images.GET("/:id/raw", h.Raw)
		images.GET("/:id/thumb", h.Thumbnail)
	}
}

// Raw streams the stored raw payload with its stored content type. Missing
// image or missing payload both answer 404.
func (h *ImageHandler) Raw(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data, contentType, err := h.images.RawPayload(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// Thumbnail streams the stored thumbnail payload.
func (h *ImageHandler) Thumbnail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data, contentType, err := h.images.ThumbnailPayload(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
