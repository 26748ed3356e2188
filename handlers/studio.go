package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiobook/database/repository"
)

// StudioHandler exposes the read-only studio catalog.
type StudioHandler struct {
	Studios repository.StudioRepository
}

func NewStudioHandler(studios repository.StudioRepository) *StudioHandler {
	return &StudioHandler{Studios: studios}
}

// ListStudios handles GET /api/studios.
func (h *StudioHandler) ListStudios(c *gin.Context) {
	studios, err := h.Studios.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"studios": studios})
}
