package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports service health and catalog shape.
type StatusResponse struct {
	Status            string `json:"status"`
	Occupations       int    `json:"occupations"`
	DefaultOccupation string `json:"defaultOccupation"`
}

// GetStatus reports service status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	cat, err := h.store.LoadCatalog()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Status: "degraded"})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{
		Status:            "ok",
		Occupations:       len(cat.Occupations),
		DefaultOccupation: cat.DefaultOccupation,
	})
}
