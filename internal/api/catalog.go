package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/catalog"
)

// GetCatalog returns the full occupation catalog.
// GET /api/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	cat, err := h.store.LoadCatalog()
	if err != nil {
		h.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, catalog.ToDoc(cat))
}

// UpdateCatalog replaces the occupation catalog.
// PUT /api/catalog
func (h *Handler) UpdateCatalog(c *gin.Context) {
	var doc catalog.CatalogDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog payload"})
		return
	}

	cat, err := catalog.FromDoc(doc)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SaveCatalog(cat); err != nil {
		h.log.Error("failed to save catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"occupations": len(cat.Occupations)})
}
