package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/model"
)

// GenerateRequest selects a parsed workbook and the generation options.
type GenerateRequest struct {
	FileID             string   `json:"fileId" binding:"required"`
	SelectedLocations  []string `json:"selectedLocations"`
	Kinds              []string `json:"kinds"`
	CombinePerLocation bool     `json:"combinePerLocation"`
	DestinationRoot    string   `json:"destinationRoot"`
}

// Generate runs document generation for a previously parsed workbook.
// POST /api/generate
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generate payload"})
		return
	}

	wb, ok := h.workbooks.get(req.FileID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "workbook not found or expired"})
		return
	}

	kinds, err := parseKinds(req.Kinds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := h.store.LoadCatalog()
	if err != nil {
		h.log.Error("failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}

	dest := strings.TrimSpace(req.DestinationRoot)
	if dest == "" {
		dest = h.cfg.Generation.OutputDir
	}

	opts := model.GenerationOptions{
		SelectedLocations:  req.SelectedLocations,
		CombinePerLocation: req.CombinePerLocation,
		Kinds:              kinds,
		DestinationRoot:    dest,
	}

	result := h.generator.Generate(c.Request.Context(), wb, cat, opts)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

// parseKinds maps kind names to document kinds. An empty list enables
// every kind; unknown names are rejected rather than silently dropped.
func parseKinds(names []string) ([]model.DocumentKind, error) {
	if len(names) == 0 {
		return model.AllKinds(), nil
	}
	kinds := make([]model.DocumentKind, 0, len(names))
	for _, name := range names {
		kind, err := model.ParseDocumentKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
