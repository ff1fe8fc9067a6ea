package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/config"
	"github.com/leonardocandio/cargos/internal/service/docgen"
	"github.com/leonardocandio/cargos/internal/service/workbook"
	"github.com/leonardocandio/cargos/internal/store"
)

// Handler serves the HTTP API.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	parser    *workbook.Parser
	generator *docgen.Generator
	workbooks *workbookStore
	log       *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, cfg *config.AppConfig, generator *docgen.Generator, log *zap.Logger) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		parser:    workbook.NewParser(log),
		generator: generator,
		workbooks: newWorkbookStore(),
		log:       log,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)

	// Workbook upload and inspection
	router.POST("/workbook/parse", h.ParseWorkbook)
	router.GET("/workbook/:id", h.GetWorkbook)

	// Catalog management
	router.GET("/catalog", h.GetCatalog)
	router.PUT("/catalog", h.UpdateCatalog)

	// Document generation
	router.POST("/generate", h.Generate)
}
