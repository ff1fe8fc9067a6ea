package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/api"
	"github.com/leonardocandio/cargos/internal/config"
	"github.com/leonardocandio/cargos/internal/service/docgen"
	"github.com/leonardocandio/cargos/internal/store"
)

// Server is the HTTP server wrapping the API handler.
type Server struct {
	router *gin.Engine
	cfg    *config.AppConfig
	api    *api.Handler
}

// New creates the server with all routes registered.
func New(cfg *config.AppConfig, st *store.Store, generator *docgen.Generator, log *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		cfg:    cfg,
		api:    api.NewHandler(st, cfg, generator, log),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%d", s.cfg.Server.Port))
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
