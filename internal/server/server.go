package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SbEnChOi/world-energy-ubiquity/internal/config"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/validation"
)

// Server is the local JSON API over the projection engine.
type Server struct {
	cfg      *config.AppConfig
	table    seed.Table
	router   *gin.Engine
	registry *Registry
}

// New creates a server that projects from table. A table with schema errors
// is rejected, since every snapshot generated from it would be unusable.
func New(cfg *config.AppConfig, table seed.Table) (*Server, error) {
	if err := validation.ValidateTable(table).Err(); err != nil {
		return nil, fmt.Errorf("seed table: %w", err)
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		table:    table,
		router:   gin.New(),
		registry: NewRegistry(cfg.Server.MaxSnapshots),
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/resources", s.handleResources)
		api.GET("/validation", s.handleValidation)

		api.GET("/snapshots", s.handleListSnapshots)
		api.POST("/snapshots", s.handleCreateSnapshot)
		api.GET("/snapshots/:id", s.handleSnapshot)
		api.GET("/snapshots/:id/stats", s.handleStats)
		api.GET("/snapshots/:id/series", s.handleSeries)
		api.GET("/snapshots/:id/map", s.handleMap)
		api.GET("/snapshots/:id/entities/:entity", s.handleEntity)
		api.GET("/snapshots/:id/export", s.handleExport)
	}

	s.router.GET("/", s.handleIndex)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Registry exposes the snapshot registry.
func (s *Server) Registry() *Registry { return s.registry }

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	log.Printf("ecotimeline server starting on http://localhost%s", addr)
	log.Printf("seed table: %d entities", s.table.Len())
	return s.router.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html><head><title>EcoTimeline</title></head>
<body style="margin:0;background:#0f172a;color:#f1f5f9;font-family:monospace;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>EcoTimeline</h1>
<p>Global resource monitor API. POST /api/snapshots to generate a projection.</p>
</div>
</body></html>`))
}
