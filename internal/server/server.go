package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/api"
	"github.com/moalamir52/Operations-Portal/internal/config"
	"github.com/moalamir52/Operations-Portal/internal/service/refdata"
	"github.com/moalamir52/Operations-Portal/internal/store"
)

// Server is the portal HTTP server: the JSON API plus the SQLite store
// and reference-sheet cache behind it.
type Server struct {
	router *gin.Engine
	store  *store.Store
	ref    *refdata.Service
}

// NewServer wires the store, reference service and API handler.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(dataDir, "portal.db"))
	if err != nil {
		return nil, err
	}

	ref := refdata.New(cfg.Reference.SheetURL)
	handler := api.NewHandler(st, ref, cfg, filepath.Join(dataDir, "exports"))

	s := &Server{
		router: gin.Default(),
		store:  st,
		ref:    ref,
	}
	s.setupRoutes(handler, cfg.Server.DevMode)

	return s, nil
}

func (s *Server) setupRoutes(handler *api.Handler, devMode bool) {
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
		handler.RegisterRoutes(apiGroup)
	}

	if devMode {
		// Dev mode: the frontend dev server owns everything but /api.
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("portal listening")
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Ref exposes the reference service for startup warmup.
func (s *Server) Ref() *refdata.Service {
	return s.ref
}
