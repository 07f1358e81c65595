// Package api provides the HTTP API server and handlers for the Gamedex server.
package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/images"
	"github.com/gamedex/gamedex-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services      *Services
	covers        *images.Storage
	router        *chi.Mux
	api           huma.API
	logger        *logger.Logger
	reportLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, coverStorage *images.Storage, log *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("Gamedex API", service.Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services:      services,
		covers:        coverStorage,
		router:        router,
		api:           api,
		logger:        log,
		reportLimiter: NewRateLimiter(10, time.Minute, 5),
	}

	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerGameRoutes()
	s.registerMetadataRoutes()
	s.registerCoverRoutes()
	s.registerReportRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
