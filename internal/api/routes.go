package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/config"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/insights"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/storage/sqlite"
	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(generator *market.Generator, composer *insights.Composer, searches *sqlite.SearchStorage, cfg *config.Config, log *logger.Logger) (*Router, error) {
	handler, err := NewHandler(generator, composer, searches, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Router{
		handler:    handler,
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}, nil
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// HTML pages
	router.Get("/", r.handler.Index)
	router.Post("/dashboard", r.handler.Dashboard)

	// JSON API
	router.Route("/api/v1", func(router chi.Router) {
		router.Post("/flights", r.handler.GenerateFlights)
		router.Post("/refresh-insights", r.handler.RefreshInsights)
		router.Get("/searches/recent", r.handler.RecentSearches)
		router.Get("/health", r.handler.Health)
	})

	// Static assets
	if r.config.Server.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(r.config.Server.StaticDir))
		router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	return router
}
