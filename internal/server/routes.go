package server

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"

	"newsverify/internal/handlers"
	"newsverify/internal/handlers/api"
	"newsverify/internal/metrics"
	"newsverify/internal/prediction"
)

// Deps are the constructed services the routes delegate to.
type Deps struct {
	Predictions    *prediction.Service
	Metrics        *metrics.Metrics
	Store          api.Pinger // nil when outcome persistence is disabled
	FallbackReason error
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	predictHandler := api.NewPredictHandler(deps.Predictions, s.Cfg.MaxTextLength, s.Log)
	healthHandler := api.NewHealthHandler(deps.Predictions, deps.Store, deps.FallbackReason)
	classicHandler := handlers.NewClassicHandler(deps.Predictions, s.Cfg)

	limit := s.predictLimiter()

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/predict", limit, predictHandler.Predict)
	apiGroup.Get("/health", healthHandler.Health)
	apiGroup.Get("/categories", api.Categories)
	apiGroup.Use(api.NotFound)

	// Metrics
	if deps.Metrics != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Classic form
	s.App.Get("/old", classicHandler.Index)
	s.App.Get("/predict", classicHandler.PredictPage)
	s.App.Post("/predict", limit, classicHandler.PredictForm)

	// Client UI: real files first, then index.html for client-side routes
	s.App.Use(static.New(s.Cfg.StaticDir))
	s.App.Get("/*", s.spaIndex)
}

func (s *Server) spaIndex(c fiber.Ctx) error {
	index := filepath.Join(s.Cfg.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return fiber.ErrNotFound
	}
	return c.SendFile(index)
}
