package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/maps-scraper/internal/auth"
	"github.com/octobees/maps-scraper/internal/config"
	"github.com/octobees/maps-scraper/internal/handler"
	middlewarepkg "github.com/octobees/maps-scraper/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Scrape *handler.ScrapeHandler
	Export *handler.ExportHandler
}

// Register wires all HTTP routes for the API. A nil jwtManager leaves the
// API open, matching the original deployment; with one configured, every
// /api route requires a bearer token.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", handlers.Scrape.Health)

	api := e.Group("/api")
	if jwtManager != nil {
		api.Use(middlewarepkg.JWT(jwtManager))
	}

	api.POST("/scrape", handlers.Scrape.Scrape, middlewarepkg.ScrapeRateLimiter(cfg.RateLimitScrape))
	api.POST("/export", handlers.Export.Export)
}
