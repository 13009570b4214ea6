package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/maps-scraper/internal/auth"
	"github.com/octobees/maps-scraper/internal/browser"
	"github.com/octobees/maps-scraper/internal/config"
	"github.com/octobees/maps-scraper/internal/handler"
	"github.com/octobees/maps-scraper/internal/logging"
	middlewarepkg "github.com/octobees/maps-scraper/internal/middleware"
	"github.com/octobees/maps-scraper/internal/router"
	"github.com/octobees/maps-scraper/internal/scraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sessions := browser.NewFactory(cfg.MaxSessions, cfg.ChromeBin)
	pipeline := scraper.New(sessions, scraper.NewCollector(), scraper.NewExtractor(), logging.New())

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	}

	scrapeHandler := handler.NewScrapeHandler(pipeline, cfg.Headless, cfg.ScrapeTimeout)
	exportHandler := handler.NewExportHandler()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Scrape: scrapeHandler,
		Export: exportHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
