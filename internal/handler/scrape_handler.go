package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/maps-scraper/internal/dto"
	"github.com/octobees/maps-scraper/internal/entity"
	"github.com/octobees/maps-scraper/internal/scraper"
)

// ListingScraper is the pipeline surface the HTTP layer depends on.
type ListingScraper interface {
	Scrape(ctx context.Context, query string, limit int, headless bool) ([]entity.Listing, error)
	OpenSessions() int
}

// ScrapeHandler serves the synchronous scraping endpoint.
type ScrapeHandler struct {
	scraper         ListingScraper
	defaultHeadless bool
	timeout         time.Duration
}

// NewScrapeHandler constructs a handler. timeout bounds one whole scrape;
// zero disables the bound.
func NewScrapeHandler(s ListingScraper, defaultHeadless bool, timeout time.Duration) *ScrapeHandler {
	return &ScrapeHandler{scraper: s, defaultHeadless: defaultHeadless, timeout: timeout}
}

// Scrape handles POST /api/scrape. Success is a plain JSON array of
// listings; failures map the pipeline's error kinds onto statuses.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	var req dto.ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	headless := h.defaultHeadless
	if req.Headless != nil {
		headless = *req.Headless
	}

	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	listings, err := h.scraper.Scrape(ctx, req.Query, req.NumListings, headless)
	if err != nil {
		switch {
		case errors.Is(err, scraper.ErrValidation):
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, scraper.ErrNavigation):
			return Error(c, http.StatusBadGateway, err.Error())
		case errors.Is(err, scraper.ErrSession):
			return Error(c, http.StatusServiceUnavailable, err.Error())
		default:
			return Error(c, http.StatusInternalServerError, err.Error())
		}
	}

	if listings == nil {
		listings = []entity.Listing{}
	}
	return c.JSON(http.StatusOK, listings)
}

// Health handles GET /healthz and reports the open session count, which is
// the resource the deployment actually has to watch.
func (h *ScrapeHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"open_sessions": h.scraper.OpenSessions(),
	})
}
