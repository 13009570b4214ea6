package dto

import "github.com/octobees/maps-scraper/internal/entity"

// ScrapeRequest is the payload accepted by the scraping endpoint.
// Headless is a pointer so an omitted field falls back to the server
// default instead of forcing a visible browser.
type ScrapeRequest struct {
	Query       string `json:"query"`
	NumListings int    `json:"num_listings"`
	Headless    *bool  `json:"headless,omitempty"`
}

// ExportRequest carries an already-scraped result sequence to re-encode as
// a downloadable document.
type ExportRequest struct {
	Format   string           `json:"format"`
	Listings []entity.Listing `json:"listings"`
}
