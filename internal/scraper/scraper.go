package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/octobees/maps-scraper/internal/entity"
	"github.com/octobees/maps-scraper/internal/logging"
)

const searchURLBase = "https://www.google.com/maps/search/"

// Limit bounds accepted by Scrape.
const (
	MinLimit = 1
	MaxLimit = 100
)

// Scraper runs the full pipeline for one request: session acquisition,
// search navigation, handle collection and per-listing extraction.
type Scraper struct {
	sessions  SessionFactory
	collector *Collector
	extractor *Extractor
	log       *logging.Logger
}

// New builds a Scraper. Nil collector, extractor or logger fall back to
// production defaults.
func New(sessions SessionFactory, collector *Collector, extractor *Extractor, log *logging.Logger) *Scraper {
	if collector == nil {
		collector = NewCollector()
	}
	if extractor == nil {
		extractor = NewExtractor()
	}
	if log == nil {
		log = logging.New()
	}
	return &Scraper{
		sessions:  sessions,
		collector: collector,
		extractor: extractor,
		log:       log,
	}
}

// OpenSessions reports how many browser sessions are currently held.
func (s *Scraper) OpenSessions() int {
	return s.sessions.InUse()
}

// Scrape drives one search end to end and returns at most limit listings in
// reveal order. Zero results for a valid query is a success. The session is
// released on every exit path, including cancellation mid-extraction.
func (s *Scraper) Scrape(ctx context.Context, query string, limit int, headless bool) ([]entity.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrValidation)
	}
	if limit < MinLimit || limit > MaxLimit {
		return nil, fmt.Errorf("%w: num_listings must be between %d and %d", ErrValidation, MinLimit, MaxLimit)
	}

	sess, err := s.sessions.NewSession(ctx, headless)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSession, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			s.log.Warn("session close: %v", cerr)
		}
	}()

	if err := sess.Navigate(ctx, searchURL(query)); err != nil {
		return nil, fmt.Errorf("%w: navigating to search view: %v", ErrNavigation, err)
	}

	handles, err := s.collector.Collect(ctx, sess, limit)
	if err != nil {
		return nil, err
	}
	s.log.Info("query %q revealed %d handles", query, len(handles))

	seen := make(map[string]struct{}, len(handles))
	listings := make([]entity.Listing, 0, len(handles))
	for _, handle := range handles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scrape canceled: %w", err)
		}
		if len(listings) >= limit {
			break
		}

		listing, err := s.extractor.Extract(ctx, sess, handle)
		if err != nil {
			if errors.Is(err, ErrExtraction) {
				s.log.Warn("skipping listing: %v", err)
				continue
			}
			return nil, err
		}
		if _, dup := seen[listing.Key()]; dup {
			continue
		}
		seen[listing.Key()] = struct{}{}
		listings = append(listings, listing)
	}

	s.log.Info("query %q produced %d listings", query, len(listings))
	return listings, nil
}

func searchURL(query string) string {
	return searchURLBase + url.PathEscape(query)
}
