package scraper

import "errors"

// Error kinds surfaced by the pipeline. Handlers classify wrapped errors
// with errors.Is to pick a response status.
var (
	// ErrValidation marks bad input; no browser session has been opened.
	ErrValidation = errors.New("invalid scrape input")
	// ErrNavigation marks a search results view that never became usable.
	// The whole request fails, there is no partial result to return.
	ErrNavigation = errors.New("results view unreachable")
	// ErrExtraction marks a single listing whose detail view never
	// rendered. It is recovered inside the pipeline and never reaches the
	// HTTP boundary.
	ErrExtraction = errors.New("listing detail unreachable")
	// ErrSession marks a browser session that could not be created.
	ErrSession = errors.New("browser session failure")
)
