package scraper

import "context"

// Session is the browser capability the pipeline drives. An implementation
// wraps one live page positioned by Navigate; all other methods operate on
// that page. Sessions are owned by a single scrape and are not safe for
// concurrent use.
type Session interface {
	// Navigate loads url in the session's page.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching sel is rendered or ctx
	// expires.
	WaitVisible(ctx context.Context, sel string) error

	// ListingHandles returns the handles (place URLs) of every result entry
	// currently revealed in the results feed, in reveal order. Entries that
	// have not lazy-loaded yet are not included.
	ListingHandles(ctx context.Context) ([]string, error)

	// ScrollResults scrolls the results feed to trigger lazy loading of
	// further entries. It does not navigate away from the results view.
	ScrollResults(ctx context.Context) error

	// OpenListing focuses the detail view for handle and waits for its
	// heading to render, bounded by ctx.
	OpenListing(ctx context.Context, handle string) error

	// Text returns the inner text of the first element matching sel, or an
	// empty string when nothing matches.
	Text(ctx context.Context, sel string) (string, error)

	// Attr returns the named attribute of the first element matching sel,
	// or an empty string when nothing matches.
	Attr(ctx context.Context, sel, name string) (string, error)

	// Close releases the session and every resource it spawned. It must be
	// called exactly once per session and is safe on every exit path.
	Close() error
}

// SessionFactory creates scrape-scoped browser sessions and reports how
// many it currently holds open. Implementations enforce the deployment's
// session ceiling and fail acquisition instead of degrading running
// sessions.
type SessionFactory interface {
	NewSession(ctx context.Context, headless bool) (Session, error)
	InUse() int
}
