package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// fakeDetail holds the raw strings one listing's detail view exposes.
type fakeDetail struct {
	heading     string
	anchorLabel string
	address     string
	phone       string
	website     string
	ratingLabel string
	reviews     string
}

// fakeSession simulates a results feed that reveals reveals[i] after i
// scrolls. Reads past the last snapshot keep returning it, which is how a
// real exhausted feed behaves.
type fakeSession struct {
	mu      sync.Mutex
	reveals [][]string
	scrolls int

	noPanel bool
	navErr  error

	details map[string]fakeDetail
	openErr map[string]bool
	current string

	navigated []string
	closed    int
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return f.navErr
}

func (f *fakeSession) WaitVisible(ctx context.Context, sel string) error {
	if f.noPanel {
		return errors.New("timeout waiting for " + sel)
	}
	return nil
}

func (f *fakeSession) ListingHandles(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reveals) == 0 {
		return nil, nil
	}
	idx := f.scrolls
	if idx >= len(f.reveals) {
		idx = len(f.reveals) - 1
	}
	return append([]string(nil), f.reveals[idx]...), nil
}

func (f *fakeSession) ScrollResults(ctx context.Context) error {
	f.mu.Lock()
	f.scrolls++
	f.mu.Unlock()
	return nil
}

func (f *fakeSession) OpenListing(ctx context.Context, handle string) error {
	if f.openErr[handle] {
		return errors.New("detail view never rendered")
	}
	f.current = handle
	return nil
}

func (f *fakeSession) Text(ctx context.Context, sel string) (string, error) {
	d := f.details[f.current]
	switch sel {
	case headingSel:
		return d.heading, nil
	case addressSel:
		return d.address, nil
	case phoneSel:
		return d.phone, nil
	case websiteSel:
		return d.website, nil
	case reviewsCountSel:
		return d.reviews, nil
	}
	return "", nil
}

func (f *fakeSession) Attr(ctx context.Context, sel, name string) (string, error) {
	d := f.details[f.current]
	if sel == ratingSel && name == "aria-label" {
		return d.ratingLabel, nil
	}
	if sel == anchorSelector(f.current) && name == "aria-label" {
		return d.anchorLabel, nil
	}
	return "", nil
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

type fakeFactory struct {
	sess    *fakeSession
	created int
	newErr  error
}

func (f *fakeFactory) NewSession(ctx context.Context, headless bool) (Session, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.created++
	return f.sess, nil
}

func (f *fakeFactory) InUse() int {
	if f.sess == nil {
		return 0
	}
	open := f.created - f.sess.closed
	if open < 0 {
		return 0
	}
	return open
}

// testCollector shrinks the production timings so stall paths finish in
// milliseconds.
func testCollector() *Collector {
	return &Collector{
		PanelTimeout: 100 * time.Millisecond,
		GrowthWindow: 5 * time.Millisecond,
		PollInterval: time.Millisecond,
		StallLimit:   2,
	}
}

func placeURL(n int) string {
	return fmt.Sprintf("https://www.google.com/maps/place/biz-%d", n)
}

func placeURLs(from, to int) []string {
	urls := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		urls = append(urls, placeURL(n))
	}
	return urls
}
