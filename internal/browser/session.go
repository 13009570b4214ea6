package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
)

// placeAnchorSel matches the result entries of the search feed. The href is
// the listing's identity across the whole pipeline.
const placeAnchorSel = `a[href^="https://www.google.com/maps/place"]`

// session wraps one chromedp tab. It implements scraper.Session; the
// pipeline never sees chromedp types.
type session struct {
	tab     context.Context
	cleanup func()
	once    sync.Once
}

// run executes actions on the tab while honoring the caller's cancellation
// and deadline. chromedp actions must run on the tab's own context chain,
// so the caller context is bridged in.
func (s *session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.tab)
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stop:
		}
	}()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (s *session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *session) WaitVisible(ctx context.Context, sel string) error {
	return s.run(ctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

func (s *session) ListingHandles(ctx context.Context) ([]string, error) {
	js := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(function(a) { return a.href; })`,
		placeAnchorSel,
	)
	var handles []string
	if err := s.run(ctx, chromedp.Evaluate(js, &handles)); err != nil {
		return nil, err
	}
	return handles, nil
}

func (s *session) ScrollResults(ctx context.Context) error {
	js := `(function() {
		var feed = document.querySelector('div[role="feed"]');
		if (feed) { feed.scrollBy(0, feed.clientHeight * 2); }
	})()`
	return s.run(ctx, chromedp.Evaluate(js, nil))
}

func (s *session) OpenListing(ctx context.Context, handle string) error {
	sel := fmt.Sprintf(`a[href=%q]`, handle)
	return s.run(ctx,
		chromedp.Click(sel, chromedp.ByQuery),
		chromedp.WaitVisible(`h1`, chromedp.ByQuery),
	)
}

func (s *session) Text(ctx context.Context, sel string) (string, error) {
	js := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		return el ? el.innerText : '';
	})()`, sel)
	var out string
	if err := s.run(ctx, chromedp.Evaluate(js, &out)); err != nil {
		return "", err
	}
	return out, nil
}

func (s *session) Attr(ctx context.Context, sel, name string) (string, error) {
	js := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		return el ? (el.getAttribute(%q) || '') : '';
	})()`, sel, name)
	var out string
	if err := s.run(ctx, chromedp.Evaluate(js, &out)); err != nil {
		return "", err
	}
	return out, nil
}

// Close tears down the tab, the browser process and the factory slot. Extra
// calls are no-ops.
func (s *session) Close() error {
	s.once.Do(s.cleanup)
	return nil
}
