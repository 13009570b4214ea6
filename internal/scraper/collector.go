package scraper

import (
	"context"
	"fmt"
	"time"
)

// resultsFeedSel matches the scrollable results panel of the search view.
const resultsFeedSel = `div[role="feed"]`

// collectState drives the reveal loop. The loop leaves stateLoading only
// when enough handles are revealed (satisfied) or the feed stopped growing
// (stalled) — an unconditional wait would hang on short result sets.
type collectState int

const (
	stateLoading collectState = iota
	stateStalled
	stateSatisfied
)

// Collector reveals result entries by scrolling the results feed until the
// requested number of distinct handles is available or the feed is
// exhausted.
type Collector struct {
	// PanelTimeout bounds the initial wait for the results feed to render.
	PanelTimeout time.Duration
	// GrowthWindow bounds how long a scroll may take to surface new entries.
	GrowthWindow time.Duration
	// PollInterval is the re-check cadence inside a growth window.
	PollInterval time.Duration
	// StallLimit is the number of consecutive no-growth scrolls after which
	// the feed is treated as exhausted.
	StallLimit int
}

// NewCollector returns a collector with production timings.
func NewCollector() *Collector {
	return &Collector{
		PanelTimeout: 20 * time.Second,
		GrowthWindow: 5 * time.Second,
		PollInterval: 250 * time.Millisecond,
		StallLimit:   2,
	}
}

// Collect returns up to limit distinct listing handles in reveal order. A
// feed that renders but holds fewer entries than limit is a valid short
// result; a feed that never renders at all is ErrNavigation.
func (c *Collector) Collect(ctx context.Context, s Session, limit int) ([]string, error) {
	panelCtx, cancel := context.WithTimeout(ctx, c.PanelTimeout)
	err := s.WaitVisible(panelCtx, resultsFeedSel)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: results feed did not render: %v", ErrNavigation, err)
	}

	seen := make(map[string]struct{})
	handles := []string{}
	stalls := 0
	state := stateLoading

	for state == stateLoading {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
		}

		urls, err := s.ListingHandles(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: reading results feed: %v", ErrNavigation, err)
		}
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			handles = append(handles, u)
		}

		if len(handles) >= limit {
			state = stateSatisfied
			continue
		}

		if err := s.ScrollResults(ctx); err != nil {
			return nil, fmt.Errorf("%w: scrolling results feed: %v", ErrNavigation, err)
		}
		grew, err := c.waitForGrowth(ctx, s, seen)
		if err != nil {
			return nil, err
		}
		if grew {
			stalls = 0
		} else {
			stalls++
			if stalls >= c.StallLimit {
				state = stateStalled
			}
		}
	}

	if state == stateSatisfied {
		return handles[:limit], nil
	}
	return handles, nil
}

// waitForGrowth polls the feed until an entry outside seen appears or the
// growth window elapses.
func (c *Collector) waitForGrowth(ctx context.Context, s Session, seen map[string]struct{}) (bool, error) {
	deadline := time.Now().Add(c.GrowthWindow)
	for {
		urls, err := s.ListingHandles(ctx)
		if err != nil {
			return false, fmt.Errorf("%w: reading results feed: %v", ErrNavigation, err)
		}
		for _, u := range urls {
			if _, dup := seen[u]; !dup {
				return true, nil
			}
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, fmt.Errorf("%w: %v", ErrNavigation, ctx.Err())
		case <-time.After(c.PollInterval):
		}
	}
}
