package scraper

import (
	"context"
	"errors"
	"testing"
)

func TestCollectorSatisfiedWithoutScrolling(t *testing.T) {
	sess := &fakeSession{reveals: [][]string{placeURLs(1, 5)}}

	handles, err := testCollector().Collect(context.Background(), sess, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("expected 3 handles, got %d", len(handles))
	}
	if sess.scrolls != 0 {
		t.Fatalf("expected no scrolls when first read satisfies, got %d", sess.scrolls)
	}
	for i, h := range handles {
		if h != placeURL(i+1) {
			t.Fatalf("expected reveal order preserved, got %v", handles)
		}
	}
}

func TestCollectorScrollsUntilSatisfied(t *testing.T) {
	sess := &fakeSession{reveals: [][]string{
		placeURLs(1, 2),
		placeURLs(1, 4),
		placeURLs(1, 6),
	}}

	handles, err := testCollector().Collect(context.Background(), sess, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handles) != 6 {
		t.Fatalf("expected 6 handles, got %d", len(handles))
	}
	for i, h := range handles {
		if h != placeURL(i+1) {
			t.Fatalf("expected reveal order preserved, got %v", handles)
		}
	}
}

func TestCollectorStallsOnShortResultSet(t *testing.T) {
	sess := &fakeSession{reveals: [][]string{placeURLs(1, 2)}}

	handles, err := testCollector().Collect(context.Background(), sess, 10)
	if err != nil {
		t.Fatalf("short result set must not be an error, got %v", err)
	}
	if len(handles) != 2 {
		t.Fatalf("expected the 2 available handles, got %d", len(handles))
	}
	// Two consecutive no-growth scrolls exhaust the feed, nothing more.
	if sess.scrolls != 2 {
		t.Fatalf("expected exactly 2 stall scrolls, got %d", sess.scrolls)
	}
}

func TestCollectorZeroResults(t *testing.T) {
	sess := &fakeSession{}

	handles, err := testCollector().Collect(context.Background(), sess, 5)
	if err != nil {
		t.Fatalf("zero results must terminate cleanly, got %v", err)
	}
	if len(handles) != 0 {
		t.Fatalf("expected no handles, got %d", len(handles))
	}
}

func TestCollectorFeedNeverRenders(t *testing.T) {
	sess := &fakeSession{noPanel: true}

	_, err := testCollector().Collect(context.Background(), sess, 5)
	if !errors.Is(err, ErrNavigation) {
		t.Fatalf("expected ErrNavigation, got %v", err)
	}
}

func TestCollectorDeduplicatesHandles(t *testing.T) {
	sess := &fakeSession{reveals: [][]string{
		{placeURL(1), placeURL(2)},
		{placeURL(2), placeURL(1), placeURL(3)},
	}}

	handles, err := testCollector().Collect(context.Background(), sess, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{placeURL(1), placeURL(2), placeURL(3)}
	if len(handles) != len(want) {
		t.Fatalf("expected %d handles, got %v", len(want), handles)
	}
	for i := range want {
		if handles[i] != want[i] {
			t.Fatalf("expected first-reveal order %v, got %v", want, handles)
		}
	}
}

func TestCollectorRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := &fakeSession{reveals: [][]string{placeURLs(1, 2)}}

	_, err := testCollector().Collect(ctx, sess, 10)
	if !errors.Is(err, ErrNavigation) {
		t.Fatalf("expected navigation error on canceled context, got %v", err)
	}
}
