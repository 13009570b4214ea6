package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/maps-scraper/internal/entity"
)

// Detail-view selectors. These mirror the markup of the place panel; the
// data-item-id attributes have been stable across layout refreshes while
// class names have not.
const (
	headingSel      = `h1`
	addressSel      = `button[data-item-id="address"] div[class*="fontBodyMedium"]`
	websiteSel      = `a[data-item-id="authority"] div[class*="fontBodyMedium"]`
	phoneSel        = `button[data-item-id^="phone:tel:"] div[class*="fontBodyMedium"]`
	ratingSel       = `span[role="img"][aria-label*="stars"]`
	reviewsCountSel = `span[aria-label$="reviews"]`
)

var (
	decimalPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	digitsPattern  = regexp.MustCompile(`\d+`)
)

// Extractor reads the six listing fields from an opened detail view. Every
// field read is independent: a missing or relocated element degrades to the
// field's default instead of failing the record, so a Listing is always
// fully populated.
type Extractor struct {
	// HeadingTimeout bounds the wait for the detail view to render.
	HeadingTimeout time.Duration
	// PhoneRegion is the fallback region for phone normalization.
	PhoneRegion string
}

// NewExtractor returns an extractor with production defaults.
func NewExtractor() *Extractor {
	return &Extractor{
		HeadingTimeout: 10 * time.Second,
		PhoneRegion:    "US",
	}
}

// Extract opens the detail view behind handle and returns a fully populated
// Listing. ErrExtraction is returned only when the view itself never
// renders; individual missing fields are not errors.
func (e *Extractor) Extract(ctx context.Context, s Session, handle string) (entity.Listing, error) {
	openCtx, cancel := context.WithTimeout(ctx, e.HeadingTimeout)
	err := s.OpenListing(openCtx, handle)
	cancel()
	if err != nil {
		return entity.Listing{}, fmt.Errorf("%w: %s: %v", ErrExtraction, handle, err)
	}

	return entity.Listing{
		Name:           e.readName(ctx, s, handle),
		Address:        e.readText(ctx, s, addressSel),
		ReviewsAverage: e.readRating(ctx, s),
		ReviewsCount:   e.readReviewsCount(ctx, s),
		PhoneNumber:    e.readPhone(ctx, s),
		Website:        e.readWebsite(ctx, s),
	}, nil
}

func (e *Extractor) readText(ctx context.Context, s Session, sel string) string {
	v, err := s.Text(ctx, sel)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// readName prefers the detail heading and falls back to the result anchor's
// aria-label, which carries the name plus a " · Visited link" suffix on
// previously opened entries.
func (e *Extractor) readName(ctx context.Context, s Session, handle string) string {
	if v := e.readText(ctx, s, headingSel); v != "" {
		return cleanName(v)
	}
	if v, err := s.Attr(ctx, anchorSelector(handle), "aria-label"); err == nil {
		return cleanName(v)
	}
	return ""
}

func (e *Extractor) readPhone(ctx context.Context, s Session) string {
	raw := e.readText(ctx, s, phoneSel)
	if raw == "" {
		return entity.NoPhone
	}
	num, err := phonenumbers.Parse(raw, e.PhoneRegion)
	if err == nil && phonenumbers.IsValidNumber(num) {
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}
	return raw
}

func (e *Extractor) readWebsite(ctx context.Context, s Session) string {
	raw := e.readText(ctx, s, websiteSel)
	if raw == "" {
		return entity.NoWebsite
	}
	return normalizeHost(raw)
}

func (e *Extractor) readRating(ctx context.Context, s Session) float64 {
	raw, err := s.Attr(ctx, ratingSel, "aria-label")
	if err != nil || raw == "" {
		return 0
	}
	// Decimal comma locales render "4,5 stars".
	m := decimalPattern.FindString(strings.ReplaceAll(raw, ",", "."))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

func (e *Extractor) readReviewsCount(ctx context.Context, s Session) int {
	raw := e.readText(ctx, s, reviewsCountSel)
	if raw == "" {
		// Some locales keep the count in the span's aria-label only.
		if v, err := s.Attr(ctx, reviewsCountSel, "aria-label"); err == nil {
			raw = v
		}
	}
	m := digitsPattern.FindString(strings.ReplaceAll(raw, ",", ""))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func anchorSelector(handle string) string {
	return fmt.Sprintf(`a[href=%q]`, handle)
}

func cleanName(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, " · Visited link", ""))
}

// normalizeHost rewrites a unicode website host to its ASCII form and
// leaves anything unparseable untouched.
func normalizeHost(raw string) string {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	ascii, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil || ascii == u.Hostname() {
		return raw
	}
	return strings.Replace(raw, u.Hostname(), ascii, 1)
}
