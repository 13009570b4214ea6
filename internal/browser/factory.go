package browser

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/octobees/maps-scraper/internal/scraper"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Factory creates chromedp-backed sessions, bounded by a fixed ceiling of
// concurrently open browser processes. Beyond the ceiling, acquisition
// fails instead of degrading sessions that are already running.
type Factory struct {
	maxSessions int
	execPath    string

	mu   sync.Mutex
	open int
}

// NewFactory builds a factory. An empty chromeBin triggers a lookup of the
// usual Chrome/Chromium install locations.
func NewFactory(maxSessions int, chromeBin string) *Factory {
	if maxSessions <= 0 {
		maxSessions = 2
	}
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Factory{maxSessions: maxSessions, execPath: chromeBin}
}

// InUse reports how many sessions are currently open.
func (f *Factory) InUse() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Factory) acquire() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open >= f.maxSessions {
		return fmt.Errorf("session ceiling reached (%d open)", f.open)
	}
	f.open++
	return nil
}

func (f *Factory) release() {
	f.mu.Lock()
	if f.open > 0 {
		f.open--
	}
	f.mu.Unlock()
}

// NewSession launches a browser scoped to one scrape request. The returned
// session owns the browser process and releases the factory slot on Close.
func (f *Factory) NewSession(ctx context.Context, headless bool) (scraper.Session, error) {
	if err := f.acquire(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(defaultUserAgent),
	)
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))

	cleanup := func() {
		cancelTab()
		cancelAlloc()
		f.release()
	}

	// Start the browser process now so launch failures surface as session
	// errors instead of failing the first navigation.
	s := &session{tab: tabCtx, cleanup: cleanup}
	if err := s.run(ctx, chromedp.ActionFunc(func(context.Context) error { return nil })); err != nil {
		cleanup()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	return s, nil
}

// findChromeBinary locates a Chrome/Chromium binary on the host.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
