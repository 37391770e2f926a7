package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"newsquarry/internal/config"
	"newsquarry/internal/types"
)

// BrowserFetcher implements Fetcher using a headless browser via Rod.
// Some sources serve their search results only after JavaScript runs;
// profiles flagged RenderJS are routed here.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.FetcherConfig
	logger  *slog.Logger
}

// NewBrowserFetcher launches a headless Chromium and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	logger.Info("browser fetcher ready")

	return &BrowserFetcher{
		browser: browser,
		cfg:     &cfg.Fetcher,
		logger:  logger.With("component", "browser_fetcher"),
	}, nil
}

// Fetch navigates to rawURL and returns the rendered page content.
// Like the HTTP fetcher, any failure degrades to a 500-status result.
func (bf *BrowserFetcher) Fetch(ctx context.Context, rawURL string) *types.FetchResult {
	failed := &types.FetchResult{URL: rawURL, StatusCode: 500}

	page, err := stealth.Page(bf.browser)
	if err != nil {
		bf.logger.Warn("stealth page failed", "url", rawURL, "error", err)
		return failed
	}
	defer page.Close()

	if len(bf.cfg.UserAgents) > 0 {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bf.cfg.UserAgents[0],
		})
		if err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	page = page.Context(ctx)

	if err := page.Timeout(bf.cfg.RequestTimeout).Navigate(rawURL); err != nil {
		bf.logger.Warn("navigate failed", "url", rawURL, "error", err)
		return failed
	}

	if err := page.Timeout(bf.cfg.RequestTimeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", rawURL, "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		bf.logger.Warn("page content failed", "url", rawURL, "error", err)
		return failed
	}

	bf.logger.Debug("browser fetch complete", "url", rawURL, "size", len(html))

	// Rod does not expose the navigation status code directly; a page
	// that rendered is treated as a 200.
	return &types.FetchResult{
		URL:        rawURL,
		StatusCode: 200,
		Body:       []byte(html),
	}
}

// Close shuts down the browser and releases resources.
func (bf *BrowserFetcher) Close() error {
	if bf.browser != nil {
		return bf.browser.Close()
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}
