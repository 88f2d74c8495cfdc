package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/akdl/audioknigi-dl/internal/config"
)

// Session is a live headless-browser tab.
//
// A Session owns one Chrome process (via chromedp) and exposes the
// narrow surface the scraper needs: navigate, read the rendered page
// source, run script in the page, and wait for a selector to appear
// within a bound. Close releases the browser; callers must defer it
// so the process is reclaimed on every exit path, including
// extraction failures.
//
// Example:
//
//	sess, err := browser.NewSession(ctx, settings)
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	if err := sess.Navigate(bookURL); err != nil {
//	    return err
//	}
//	html, err := sess.PageSource()
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// NewSession launches a browser and returns a ready Session.
//
// Image loading is disabled when settings say so; that is purely a
// speed optimization for pages that are only scraped, never viewed.
func NewSession(parent context.Context, settings *config.Settings) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", settings.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if settings.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	if settings.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(settings.ChromePath))
	}
	if settings.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(settings.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser process now so launch failures surface here
	// instead of on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}, nil
}

// Navigate loads a URL and blocks until the document body is ready.
func (s *Session) Navigate(url string) error {
	if err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("rendering %s: %w", url, err)
	}
	return nil
}

// PageSource returns the fully rendered HTML of the current page.
func (s *Session) PageSource() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("reading page source: %w", err)
	}
	return html, nil
}

// RunScript executes script in the page context, discarding its value.
func (s *Session) RunScript(script string) error {
	return chromedp.Run(s.ctx, chromedp.Evaluate(script, nil))
}

// WaitText blocks until an element matching selector exists, then
// returns its text content. The wait is bounded by timeout; hitting
// the bound returns the context deadline error.
func (s *Session) WaitText(selector string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	var text string
	if err := chromedp.Run(ctx,
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.Text(selector, &text, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("waiting for %q: %w", selector, err)
	}
	return text, nil
}

// Close shuts the browser down. Safe to call exactly once, typically
// via defer right after NewSession succeeds.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}
