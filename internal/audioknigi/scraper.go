package audioknigi

import (
	"context"
	"fmt"

	"github.com/akdl/audioknigi-dl/internal/browser"
	"github.com/akdl/audioknigi-dl/internal/config"
	"github.com/akdl/audioknigi-dl/internal/model"
)

// Scraper turns an audiobook page URL into a Book with its ordered
// chapter playlist.
//
// The scrape drives a real browser: the chapter data only exists as a
// side effect of a client-side AJAX call, so the Scraper injects an
// interception hook, triggers the site's player initialization, and
// waits (bounded) for the hooked payload to land in the DOM. The
// browser is acquired per scrape and released on every exit path.
//
// Example:
//
//	scraper := audioknigi.NewScraper(settings)
//	book, err := scraper.Scrape(ctx, "https://audioknigi.club/author-title")
//	if err != nil {
//	    return err
//	}
//	for _, track := range book.Tracks {
//	    fmt.Println(track.FileName, track.MP3URL)
//	}
type Scraper struct {
	settings *config.Settings
}

// NewScraper creates a Scraper with the given settings.
func NewScraper(settings *config.Settings) *Scraper {
	return &Scraper{settings: settings}
}

// Scrape renders the book page and extracts the chapter playlist.
//
// Steps, in order; every failure is fatal for the run:
//  1. Launch a browser tab and render the page.
//  2. Find the numeric book id in the rendered markup.
//  3. Install the AJAX interception hook.
//  4. Trigger the site's player initialization for that id.
//  5. Wait (bounded, default 60s) for the playlist marker element.
//  6. Decode the marker text into ordered tracks.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*model.Book, error) {
	book := model.NewBook(rawURL)

	sess, err := browser.NewSession(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Navigate(book.URL); err != nil {
		return nil, err
	}

	html, err := sess.PageSource()
	if err != nil {
		return nil, err
	}

	bookID, err := ExtractBookID(html)
	if err != nil {
		return nil, err
	}
	book.CoverURL = ExtractCoverURL(html)

	if err := sess.RunScript(ajaxSuccessHook); err != nil {
		return nil, fmt.Errorf("installing playlist hook: %w", err)
	}
	if err := sess.RunScript(initPlayerScript(bookID)); err != nil {
		return nil, fmt.Errorf("initializing player: %w", err)
	}

	payload, err := sess.WaitText(playlistSelector, s.settings.PlaylistWait())
	if err != nil {
		return nil, fmt.Errorf("playlist never arrived: %w", err)
	}

	book.Tracks, err = ParsePlaylist(payload)
	if err != nil {
		return nil, err
	}

	return book, nil
}
