// Package audioknigi provides the site-specific scraping logic that
// turns an audiobook page into an ordered chapter playlist.
//
// The site never serves chapter data as static markup. It arrives via
// an internal AJAX call made by the in-page audio player, consumed
// silently by the player's own script. The Scraper therefore:
//
//  1. Renders the page in a real browser
//  2. Reads the numeric book id from a data-global-id attribute
//  3. Installs a jQuery ajaxSuccess hook that catches the playlist
//     response (matched by the "ajax/bid" URL fragment) and republishes
//     it as the text of a #playlist marker element
//  4. Triggers $(document).audioPlayer(<id>, 0) to fire the call
//  5. Waits, bounded, for the marker and decodes it
//
// Everything in steps 2–4 is an unversioned contract with the site's
// own JavaScript and may break when the site changes. The rest of the
// program only sees the narrow result: a Book with ordered Tracks.
//
//	scraper := audioknigi.NewScraper(settings)
//	book, err := scraper.Scrape(ctx, url)
package audioknigi
