package model

import (
	"net/url"
	"strings"
)

// Book represents one audiobook page and, once scraped, its ordered
// chapter list.
//
// The title slug is derived from the last segment of the page URL, so
// it is available before any network or browser work happens. CoverURL
// and Tracks are filled in by the scraper.
//
// Example:
//
//	book := model.NewBook("https://audioknigi.club/tolstoy-voyna-i-mir")
//	// book.Title            == "tolstoy-voyna-i-mir"
//	// book.OutputFileName() == "tolstoy-voyna-i-mir.mp3"
type Book struct {
	// URL is the audiobook page URL, kept verbatim.
	URL string

	// Title is the filesystem-safe book title, derived from the last
	// path segment of URL.
	Title string

	// CoverURL is the cover art URL, empty when the page has none.
	CoverURL string

	// Tracks holds the chapters in playlist order.
	Tracks []*Track
}

// NewBook creates a Book for the given page URL with its title slug
// computed. The URL itself is stored unchanged.
func NewBook(rawURL string) *Book {
	return &Book{
		URL:   rawURL,
		Title: titleFromURL(rawURL),
	}
}

// HasCover reports whether the book page exposed cover art.
func (b *Book) HasCover() bool {
	return b.CoverURL != ""
}

// OutputFileName returns the file name used in single-file mode,
// where all chapters are appended into one MP3.
func (b *Book) OutputFileName() string {
	return b.Title + ".mp3"
}

// titleFromURL slugs the last path segment of the page URL. A URL that
// cannot be parsed falls back to slugging the whole string, which still
// yields a usable directory name.
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Slugify(rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	if path == "" {
		return Slugify(u.Host)
	}
	return Slugify(path)
}
