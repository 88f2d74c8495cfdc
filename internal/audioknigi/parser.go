package audioknigi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akdl/audioknigi-dl/internal/audioknigi/dto"
	"github.com/akdl/audioknigi-dl/internal/model"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ExtractBookID returns the site's internal numeric book id from the
// rendered page markup.
//
// The id lives in a data-global-id attribute on the player container.
// It has no meaning beyond parameterizing the player-initialization
// call. A page without the attribute is not a book page.
//
// Example:
//
//	id, err := audioknigi.ExtractBookID(html)
//	// html contains `data-global-id="123456"` → id == "123456"
func ExtractBookID(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing page markup: %w", err)
	}

	id, ok := doc.Find("[data-global-id]").First().Attr("data-global-id")
	if !ok {
		return "", fmt.Errorf("no book id in page markup: not an audiobook page")
	}
	if !digitsOnly.MatchString(id) {
		return "", fmt.Errorf("malformed book id %q in page markup", id)
	}
	return id, nil
}

// ExtractCoverURL returns the book cover image URL from the rendered
// page, or the empty string if the page exposes none.
func ExtractCoverURL(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if url, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return url
	}
	return ""
}

// ParsePlaylist decodes the chapter list republished by the AJAX hook
// into ordered tracks.
//
// The payload is a JSON array of chapter records, each carrying at
// least an "mp3" media URL and a "title". Order in the array is
// chapter order in the book and is preserved.
func ParsePlaylist(payload string) ([]*model.Track, error) {
	var records []dto.JSONTrack
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decoding playlist payload: %w", err)
	}

	tracks := make([]*model.Track, 0, len(records))
	for i, record := range records {
		tracks = append(tracks, record.ToTrack(i+1))
	}
	return tracks, nil
}
