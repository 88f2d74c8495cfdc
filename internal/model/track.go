package model

import "fmt"

// Track represents a single chapter of an audiobook.
//
// Track pairs the chapter's media URL with its display title and the
// slug used for the on-disk file name. Tracks are produced in playlist
// order and consumed exactly once, front to back.
//
// Example:
//
//	track := model.NewTrack(1, "Глава 1", mp3URL)
//	// track.Slug     == "glava-1"
//	// track.FileName == "glava-1.mp3"
type Track struct {
	// Number is the chapter number (1-indexed), in playlist order.
	Number int

	// Title is the chapter title as delivered by the site, used for
	// ID3 tags and progress output.
	Title string

	// Slug is the filesystem-safe rendering of the title.
	Slug string

	// MP3URL is the URL the chapter audio is fetched from. It is
	// passed through to the HTTP client unchanged.
	MP3URL string

	// FileName is the per-chapter output file name.
	FileName string
}

// NewTrack creates a Track with its slug and file name computed.
// Titles that slug down to nothing fall back to the chapter number so
// every track gets a distinct, visible file name.
func NewTrack(number int, title, mp3URL string) *Track {
	s := Slugify(title)
	if s == "" {
		s = fmt.Sprintf("chapter-%d", number)
	}
	t := &Track{
		Number: number,
		Title:  title,
		Slug:   s,
		MP3URL: mp3URL,
	}
	t.FileName = t.Slug + ".mp3"
	return t
}
