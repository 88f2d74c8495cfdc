package audio

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"

	"github.com/akdl/audioknigi-dl/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the scraped value.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Audiobook chapters carry a small tag set: the book title goes into
// the album frame, the chapter title into the title frame, and the
// chapter's playlist position into the track-number frame.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Album controls the TALB (Album title) frame — the book title.
	Album TagEditAction

	// TrackTitle controls the TIT2 (Title) frame — the chapter title.
	TrackTitle TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: all fields
// updated from the scrape, comments cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Album:       TagModify,
		TrackTitle:  TagModify,
		TrackNumber: TagModify,
		Comments:    TagEmpty,
	}
}

// Tagger writes ID3 tags to downloaded chapter files.
//
// Example:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.TagChapter(path, track, book, coverBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger. A nil config gets the defaults.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// TagChapter writes chapter tags to a per-track MP3 file.
//
// The chapter title becomes the ID3 title, the book title the album,
// and the playlist position the track number. Cover art, if provided,
// is embedded as the front cover.
func (t *Tagger) TagChapter(path string, track *model.Track, book *model.Book, artwork []byte) error {
	return t.save(path, func(tag *id3v2.Tag) {
		if t.config.ModifyTags {
			switch t.config.TrackTitle {
			case TagEmpty:
				tag.SetTitle("")
			case TagModify:
				tag.SetTitle(track.Title)
			}

			switch t.config.TrackNumber {
			case TagEmpty:
				tag.DeleteFrames(tag.CommonID("Track number/Position in set"))
			case TagModify:
				tag.AddTextFrame(tag.CommonID("Track number/Position in set"),
					tag.DefaultEncoding(), fmt.Sprintf("%d", track.Number))
			}

			t.applyBookTags(tag, book)
		}
		t.applyArtwork(tag, artwork)
	})
}

// TagBook writes book-level tags to the single concatenated output
// file: title and album are both the book title, no track number.
func (t *Tagger) TagBook(path string, book *model.Book, artwork []byte) error {
	return t.save(path, func(tag *id3v2.Tag) {
		if t.config.ModifyTags {
			if t.config.TrackTitle == TagModify {
				tag.SetTitle(book.Title)
			}
			t.applyBookTags(tag, book)
		}
		t.applyArtwork(tag, artwork)
	})
}

func (t *Tagger) save(path string, apply func(tag *id3v2.Tag)) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("opening tags for %s: %w", path, err)
	}
	defer tag.Close()

	apply(tag)

	return tag.Save()
}

func (t *Tagger) applyBookTags(tag *id3v2.Tag, book *model.Book) {
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(book.Title)
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

func (t *Tagger) applyArtwork(tag *id3v2.Tag, artwork []byte) {
	if artwork == nil {
		return
	}
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Picture:     artwork,
	})
}
