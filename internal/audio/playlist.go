package audio

import (
	"fmt"
	"strings"

	"github.com/akdl/audioknigi-dl/internal/model"
)

// PlaylistCreator generates an M3U playlist for a downloaded book.
//
// The playlist references chapter files by bare filename, assuming it
// sits in the same directory as the chapters. Chapter durations are
// not known ahead of playback, so extended entries use -1.
//
// Example:
//
//	creator := audio.NewPlaylistCreator(true)
//	content := creator.CreatePlaylist(book)
//	os.WriteFile(filepath.Join(dir, book.Title+".m3u"), []byte(content), 0644)
//
//	// #EXTM3U
//	// #EXTINF:-1,Глава 1
//	// glava-1.mp3
type PlaylistCreator struct {
	extended bool // include #EXTINF lines with chapter titles
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist generates playlist content for a book, chapters in
// playlist order. Returns a string ready to be written to a file.
func (p *PlaylistCreator) CreatePlaylist(book *model.Book) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range book.Tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", track.Title))
		}
		sb.WriteString(track.FileName)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PlaylistFileName returns the playlist file name for a book.
func PlaylistFileName(book *model.Book) string {
	return book.Title + ".m3u"
}
