package audio

import (
	"strings"
	"testing"

	"github.com/akdl/audioknigi-dl/internal/model"
)

func createTestBook() *model.Book {
	book := model.NewBook("https://audioknigi.club/test-book")
	book.Tracks = []*model.Track{
		model.NewTrack(1, "Chapter One", "https://cdn.example.com/1.mp3"),
		model.NewTrack(2, "Chapter Two", "https://cdn.example.com/2.mp3"),
	}
	return book
}

func TestPlaylistCreator_M3U(t *testing.T) {
	book := createTestBook()
	creator := NewPlaylistCreator(false)

	content := creator.CreatePlaylist(book)

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not have the extended header")
	}
	if !strings.Contains(content, "chapter-one.mp3") {
		t.Error("M3U should contain the chapter file name")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	book := createTestBook()
	creator := NewPlaylistCreator(true)

	content := creator.CreatePlaylist(book)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Chapter One") {
		t.Error("extended M3U should carry chapter titles")
	}

	// Chapters must appear in playlist order.
	first := strings.Index(content, "chapter-one.mp3")
	second := strings.Index(content, "chapter-two.mp3")
	if first == -1 || second == -1 || first > second {
		t.Error("playlist entries out of order")
	}
}

func TestPlaylistFileName(t *testing.T) {
	book := createTestBook()
	if got := PlaylistFileName(book); got != "test-book.m3u" {
		t.Errorf("PlaylistFileName = %q, want %q", got, "test-book.m3u")
	}
}
