package download

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akdl/audioknigi-dl/internal/config"
	"github.com/akdl/audioknigi-dl/internal/model"
)

// fakeScraper returns a canned book instead of driving a browser.
type fakeScraper struct {
	book *model.Book
	err  error
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*model.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.book, nil
}

// newChapterServer serves fixed chapter payloads under /N.mp3.
func newChapterServer(t *testing.T, chapters map[string][]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := chapters[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
}

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	s.TagChapters = false
	s.SaveCover = false
	return s
}

func testBook(srvURL string, n int) *model.Book {
	book := model.NewBook("https://audioknigi.club/test-book")
	for i := 1; i <= n; i++ {
		book.Tracks = append(book.Tracks,
			model.NewTrack(i, fmt.Sprintf("Chapter %d", i), fmt.Sprintf("%s/%d.mp3", srvURL, i)))
	}
	return book
}

func TestManager_PerTrackMode(t *testing.T) {
	srv := newChapterServer(t, map[string][]byte{
		"/1.mp3": []byte("AAAA"),
		"/2.mp3": []byte("BBBBBB"),
	})
	defer srv.Close()

	dir := t.TempDir()
	settings := testSettings()

	var messages []string
	manager := NewManager(settings, &fakeScraper{book: testBook(srv.URL, 2)}, func(event ProgressEvent) {
		messages = append(messages, event.Message)
	})

	ctx := context.Background()
	if err := manager.Initialize(ctx, "https://audioknigi.club/test-book"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := manager.StartDownload(ctx, dir); err != nil {
		t.Fatalf("StartDownload: %v", err)
	}

	for name, want := range map[string]string{
		"chapter-1.mp3": "AAAA",
		"chapter-2.mp3": "BBBBBB",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("chapter file %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}

	var sawChapterLine bool
	for _, msg := range messages {
		if msg == `Downloading chapter "chapter-1"...` {
			sawChapterLine = true
		}
	}
	if !sawChapterLine {
		t.Errorf("expected a per-chapter progress line, got %q", messages)
	}
}

func TestManager_OneFileMode(t *testing.T) {
	chapters := map[string][]byte{
		"/1.mp3": []byte("AAAA"),
		"/2.mp3": []byte("BB"),
		"/3.mp3": []byte("CCCCCC"),
	}
	srv := newChapterServer(t, chapters)
	defer srv.Close()

	dir := t.TempDir()
	settings := testSettings()
	settings.OneFile = true

	manager := NewManager(settings, &fakeScraper{book: testBook(srv.URL, 3)}, nil)

	ctx := context.Background()
	if err := manager.Initialize(ctx, "https://audioknigi.club/test-book"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := manager.StartDownload(ctx, dir); err != nil {
		t.Fatalf("StartDownload: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("one-file mode should create exactly one file, got %d entries", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, "test-book.mp3"))
	if err != nil {
		t.Fatalf("concatenated file: %v", err)
	}
	if string(data) != "AAAABBCCCCCC" {
		t.Errorf("concatenated file = %q, chapters must append in playlist order", data)
	}

	wantLen := len(chapters["/1.mp3"]) + len(chapters["/2.mp3"]) + len(chapters["/3.mp3"])
	if len(data) != wantLen {
		t.Errorf("file length = %d, want sum of chapter lengths %d", len(data), wantLen)
	}
}

func TestManager_FetchFailureAbortsPipeline(t *testing.T) {
	srv := newChapterServer(t, map[string][]byte{
		"/1.mp3": []byte("AAAA"),
		// /2.mp3 missing → 404
		"/3.mp3": []byte("CCCC"),
	})
	defer srv.Close()

	dir := t.TempDir()
	manager := NewManager(testSettings(), &fakeScraper{book: testBook(srv.URL, 3)}, nil)

	ctx := context.Background()
	if err := manager.Initialize(ctx, "https://audioknigi.club/test-book"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := manager.StartDownload(ctx, dir)
	if err == nil {
		t.Fatal("a chapter fetch failure must abort the run")
	}

	if _, statErr := os.Stat(filepath.Join(dir, "chapter-1.mp3")); statErr != nil {
		t.Error("chapters written before the failure should remain on disk")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "chapter-3.mp3")); statErr == nil {
		t.Error("chapters after the failure must not be fetched")
	}
}

func TestManager_PlaylistFile(t *testing.T) {
	srv := newChapterServer(t, map[string][]byte{
		"/1.mp3": []byte("AAAA"),
	})
	defer srv.Close()

	dir := t.TempDir()
	settings := testSettings()
	settings.CreatePlaylist = true

	manager := NewManager(settings, &fakeScraper{book: testBook(srv.URL, 1)}, nil)

	ctx := context.Background()
	if err := manager.Initialize(ctx, "https://audioknigi.club/test-book"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := manager.StartDownload(ctx, dir); err != nil {
		t.Fatalf("StartDownload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test-book.m3u"))
	if err != nil {
		t.Fatalf("playlist file: %v", err)
	}
	if want := "chapter-1.mp3"; !strings.Contains(string(data), want) {
		t.Errorf("playlist %q should reference %q", data, want)
	}
}

func TestManager_GetProgress(t *testing.T) {
	srv := newChapterServer(t, map[string][]byte{
		"/1.mp3": []byte("AAAA"),
		"/2.mp3": []byte("BBBB"),
	})
	defer srv.Close()

	dir := t.TempDir()
	manager := NewManager(testSettings(), &fakeScraper{book: testBook(srv.URL, 2)}, nil)

	ctx := context.Background()
	if err := manager.Initialize(ctx, "https://audioknigi.club/test-book"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, total, _, filesTotal := manager.GetProgress()
	if filesTotal != 2 {
		t.Errorf("filesTotal = %d, want 2", filesTotal)
	}
	if total != 8 {
		t.Errorf("totalBytes = %d, want 8", total)
	}

	if err := manager.StartDownload(ctx, dir); err != nil {
		t.Fatalf("StartDownload: %v", err)
	}

	received, _, filesReceived, _ := manager.GetProgress()
	if filesReceived != 2 {
		t.Errorf("filesReceived = %d, want 2", filesReceived)
	}
	if received != 8 {
		t.Errorf("receivedBytes = %d, want 8", received)
	}
}
