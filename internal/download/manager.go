package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/akdl/audioknigi-dl/internal/audio"
	"github.com/akdl/audioknigi-dl/internal/config"
	"github.com/akdl/audioknigi-dl/internal/fsutil"
	"github.com/akdl/audioknigi-dl/internal/httpx"
	"github.com/akdl/audioknigi-dl/internal/model"
)

// Scraper turns an audiobook page URL into a Book with its ordered
// chapter playlist. The production implementation drives a browser;
// tests substitute their own.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*model.Book, error)
}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager runs the download pipeline for one book.
//
// The pipeline is strictly sequential: scrape, then one fetch-and-write
// cycle per chapter in playlist order. Progress counters are updated
// atomically so a UI goroutine may poll GetProgress while the pipeline
// runs, but the pipeline itself never fetches two chapters at once.
//
// Example:
//
//	manager := download.NewManager(settings, scraper, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err := manager.Initialize(ctx, bookURL); err != nil {
//	    return err
//	}
//	if err := manager.StartDownload(ctx, outputDir); err != nil {
//	    return err
//	}
type Manager struct {
	settings *config.Settings
	scraper  Scraper
	client   *httpx.Client
	tagger   *audio.Tagger
	playlist *audio.PlaylistCreator
	images   *fsutil.ImageService

	book *model.Book

	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32

	onProgress func(ProgressEvent)
	onBytes    func(track *model.Track, written, total int64)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, scraper Scraper, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		scraper:    scraper,
		client:     httpx.NewClient(settings.UserAgent, settings.HTTPTimeout()),
		tagger:     audio.NewTagger(audio.DefaultTagConfig()),
		playlist:   audio.NewPlaylistCreator(settings.M3UExtended),
		images:     fsutil.NewImageService(),
		onProgress: onProgress,
	}
}

// SetByteProgress installs a per-chapter byte progress callback,
// invoked from the download loop as bytes arrive.
func (m *Manager) SetByteProgress(fn func(track *model.Track, written, total int64)) {
	m.onBytes = fn
}

// Initialize scrapes the book page and prepares the chapter playlist.
func (m *Manager) Initialize(ctx context.Context, url string) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Opening book page %s...", url), Level: LevelVerbose})

	book, err := m.scraper.Scrape(ctx, url)
	if err != nil {
		return err
	}
	m.book = book

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found book: %s (%d chapters)", book.Title, len(book.Tracks)),
		Level:   LevelInfo,
	})

	m.calculateTotals(ctx)
	return nil
}

// Book returns the scraped book, or nil before Initialize succeeds.
func (m *Manager) Book() *model.Book {
	return m.book
}

// GetProgress returns current download progress. Safe to call from
// another goroutine while the pipeline runs.
func (m *Manager) GetProgress() (received, total int64, filesReceived, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.downloadedFiles), atomic.LoadInt32(&m.totalFiles)
}

// StartDownload writes every chapter of the initialized book into dir,
// sequentially and in playlist order.
//
// Any chapter fetch or write failure aborts the remaining pipeline.
// Chapters already written stay on disk; there is no partial-success
// accounting beyond that.
func (m *Manager) StartDownload(ctx context.Context, dir string) error {
	if m.book == nil {
		return fmt.Errorf("download manager not initialized")
	}

	var cover []byte
	if m.settings.SaveCover && m.book.HasCover() {
		cover = m.fetchCover(ctx, dir)
	}

	for _, track := range m.book.Tracks {
		if err := m.downloadTrack(ctx, track, dir, cover); err != nil {
			return err
		}
	}

	if m.settings.OneFile && m.settings.TagChapters {
		path := filepath.Join(dir, m.book.OutputFileName())
		if err := m.tagger.TagBook(path, m.book, cover); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", m.book.OutputFileName(), err), Level: LevelWarning})
		}
	}

	if m.settings.CreatePlaylist && !m.settings.OneFile {
		content := m.playlist.CreatePlaylist(m.book)
		path := filepath.Join(dir, audio.PlaylistFileName(m.book))
		if err := fsutil.WriteFile(path, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", audio.PlaylistFileName(m.book)), Level: LevelSuccess})
		}
	}

	return nil
}

// calculateTotals sizes the chapters up front so progress can be
// reported in bytes. Sizing failures are ignored; the counters then
// track file counts only.
func (m *Manager) calculateTotals(ctx context.Context) {
	for _, track := range m.book.Tracks {
		atomic.AddInt32(&m.totalFiles, 1)
		if size, err := m.client.GetFileSize(ctx, track.MP3URL); err == nil {
			atomic.AddInt64(&m.totalBytes, size)
		}
	}
}

// fetchCover downloads, resizes, and saves the book cover. Cover art
// is a bonus: failures are reported as warnings and never abort the
// chapter pipeline.
func (m *Manager) fetchCover(ctx context.Context, dir string) []byte {
	cover, err := m.client.Get(ctx, m.book.CoverURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading cover: %v", err), Level: LevelWarning})
		return nil
	}

	if m.settings.ResizeCover {
		resized, err := m.images.ResizeImage(cover, m.settings.CoverMaxSize, m.settings.CoverMaxSize)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing cover: %v", err), Level: LevelWarning})
			return nil
		}
		cover = resized
	} else {
		converted, err := m.images.ConvertToJPEG(cover)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing cover: %v", err), Level: LevelWarning})
			return nil
		}
		cover = converted
	}

	if err := fsutil.WriteFile(filepath.Join(dir, "cover.jpg"), cover); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover: %v", err), Level: LevelWarning})
	} else {
		m.progress(ProgressEvent{Message: "Saved cover.jpg", Level: LevelVerbose})
	}

	return cover
}

func (m *Manager) downloadTrack(ctx context.Context, track *model.Track, dir string, cover []byte) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading chapter %q...", track.Slug), Level: LevelInfo})

	file, err := m.openOutput(track, dir)
	if err != nil {
		return err
	}

	written, err := m.client.Download(ctx, track.MP3URL, file, func(written, total int64) {
		if m.onBytes != nil {
			m.onBytes(track, written, total)
		}
	})
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("downloading chapter %q: %w", track.Slug, err)
	}

	atomic.AddInt64(&m.receivedBytes, written)
	atomic.AddInt32(&m.downloadedFiles, 1)

	if m.settings.TagChapters && !m.settings.OneFile {
		if err := m.tagger.TagChapter(filepath.Join(dir, track.FileName), track, m.book, cover); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.FileName, err), Level: LevelWarning})
		}
	}

	return nil
}

// openOutput opens the destination for one chapter: a fresh truncated
// file per track, or the shared book file re-opened for append so all
// chapters land back-to-back in playlist order.
func (m *Manager) openOutput(track *model.Track, dir string) (*os.File, error) {
	if m.settings.OneFile {
		return fsutil.AppendBookFile(dir, m.book.OutputFileName())
	}
	return fsutil.CreateTrackFile(dir, track.FileName)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
