package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir      string `json:"output_dir"`
	ForceOverwrite bool   `json:"force_overwrite"`
	OneFile        bool   `json:"one_file"`

	// Browser settings
	ChromePath          string `json:"chrome_path"`
	Headless            bool   `json:"headless"`
	DisableImages       bool   `json:"disable_images"`
	PlaylistWaitSeconds int    `json:"playlist_wait_seconds"`

	// HTTP settings
	UserAgent          string `json:"user_agent"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`

	// Tag settings
	TagChapters bool `json:"tag_chapters"`

	// Cover art settings
	SaveCover    bool `json:"save_cover"`
	ResizeCover  bool `json:"resize_cover"`
	CoverMaxSize int  `json:"cover_max_size"`

	// Playlist file settings
	CreatePlaylist bool `json:"create_playlist"`
	M3UExtended    bool `json:"m3u_extended"`

	// Output verbosity
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Headless:            true,
		DisableImages:       true,
		PlaylistWaitSeconds: 60,

		UserAgent:          "audioknigi-dl",
		HTTPTimeoutSeconds: 0, // no explicit timeout; chapter files can be large

		TagChapters: true,

		SaveCover:    true,
		ResizeCover:  true,
		CoverMaxSize: 1000,

		CreatePlaylist: false,
		M3UExtended:    true,
	}
}

// Load reads settings from a JSON file.
//
// The file must exist. Callers pass paths the user named explicitly,
// and a typo'd path silently falling back to defaults would hide the
// mistake.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// PlaylistWait returns the bounded wait for the in-page playlist
// marker as a time.Duration.
func (s *Settings) PlaylistWait() time.Duration {
	secs := s.PlaylistWaitSeconds
	if secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

// HTTPTimeout returns the HTTP client timeout. Zero means no timeout.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}
