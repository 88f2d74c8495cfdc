// Package config provides configuration management for audioknigi-dl.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Headless browser with image loading disabled
//	// 60 second wait for the in-page playlist
//	// ID3 tagging and cover art enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Missing or malformed files are reported, not ignored
//	}
//
// Command-line flags override loaded values; the file only provides
// the baseline.
package config
