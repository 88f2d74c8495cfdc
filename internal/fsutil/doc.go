// Package fsutil provides file system and image utilities for
// audioknigi-dl.
//
// # Output Directory Resolution
//
// ResolveOutputDir implements the download destination policy: the
// first non-blank candidate of (explicit flag, book title slug,
// working directory), made absolute and created on demand:
//
//	dir, err := fsutil.ResolveOutputDir(flagValue, book.Title)
//	if errors.Is(err, fsutil.ErrNotADirectory) {
//	    // path exists but is a regular file
//	}
//
// # Output Files
//
// Chapters are written either one file per track (truncate mode) or
// appended back-to-back into a single file named after the book:
//
//	f, _ := fsutil.CreateTrackFile(dir, track.FileName) // per-track
//	f, _ := fsutil.AppendBookFile(dir, book.OutputFileName()) // one-file
//
// # Cover Art
//
// The ImageService resizes and JPEG-encodes downloaded cover images.
package fsutil
