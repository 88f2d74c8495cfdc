package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotADirectory is returned when the resolved output path exists
// but is a regular file. The CLI maps it to a non-zero exit.
var ErrNotADirectory = errors.New("not a directory")

// ResolveOutputDir picks the output directory and guarantees it exists.
//
// The first non-blank candidate wins; pass candidates in preference
// order (explicit flag, book title slug, working directory). The chosen
// path is made absolute and created with all parents if absent.
//
// Returns ErrNotADirectory (wrapped, with the offending path in the
// message) if the path exists as something other than a directory.
//
// Example:
//
//	dir, err := fsutil.ResolveOutputDir(flagValue, book.Title, ".")
func ResolveOutputDir(candidates ...string) (string, error) {
	var chosen string
	for _, c := range candidates {
		if c != "" {
			chosen = c
			break
		}
	}
	if chosen == "" {
		var err error
		chosen, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	path, err := filepath.Abs(chosen)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%q is %w", path, ErrNotADirectory)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}

	return path, nil
}

// ContainsFiles returns true if the directory has any entries.
func ContainsFiles(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// CreateTrackFile opens a per-chapter output file in truncate mode.
func CreateTrackFile(dir, name string) (*os.File, error) {
	return os.Create(filepath.Join(dir, name))
}

// AppendBookFile opens the shared single-file output in append mode.
// Repeated opens across the chapter loop keep extending the same file,
// producing one concatenated file in playlist order.
func AppendBookFile(dir, name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644 and truncated if it exists.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
