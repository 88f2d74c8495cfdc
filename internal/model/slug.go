package model

import (
	"github.com/gosimple/slug"
)

// Slugify converts an arbitrary string into a filesystem-safe slug.
//
// The result is lowercase, ASCII-transliterated, with punctuation
// stripped and whitespace collapsed to single hyphens. Slugify is
// idempotent: applying it to its own output returns the same string.
//
// Example:
//
//	Slugify("Глава 1: Начало")  // "glava-1-nachalo"
//	Slugify("Chapter  One!!!")  // "chapter-one"
func Slugify(s string) string {
	return slug.Make(s)
}
