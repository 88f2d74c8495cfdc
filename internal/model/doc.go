// Package model defines the core data structures used throughout
// audioknigi-dl.
//
// # Book
//
// Book represents one audiobook page, with its title slug derived from
// the page URL:
//
//	book := model.NewBook("https://audioknigi.club/author-book-title")
//	fmt.Println(book.Title) // "author-book-title"
//
// Once scraped, a Book also carries its ordered chapter list and the
// cover art URL.
//
// # Track
//
// Track represents a single chapter:
//
//	track := model.NewTrack(3, "Глава 3", mp3URL)
//	fmt.Println(track.FileName) // "glava-3.mp3"
//
// # Slugs
//
// Slugify turns arbitrary titles into filesystem-safe names. It is
// idempotent, so slugs can be re-slugged without changing.
package model
