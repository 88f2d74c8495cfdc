// Package audio provides audio file manipulation services for
// downloaded chapters: ID3 tag writing and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to downloaded MP3 files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.TagChapter(path, track, book, coverBytes)
//
// Chapters are tagged with their title, the book title as album, and
// their playlist position as track number. Cover art is embedded when
// available. In single-file mode, TagBook writes book-level tags to
// the one concatenated file instead.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(true) // extended M3U
//	content := creator.CreatePlaylist(book)
//	os.WriteFile(playlistPath, []byte(content), 0644)
package audio
