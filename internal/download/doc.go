// Package download provides the pipeline that turns a scraped book
// into files on disk.
//
// # Manager
//
// The Manager coordinates the whole run:
//
//  1. Scrape the book page (through the Scraper interface)
//  2. Optionally fetch and save the book cover
//  3. Download each chapter, one at a time, in playlist order
//  4. Tag downloaded files with ID3 metadata
//  5. Optionally write an M3U playlist
//
// # Basic Usage
//
//	manager := download.NewManager(settings, scraper, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, bookURL); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.StartDownload(ctx, outputDir); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sequential by Design
//
// Chapters are fetched strictly one after another; a chapter is fully
// written before the next fetch starts, and the first failure aborts
// the rest of the run. Progress counters use atomics only so that a
// UI goroutine can poll GetProgress mid-run.
//
// # Scraper Interface
//
// The Manager never touches the browser directly. Site-specific
// scraping sits behind the one-method Scraper interface, so the
// scraping protocol can change (or be faked in tests) without touching
// the download pipeline.
package download
