// Package httpx provides the HTTP client used for chapter and cover
// downloads.
//
// The Client in this package handles:
//   - User-Agent headers on every request
//   - Whole-body GETs for small resources (cover art)
//   - Streaming downloads into any io.Writer with progress callbacks
//   - Size lookups via HEAD requests
//
// # Basic Usage
//
//	client := httpx.NewClient("audioknigi-dl", 0)
//
//	data, err := client.Get(ctx, coverURL)
//
//	n, err := client.Download(ctx, mp3URL, file, func(written, total int64) {
//	    fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	})
//
// Download writes into a caller-opened writer rather than a path so
// that single-file mode can append every chapter to one shared file.
package httpx
