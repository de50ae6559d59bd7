// Package httputil provides the download plumbing for remote datasets.
//
//   - [Cache]: file-based JSON cache with a time-to-live
//   - [Retry]: retry with exponential backoff for transient failures
//
// Remote spreadsheets are re-read on every interaction, so responses are
// kept for an hour by default (~/.cache/geoquick/). Failures wrapped in
// [RetryableError] (network errors, 5xx responses) are retried up to three
// times, starting at one second and doubling.
//
// The cache can be cleared with `geoquick cache clear` or by deleting the
// cache directory.
package httputil
