// Package monitor polls the backend for live calls and aggregate stats on a
// fixed interval and fans the merged snapshot out to connected live views.
//
// Ticks fire on schedule rather than chaining off the previous fetch, so
// fetches can overlap and complete out of order. Every fetch carries a
// monotonic sequence number; a result installs only if its sequence is newer
// than what that half of the snapshot already holds, so a slow old response
// never clobbers a newer one. Partial failures keep the previous good half
// and flag it stale.
package monitor
