// Package cli implements the doral-courts command tree.
//
// Fresh-data commands (list, slots, data, courts, locations, watch) fetch
// from the reservation site, persist what they saw, and render it; offline
// commands (history, stats, analyze, cleanup) work against the local
// database; the favorites and query groups manage the user's configuration
// file.
package cli
