// Package extractor parses the reservation site's search-result HTML into
// court records.
//
// The site publishes availability as a sequence of result tables that all
// share the same element id, with label-driven cells keyed by data-title
// attributes and a follow-on booking-control row per court. The extractor
// is total over malformed input: a page without result tables yields no
// courts, and a malformed row or booking button is skipped and counted
// rather than failing the page.
package extractor
