// Package scraper fetches court availability from the Doral reservation
// site.
//
// A fetch bootstraps a browser-like session against the site's
// anti-automation challenge, then walks the paginated search results one
// page at a time, handing each page to the extractor and stopping on
// exhaustion, duplicate-heavy pages, or a terminal HTTP condition. Results
// preserve first-seen order across pages and carry the effective request
// URLs for provenance.
package scraper
