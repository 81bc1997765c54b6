package scraper

import "errors"

// Fatal fetch failures. These are the only errors that propagate to the
// caller; row- and slot-level parse problems are absorbed by the extractor
// and surfaced as skipped counts.
var (
	// ErrBootstrap means the session could not be established. No retry is
	// attempted; the whole fetch is abandoned.
	ErrBootstrap = errors.New("session bootstrap failed")

	// ErrBlocked means the site answered 403, i.e. its anti-automation
	// defenses rejected the request. No further pages can succeed.
	ErrBlocked = errors.New("site is blocking automated requests")

	// ErrSite covers any other non-200 response from the site.
	ErrSite = errors.New("site returned an error response")

	// ErrNetwork covers connection and timeout failures.
	ErrNetwork = errors.New("network error while fetching from site")
)

// Termination records why pagination stopped.
type Termination string

const (
	// TermExhausted: a page yielded zero courts.
	TermExhausted Termination = "exhausted"
	// TermAnomalousRepeat: a page was mostly duplicates of earlier pages,
	// the site likely lost pagination state and re-served content.
	TermAnomalousRepeat Termination = "anomalous-repeat"
	// TermNoMorePages: no next-page control, or already at the declared
	// last page.
	TermNoMorePages Termination = "no-more-pages"
	// TermBlocked: HTTP 403.
	TermBlocked Termination = "blocked"
	// TermSiteError: any other non-200 status.
	TermSiteError Termination = "site-error"
	// TermNetworkError: request-level failure.
	TermNetworkError Termination = "network-error"
)
