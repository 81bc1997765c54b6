package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/extractor"
)

const (
	SearchURL = "https://fldoralweb.myvscloud.com/webtrac/web/search.html"
	SplashURL = "https://fldoralweb.myvscloud.com/webtrac/web/splash.html"
	Timeout   = 30 * time.Second

	// DefaultDuplicateRatioLimit stops pagination when more than this share
	// of a page's courts were already seen on earlier pages. The threshold
	// is a heuristic carried over from observed site behavior; it guards
	// against the site silently re-serving page 1 when pagination state is
	// lost.
	DefaultDuplicateRatioLimit = 0.5

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	pageBreakMarker = "\n\n<!-- PAGE BREAK -->\n\n"
)

// browserHeaders makes requests look like an interactive browser session;
// the site's challenge layer rejects bare clients.
var browserHeaders = map[string]string{
	"User-Agent":                userAgent,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "max-age=0",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

// Result is the outcome of one fetch operation. Provenance URLs are part
// of the result instead of scraper state, so concurrent or repeated
// fetches cannot observe each other.
type Result struct {
	Courts       []court.Court
	Pages        int
	SkippedRows  int
	SkippedSlots int
	Termination  Termination
	RequestURLs  []string
	CombinedHTML string
}

// LastRequestURL returns the effective URL of the most recent page request,
// or the search endpoint when no request was issued.
func (r *Result) LastRequestURL() string {
	if len(r.RequestURLs) == 0 {
		return SearchURL
	}
	return r.RequestURLs[len(r.RequestURLs)-1]
}

// Scraper drives paginated searches against the reservation site. One
// Scraper owns one HTTP session; a fetch is single-threaded and
// synchronous, and all per-fetch state lives in the Result.
type Scraper struct {
	client    *http.Client
	searchURL string
	splashURL string
	ext       *extractor.Extractor
	log       *zap.SugaredLogger

	// DuplicateRatioLimit may be raised or lowered before the first fetch;
	// it defaults to DefaultDuplicateRatioLimit.
	DuplicateRatioLimit float64
}

// New creates a Scraper with a fresh cookie jar.
func New(log *zap.SugaredLogger) *Scraper {
	jar, _ := cookiejar.New(nil)
	return &Scraper{
		client: &http.Client{
			Jar:     jar,
			Timeout: Timeout,
		},
		searchURL:           SearchURL,
		splashURL:           SplashURL,
		ext:                 extractor.New(log),
		log:                 log,
		DuplicateRatioLimit: DefaultDuplicateRatioLimit,
	}
}

// Bootstrap establishes a usable session: it visits the landing page so the
// challenge layer can set its cookies, then guarantees the two baseline
// cookies the site requires. Only a server-error status fails the
// bootstrap; redirects and resolved challenge pages count as success.
func (s *Scraper) Bootstrap(ctx context.Context) error {
	s.log.Debugw("initializing session", "url", s.splashURL)

	resp, err := s.get(ctx, s.splashURL, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBootstrap, err)
	}
	resp.Body.Close()

	s.ensureBaselineCookies()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: server returned status %d", ErrBootstrap, resp.StatusCode)
	}
	s.log.Infow("session initialized", "status", resp.StatusCode)
	return nil
}

// ensureBaselineCookies sets the cookies the site expects from a real
// browser when the challenge response did not set them itself.
func (s *Scraper) ensureBaselineCookies() {
	base, err := url.Parse(s.splashURL)
	if err != nil {
		return
	}
	present := map[string]bool{}
	for _, c := range s.client.Jar.Cookies(base) {
		present[c.Name] = true
	}
	var missing []*http.Cookie
	if !present["_CookiesEnabled"] {
		missing = append(missing, &http.Cookie{Name: "_CookiesEnabled", Value: "Yes"})
	}
	if !present["_mobile"] {
		missing = append(missing, &http.Cookie{Name: "_mobile", Value: "no"})
	}
	if len(missing) > 0 {
		s.client.Jar.SetCookies(base, missing)
	}
}

// FetchCourts runs a full paginated fetch for one date, applying the
// optional sport filter to the aggregate. A fatal condition before any
// court was seen returns one of the package's typed errors and no result;
// once courts have been gathered, terminal conditions stop pagination and
// the partial aggregate is returned with its termination reason.
func (s *Scraper) FetchCourts(ctx context.Context, date string, sportFilter string) (*Result, error) {
	s.log.Infow("starting court fetch", "date", date, "sport_filter", sportFilter)

	if err := s.Bootstrap(ctx); err != nil {
		s.log.Errorw("session bootstrap failed", "error", err)
		return nil, err
	}

	res := &Result{}
	seen := make(map[string]bool)
	var pages []string

	for page := 1; ; page++ {
		doc, body, err := s.fetchPage(ctx, date, page, res)
		if err != nil {
			if len(res.Courts) == 0 {
				return nil, err
			}
			s.log.Warnw("fetch ended early, returning partial results",
				"pages", res.Pages, "courts", len(res.Courts), "termination", res.Termination)
			break
		}

		res.Pages = page
		pages = append(pages, body)

		extracted := s.ext.Extract(doc)
		res.SkippedRows += extracted.SkippedRows
		res.SkippedSlots += extracted.SkippedSlots

		if len(extracted.Courts) == 0 {
			s.log.Debugw("no courts on page, stopping", "page", page)
			res.Termination = TermExhausted
			break
		}

		if page > 1 {
			ratio := duplicateRatio(extracted.Courts, seen)
			if ratio > s.DuplicateRatioLimit {
				s.log.Warnw("page is mostly duplicate data, stopping pagination",
					"page", page, "duplicate_ratio", ratio)
				res.Termination = TermAnomalousRepeat
				break
			}
		}

		added := 0
		for _, c := range extracted.Courts {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			res.Courts = append(res.Courts, c)
			added++
		}
		s.log.Debugw("merged page results",
			"page", page, "found", len(extracted.Courts), "new", added)

		if !hasNextPage(doc, page) {
			s.log.Debugw("no further pages", "page", page)
			res.Termination = TermNoMorePages
			break
		}
	}

	res.CombinedHTML = strings.Join(pages, pageBreakMarker)
	res.Courts = filterBySport(res.Courts, sportFilter)

	s.log.Infow("fetch complete",
		"courts", len(res.Courts), "pages", res.Pages, "termination", res.Termination,
		"skipped_rows", res.SkippedRows, "skipped_slots", res.SkippedSlots)
	return res, nil
}

// fetchPage issues the search request for one page and returns the parsed
// document together with the raw body. A terminal HTTP condition is
// reported through err after recording the termination reason on the
// result.
func (s *Scraper) fetchPage(ctx context.Context, date string, page int, res *Result) (*goquery.Document, string, error) {
	token := s.fetchToken(ctx)
	params := s.buildSearchParams(date, page, token)

	headers := map[string]string{
		"Referer":        s.searchURL,
		"Sec-Fetch-Site": "same-origin",
	}

	s.log.Debugw("fetching page", "page", page)
	resp, err := s.get(ctx, s.searchURL, params, headers)
	if err != nil {
		res.Termination = TermNetworkError
		return nil, "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	res.RequestURLs = append(res.RequestURLs, resp.Request.URL.String())

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden:
		s.log.Errorw("received 403, site is blocking automated requests", "page", page)
		res.Termination = TermBlocked
		return nil, "", fmt.Errorf("%w (page %d)", ErrBlocked, page)
	default:
		s.log.Errorw("site returned unexpected status", "page", page, "status", resp.StatusCode)
		res.Termination = TermSiteError
		return nil, "", fmt.Errorf("%w: status %d (page %d)", ErrSite, resp.StatusCode, page)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		res.Termination = TermNetworkError
		return nil, "", fmt.Errorf("%w: reading page %d: %v", ErrNetwork, page, err)
	}

	body, _ := doc.Html()
	return doc, body, nil
}

// fetchToken pulls a fresh anti-forgery token from the search page. The
// site rotates the token per page view, so one is fetched before every
// search request. Failures yield an empty token; the search is attempted
// regardless, matching how the site itself degrades.
func (s *Scraper) fetchToken(ctx context.Context) string {
	resp, err := s.get(ctx, s.searchURL, nil, nil)
	if err != nil {
		s.log.Warnw("failed to fetch anti-forgery token", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warnw("token page returned unexpected status", "status", resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.log.Warnw("failed to parse token page", "error", err)
		return ""
	}

	token, ok := doc.Find(`input[name="_csrf_token"]`).First().Attr("value")
	if !ok || token == "" {
		s.log.Warnw("anti-forgery token not found in page")
		return ""
	}
	s.log.Debugw("fetched anti-forgery token")
	return token
}

// buildSearchParams assembles the site's search form values for one page.
// The result type is pinned to the two supported sports.
func (s *Scraper) buildSearchParams(date string, page int, token string) url.Values {
	if date == "" {
		date = time.Now().Format(court.SiteDateLayout)
	}

	params := url.Values{}
	params.Set("Action", "Start")
	params.Set("SubAction", "")
	params.Set("_csrf_token", token)
	params.Set("date", date)
	params.Set("begintime", "08:00 am")
	params.Add("type", "Pickleball Court")
	params.Add("type", "Tennis Court")
	params.Set("subtype", "")
	params.Set("category", "")
	params.Set("keyword", "")
	params.Set("keywordoption", "Match One")
	params.Set("blockstodisplay", "50")
	params.Set("frheadcount", "0")
	params.Set("display", "Detail")
	params.Set("search", "yes")
	params.Set("page", strconv.Itoa(page))
	params.Set("module", "fr")
	params.Set("multiselectlist_value", "")
	params.Set("frwebsearch_buttonsearch", "yes")
	return params
}

// get issues one GET with browser identity headers plus any extras.
func (s *Scraper) get(ctx context.Context, rawURL string, params url.Values, extra map[string]string) (*http.Response, error) {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	return s.client.Do(req)
}

// duplicateRatio is the share of a page's courts whose names already
// appeared on earlier pages.
func duplicateRatio(courts []court.Court, seen map[string]bool) float64 {
	if len(courts) == 0 {
		return 0
	}
	dup := 0
	for _, c := range courts {
		if seen[c.Name] {
			dup++
		}
	}
	return float64(dup) / float64(len(courts))
}

// hasNextPage decides whether pagination can advance past the current
// page: either an explicit go-to-next-page control exists, or the
// last-page control declares a page number beyond the current one.
func hasNextPage(doc *goquery.Document, current int) bool {
	next := doc.Find(fmt.Sprintf(`button[data-click-set-value=%q]`, strconv.Itoa(current+1)))
	if next.Length() > 0 {
		return true
	}

	last := doc.Find("button.paging__lastpage").First()
	if last.Length() == 0 {
		return false
	}
	lastValue, ok := last.Attr("data-click-set-value")
	if !ok {
		return false
	}
	maxPage, err := strconv.Atoi(lastValue)
	if err != nil {
		return false
	}
	return current < maxPage
}

// filterBySport keeps only courts whose sport matches the filter
// (case-insensitive exact match). An empty filter keeps everything.
func filterBySport(courts []court.Court, sport string) []court.Court {
	if sport == "" {
		return courts
	}
	filtered := make([]court.Court, 0, len(courts))
	for _, c := range courts {
		if strings.EqualFold(string(c.SportType), sport) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
