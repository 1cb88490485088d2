package crawler

import (
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"
)

const defaultUserAgent = "linkrot/1.0"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// PageErrorOrigin is the synthetic origin key in Report.Broken used for
// failures that happen while fetching a page itself, as opposed to failures
// of links found on a page.
const PageErrorOrigin = "page-fetch-errors"

// ExtractFunc resolves the links referenced by an HTML document into
// absolute URLs.
type ExtractFunc func(base string, body []byte) ([]string, error)

// Config defines inputs for a crawl run. Zero values fall back to defaults
// inside Crawl.
type Config struct {
	// StartURL is the seed page the crawl begins from. Required.
	StartURL string

	// Workers bounds the number of concurrent link verifications.
	Workers int

	// Timeout applies to every probe and fetch.
	Timeout time.Duration

	// MaxRetries is the number of extra verification attempts after the
	// first. Negative selects the default of two; zero disables retries.
	MaxRetries int

	UserAgent string

	// AllDomains lifts the restriction that only pages sharing the seed
	// host are crawled. Off-host links are still verified either way.
	AllDomains bool

	// IgnorePatterns removes matching URLs from both crawling and
	// verification.
	IgnorePatterns []*regexp.Regexp

	// MaxPages stops queueing new pages once this many have been seen.
	// Zero means unlimited.
	MaxPages int

	// RequestsPerMinute throttles all outgoing requests. Zero disables.
	RequestsPerMinute int

	// ArchiveDir, when set, receives a markdown snapshot of every fetched
	// page.
	ArchiveDir string

	Client   *http.Client
	Extract  ExtractFunc
	Logger   *zap.Logger
	Progress func(string)
}

// Outcome is the result of verifying a single link. A non-empty Err means no
// status code could be obtained at all; otherwise StatusCode holds the final
// HTTP status.
type Outcome struct {
	URL        string
	StatusCode int
	Err        string
}

// Alive reports whether the link resolved successfully.
func (o Outcome) Alive() bool { return o.Err == "" && o.StatusCode < 400 }

// Broken reports whether the link is dead or unreachable.
func (o Outcome) Broken() bool { return !o.Alive() }

// BrokenLink is one failed outgoing link recorded against its origin page.
type BrokenLink struct {
	URL    string
	Status int
	Err    string
}

// Report captures the outcome of a crawl.
type Report struct {
	// Broken maps an origin page URL to the links on it that failed
	// verification. A page appears only if at least one link failed.
	// The PageErrorOrigin key collects pages that could not be fetched.
	Broken map[string][]BrokenLink

	// External lists the off-host URLs that were seen, sorted.
	External []string

	Stats       Stats
	StartedAt   time.Time
	FinishedAt  time.Time
	Interrupted bool
}

// Stats aggregates crawl level counters.
type Stats struct {
	PagesVisited    int
	LinksChecked    int
	BrokenLinks     int
	PagesWithBroken int
	ExternalLinks   int
	VerifyCacheHits int
	SkippedByIgnore int
	SkippedByLimit  int
	Duration        time.Duration
}
