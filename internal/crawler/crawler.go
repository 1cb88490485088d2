package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"linkrot/internal/extract"
)

const maxPageBytes = 5 * 1024 * 1024

type crawler struct {
	client     *http.Client
	start      *url.URL
	allDomains bool
	ignore     []*regexp.Regexp
	maxPages   int
	userAgent  string
	extract    ExtractFunc
	logger     *zap.Logger
	progress   func(string)

	// Mutated only by the coordinating loop; verification workers report
	// back through the pool's result channel and never touch these.
	frontier *frontier
	visited  map[string]struct{}
	external map[string]struct{}
	broken   map[string][]BrokenLink
	outcomes *outcomeCache
	stats    Stats

	verifier *verifier
	pool     *verifyPool
	pacer    *pacer
	archive  *archiver
}

// Crawl runs a full crawl from cfg.StartURL and returns the report.
// Cancelling ctx stops the crawl early; results collected up to that point
// are still returned, with Report.Interrupted set.
func Crawl(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.StartURL == "" {
		return nil, errors.New("start URL is required")
	}
	parsed, err := url.Parse(cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("start URL must include a host")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 2
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	extractFn := cfg.Extract
	if extractFn == nil {
		extractFn = func(base string, body []byte) ([]string, error) {
			return extract.Links(base, bytes.NewReader(body))
		}
	}
	maxPages := cfg.MaxPages
	if maxPages < 0 {
		maxPages = 0
	}

	c := &crawler{
		client:     client,
		start:      parsed,
		allDomains: cfg.AllDomains,
		ignore:     cfg.IgnorePatterns,
		maxPages:   maxPages,
		userAgent:  userAgent,
		extract:    extractFn,
		logger:     logger,
		progress:   cfg.Progress,
		frontier:   newFrontier(),
		visited:    map[string]struct{}{},
		external:   map[string]struct{}{},
		broken:     map[string][]BrokenLink{},
		outcomes:   newOutcomeCache(),
		pacer:      newPacer(cfg.RequestsPerMinute, workers),
	}
	c.verifier = &verifier{
		client:     client,
		userAgent:  userAgent,
		timeout:    timeout,
		maxRetries: retries,
		retryDelay: time.Second,
		pacer:      c.pacer,
		logger:     logger,
	}
	if cfg.ArchiveDir != "" {
		c.archive = &archiver{dir: cfg.ArchiveDir}
	}

	c.pool = newVerifyPool(ctx, workers, c.verifier)
	defer c.pool.close()

	started := time.Now()
	c.frontier.push(c.normalizeURL(parsed.String()))
	c.run(ctx)
	finished := time.Now()

	report := &Report{
		Broken:      c.broken,
		External:    sortedSet(c.external),
		StartedAt:   started,
		FinishedAt:  finished,
		Interrupted: ctx.Err() != nil,
	}
	report.Stats = c.collectStats(finished.Sub(started))
	return report, nil
}

func (c *crawler) run(ctx context.Context) {
	for c.frontier.len() > 0 {
		if ctx.Err() != nil {
			return
		}
		pageURL := c.frontier.pop()
		c.visited[pageURL] = struct{}{}
		c.visitPage(ctx, pageURL)
	}
}

func (c *crawler) visitPage(ctx context.Context, pageURL string) {
	c.emitProgress(pageURL)
	c.stats.PagesVisited++

	body, contentType, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("page fetch failed", zap.String("url", pageURL), zap.Error(err))
		c.recordBroken(PageErrorOrigin, Outcome{URL: pageURL, Err: err.Error()})
		return
	}
	if !isHTML(contentType) {
		c.logger.Debug("skipping non-html page",
			zap.String("url", pageURL), zap.String("contentType", contentType))
		return
	}

	links, err := c.extract(pageURL, body)
	if err != nil {
		c.logger.Warn("link extraction failed", zap.String("url", pageURL), zap.Error(err))
		return
	}
	c.logger.Debug("extracted links", zap.String("url", pageURL), zap.Int("count", len(links)))

	if c.archive != nil {
		if err := c.archive.save(pageURL, body, len(links), time.Now()); err != nil {
			c.logger.Warn("archive write failed", zap.String("url", pageURL), zap.Error(err))
		}
	}

	batch := make([]string, 0, len(links))
	for _, link := range links {
		normalized := c.normalizeURL(link)
		if normalized == "" {
			continue
		}
		switch c.classify(normalized) {
		case verdictCrawl:
			if c.maxPages > 0 && len(c.visited)+c.frontier.len() >= c.maxPages {
				c.stats.SkippedByLimit++
			} else {
				c.frontier.push(normalized)
			}
			batch = append(batch, normalized)
		case verdictExternal:
			c.external[normalized] = struct{}{}
			batch = append(batch, normalized)
		case verdictIgnorePattern:
			c.stats.SkippedByIgnore++
		}
	}

	c.verifyBatch(ctx, pageURL, batch)
}

// verifyBatch checks every link discovered on origin and records the failed
// ones. Submission runs concurrently with collection so the bounded pool can
// never stall; the loop does not advance until the whole batch is in.
func (c *crawler) verifyBatch(ctx context.Context, origin string, links []string) {
	outcomes := make([]Outcome, 0, len(links))
	fresh := make([]string, 0, len(links))
	for _, link := range links {
		if outcome, ok := c.outcomes.get(link); ok {
			c.stats.VerifyCacheHits++
			outcomes = append(outcomes, outcome)
			continue
		}
		fresh = append(fresh, link)
	}

	go func() {
		for _, link := range fresh {
			if !c.pool.submit(ctx, link) {
				return
			}
		}
	}()

	for range fresh {
		outcome, ok := c.pool.collect(ctx)
		if !ok {
			break
		}
		c.outcomes.put(outcome)
		outcomes = append(outcomes, outcome)
	}

	for _, outcome := range outcomes {
		if ctx.Err() != nil {
			return
		}
		c.stats.LinksChecked++
		if outcome.Broken() {
			c.recordBroken(origin, outcome)
		}
	}
}

func (c *crawler) fetchPage(ctx context.Context, pageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)

	if err := c.pacer.wait(ctx); err != nil {
		return nil, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

func (c *crawler) emitProgress(u string) {
	if c.progress == nil {
		return
	}
	c.progress(u)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}
