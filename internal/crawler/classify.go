package crawler

import (
	"net/url"
	"strings"
)

// verdict is the classifier's decision for one discovered URL.
type verdict int

const (
	// verdictCrawl means the URL is an in-scope page: queue it for
	// fetching and verify it.
	verdictCrawl verdict = iota
	// verdictExternal means the URL is off-host: record it, verify it,
	// but never fetch it as a page.
	verdictExternal
	// verdictIgnoreScheme covers mailto:, tel:, javascript: and anything
	// else that is not http(s).
	verdictIgnoreScheme
	// verdictIgnoreVisited marks URLs already fetched as pages.
	verdictIgnoreVisited
	// verdictIgnorePattern marks URLs matching a configured ignore regexp.
	verdictIgnorePattern
)

// classify applies the filter rules in order, first match wins. It is a pure
// read of crawler state; recording an external URL is the caller's job so
// that repeated classification stays side-effect free.
func (c *crawler) classify(link string) verdict {
	parsed, err := url.Parse(link)
	if err != nil {
		return verdictIgnoreScheme
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return verdictIgnoreScheme
	}
	if _, seen := c.visited[link]; seen {
		return verdictIgnoreVisited
	}
	for _, pattern := range c.ignore {
		if pattern.MatchString(link) {
			return verdictIgnorePattern
		}
	}
	if !c.allDomains && !strings.EqualFold(parsed.Host, c.start.Host) {
		return verdictExternal
	}
	return verdictCrawl
}
