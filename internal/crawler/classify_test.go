package crawler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClassifier(t *testing.T, seed string) *crawler {
	t.Helper()
	parsed, err := url.Parse(seed)
	require.NoError(t, err)
	return &crawler{
		start:    parsed,
		visited:  map[string]struct{}{},
		external: map[string]struct{}{},
	}
}

func TestClassifyRejectsNonHTTPSchemes(t *testing.T) {
	t.Parallel()

	c := testClassifier(t, "https://example.com/")
	for _, link := range []string{
		"mailto:team@example.com",
		"tel:+15551234567",
		"javascript:void(0)",
		"ftp://example.com/archive.tar",
		"://not-a-url",
	} {
		require.Equal(t, verdictIgnoreScheme, c.classify(link), "link %q", link)
	}
}

func TestClassifyVisitedWinsOverEverything(t *testing.T) {
	t.Parallel()

	c := testClassifier(t, "https://example.com/")
	c.ignore = mustPatterns(t, `archive`)
	c.visited["https://other.com/archive"] = struct{}{}

	// Visited is checked before both the ignore patterns and the domain
	// scope, so neither applies here.
	require.Equal(t, verdictIgnoreVisited, c.classify("https://other.com/archive"))
}

func TestClassifyIgnorePatterns(t *testing.T) {
	t.Parallel()

	c := testClassifier(t, "https://example.com/")
	c.ignore = mustPatterns(t, `\.pdf$`, `/drafts/`)

	require.Equal(t, verdictIgnorePattern, c.classify("https://example.com/spec.pdf"))
	require.Equal(t, verdictIgnorePattern, c.classify("https://example.com/drafts/wip"))
	require.Equal(t, verdictCrawl, c.classify("https://example.com/final"))
}

func TestClassifyDomainScope(t *testing.T) {
	t.Parallel()

	c := testClassifier(t, "https://example.com/")
	require.Equal(t, verdictExternal, c.classify("https://other.com/page"))
	require.Equal(t, verdictCrawl, c.classify("https://EXAMPLE.com/page"))

	c.allDomains = true
	require.Equal(t, verdictCrawl, c.classify("https://other.com/page"))
}

func TestExternalRecordingIsIdempotent(t *testing.T) {
	t.Parallel()

	c := testClassifier(t, "https://example.com/")
	link := "https://other.com/page"
	for i := 0; i < 2; i++ {
		require.Equal(t, verdictExternal, c.classify(link))
		c.external[link] = struct{}{}
	}
	require.Len(t, c.external, 1)
}
