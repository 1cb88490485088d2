package crawler

import (
	"net/url"
	"path"
	"strings"
)

// normalizeURL returns the canonical form used as identity everywhere:
// fragment removed, scheme and host lowercased, path cleaned. Relative
// references are resolved against the seed. Non-http(s) URLs pass through
// with only the fragment stripped so the classifier can reject them by
// scheme. Unparseable input collapses to "".
func (c *crawler) normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !parsed.IsAbs() {
		parsed = c.start.ResolveReference(parsed)
	}
	parsed.Fragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		parsed.Host = strings.ToLower(parsed.Host)
		parsed.Path = cleanPath(parsed.Path)
	}
	return parsed.String()
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "/"
	}
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned
}
