// Package extract finds the URLs referenced by an HTML document. It is the
// crawler's only view of markup: everything else in the system works on the
// absolute URLs returned from here.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// refSelectors lists the element/attribute pairs that can point at another
// resource.
var refSelectors = []struct {
	query string
	attr  string
}{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"img[src]", "src"},
	{"script[src]", "src"},
	{"iframe[src]", "src"},
}

// Links returns the absolute URLs referenced by the document, deduplicated
// and with fragment identifiers stripped. Relative references are resolved
// against base. Scheme filtering is left to the caller; mailto: and friends
// come back as-is.
func Links(base string, r io.Reader) ([]string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || ref == "#" {
			return
		}
		parsed, err := url.Parse(ref)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(parsed)
		resolved.Fragment = ""
		flat := resolved.String()
		if flat == "" {
			return
		}
		if _, ok := seen[flat]; ok {
			return
		}
		seen[flat] = struct{}{}
		links = append(links, flat)
	}

	for _, sel := range refSelectors {
		doc.Find(sel.query).Each(func(_ int, s *goquery.Selection) {
			if value, ok := s.Attr(sel.attr); ok {
				add(value)
			}
		})
	}
	return links, nil
}
