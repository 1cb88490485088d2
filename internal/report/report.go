// Package report renders a crawl report as text and delivers it to its
// destination.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"linkrot/internal/crawler"
)

var (
	banner  = strings.Repeat("=", 80)
	divider = strings.Repeat("-", 80)
)

// Render formats the report the way the CLI presents it.
func Render(r *crawler.Report) string {
	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("BROKEN LINK REPORT\n")
	b.WriteString(banner + "\n")
	if r.Interrupted {
		b.WriteString("Crawl was interrupted; results are partial.\n")
	}

	if len(r.Broken) == 0 {
		b.WriteString("No broken links found!\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d broken links across %d pages.\n\n",
		r.Stats.BrokenLinks, len(r.Broken))

	for _, page := range sortedPages(r.Broken) {
		if page == crawler.PageErrorOrigin {
			b.WriteString("Pages that could not be fetched:\n")
		} else {
			fmt.Fprintf(&b, "Page: %s\n", page)
		}
		for _, link := range r.Broken[page] {
			if link.Err != "" {
				fmt.Fprintf(&b, "  - %s (Error: %s)\n", link.URL, link.Err)
			} else {
				fmt.Fprintf(&b, "  - %s (Status: %d)\n", link.URL, link.Status)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Total URLs crawled: %d\n", r.Stats.PagesVisited)
	fmt.Fprintf(&b, "External links found: %d\n", r.Stats.ExternalLinks)
	fmt.Fprintf(&b, "Links checked: %d\n", r.Stats.LinksChecked)
	b.WriteString(divider + "\n")
	return b.String()
}

func sortedPages(broken map[string][]crawler.BrokenLink) []string {
	pages := make([]string, 0, len(broken))
	for page := range broken {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// Write delivers the rendered text. With a path it writes the file and
// confirms on stdout; when the file cannot be written the error is surfaced
// and the report falls back to stdout so it is never lost.
func Write(stdout io.Writer, text, path string) {
	if path == "" {
		fmt.Fprintln(stdout, text)
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		fmt.Fprintf(stdout, "error saving report to %s: %v\n", path, err)
		fmt.Fprintln(stdout, text)
		return
	}
	fmt.Fprintf(stdout, "Report saved to %s\n", path)
}
