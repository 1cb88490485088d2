package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"linkrot/internal/crawler"
)

func sampleReport() *crawler.Report {
	return &crawler.Report{
		Broken: map[string][]crawler.BrokenLink{
			"https://example.com/": {
				{URL: "https://example.com/missing", Status: 404},
				{URL: "https://cdn.example.com/app.js", Err: "dial tcp: connection refused"},
			},
			crawler.PageErrorOrigin: {
				{URL: "https://example.com/down", Err: "timeout"},
			},
		},
		Stats: crawler.Stats{
			PagesVisited:  7,
			LinksChecked:  23,
			BrokenLinks:   3,
			ExternalLinks: 4,
		},
	}
}

func TestRenderListsBrokenLinks(t *testing.T) {
	t.Parallel()

	text := Render(sampleReport())
	for _, want := range []string{
		"BROKEN LINK REPORT",
		"Found 3 broken links across 2 pages.",
		"Page: https://example.com/",
		"- https://example.com/missing (Status: 404)",
		"- https://cdn.example.com/app.js (Error: dial tcp: connection refused)",
		"Pages that could not be fetched:",
		"- https://example.com/down (Error: timeout)",
		"Total URLs crawled: 7",
		"External links found: 4",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestRenderCleanReport(t *testing.T) {
	t.Parallel()

	r := &crawler.Report{Broken: map[string][]crawler.BrokenLink{}}
	text := Render(r)
	if !strings.Contains(text, "No broken links found!") {
		t.Fatalf("expected clean report message, got:\n%s", text)
	}

	r.Interrupted = true
	text = Render(r)
	if !strings.Contains(text, "interrupted") {
		t.Fatalf("expected interruption notice, got:\n%s", text)
	}
}

func TestWriteToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	var stdout bytes.Buffer
	Write(&stdout, "report body", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if string(data) != "report body" {
		t.Fatalf("unexpected file contents: %q", data)
	}
	if !strings.Contains(stdout.String(), "Report saved to") {
		t.Fatalf("expected confirmation on stdout, got %q", stdout.String())
	}
}

func TestWriteFallsBackToStdout(t *testing.T) {
	t.Parallel()

	// Parent directory does not exist, so the write must fail.
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	var stdout bytes.Buffer
	Write(&stdout, "report body", path)

	out := stdout.String()
	if !strings.Contains(out, "error saving report") {
		t.Fatalf("expected write error surfaced, got %q", out)
	}
	if !strings.Contains(out, "report body") {
		t.Fatalf("expected report delivered on stdout as fallback, got %q", out)
	}
}
