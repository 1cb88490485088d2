package crawler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// archiver writes each fetched page as a markdown snapshot so an audit run
// leaves a reviewable copy of everything it visited.
type archiver struct {
	dir string
}

func (a *archiver) save(pageURL string, body []byte, linkCount int, fetchedAt time.Time) error {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return err
	}
	markdown, err := htmltomarkdown.ConvertString(string(body), converter.WithDomain(parsed.Host))
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	sum := sha256.Sum256([]byte(markdown))

	target := a.filePath(parsed)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.Grow(len(markdown) + 200)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "url: %s\n", pageURL)
	fmt.Fprintf(&b, "fetched_at: %s\n", fetchedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "content_sha256: %s\n", hex.EncodeToString(sum[:]))
	fmt.Fprintf(&b, "links: %d\n", linkCount)
	b.WriteString("---\n\n")
	b.WriteString(markdown)
	b.WriteString("\n")

	return os.WriteFile(target, []byte(b.String()), 0o644)
}

func (a *archiver) filePath(u *url.URL) string {
	segment := strings.Trim(u.EscapedPath(), "/")
	if segment == "" {
		segment = "index"
	}
	segment = strings.ReplaceAll(segment, "..", "_")
	return filepath.Join(a.dir, u.Host, filepath.FromSlash(segment)+".md")
}
