package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func resetCLI(t *testing.T) {
	t.Helper()
	old := cli
	t.Cleanup(func() { cli = old })
	cli.URL = "https://example.com/"
	cli.Config = ""
	cli.Workers = 0
	cli.Timeout = 0
	cli.Retries = nil
	cli.UserAgent = ""
	cli.AllDomains = false
	cli.Ignore = nil
	cli.MaxPages = 0
	cli.RequestsPerMinute = 0
	cli.ArchiveDir = ""
}

func TestBuildConfigLeavesDefaultsToCrawler(t *testing.T) {
	resetCLI(t)

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if cfg.StartURL != "https://example.com/" {
		t.Fatalf("unexpected start URL %q", cfg.StartURL)
	}
	if cfg.Workers != 0 || cfg.Timeout != 0 {
		t.Fatalf("expected zero values for crawler defaults, got %+v", cfg)
	}
	if cfg.MaxRetries != -1 {
		t.Fatalf("expected retry sentinel, got %d", cfg.MaxRetries)
	}
}

func TestBuildConfigMergesFileAndFlags(t *testing.T) {
	resetCLI(t)

	path := filepath.Join(t.TempDir(), "linkrot.yaml")
	content := `
workers: 8
timeout: 30
retries: 0
user_agent: audit-bot/2.0
ignore:
  - \.pdf$
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cli.Config = path
	cli.Workers = 3 // explicit flag wins over the file
	cli.Ignore = []string{`/drafts/`}

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if cfg.Workers != 3 {
		t.Fatalf("flag should override file, got %d workers", cfg.Workers)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 0 {
		t.Fatalf("expected retries 0 from file, got %d", cfg.MaxRetries)
	}
	if cfg.UserAgent != "audit-bot/2.0" {
		t.Fatalf("unexpected user agent %q", cfg.UserAgent)
	}
	if len(cfg.IgnorePatterns) != 2 {
		t.Fatalf("expected merged ignore patterns, got %d", len(cfg.IgnorePatterns))
	}
}

func TestBuildConfigRejectsBadPattern(t *testing.T) {
	resetCLI(t)
	cli.Ignore = []string{`(`}

	if _, err := buildConfig(); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}
