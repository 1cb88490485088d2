package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"linkrot/internal/crawler"
)

// fileConfig mirrors the flag set for YAML config files. Explicit flags win
// over file values; whatever neither provides is defaulted inside
// crawler.Crawl.
type fileConfig struct {
	Workers           int      `yaml:"workers"`
	Timeout           int      `yaml:"timeout"`
	Retries           *int     `yaml:"retries"`
	UserAgent         string   `yaml:"user_agent"`
	AllDomains        bool     `yaml:"all_domains"`
	Ignore            []string `yaml:"ignore"`
	MaxPages          int      `yaml:"max_pages"`
	RequestsPerMinute int      `yaml:"requests_per_minute"`
	ArchiveDir        string   `yaml:"archive_dir"`
}

func buildConfig() (crawler.Config, error) {
	var file fileConfig
	if cli.Config != "" {
		data, err := os.ReadFile(cli.Config)
		if err != nil {
			return crawler.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return crawler.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := crawler.Config{
		StartURL:          cli.URL,
		Workers:           pickInt(cli.Workers, file.Workers),
		Timeout:           time.Duration(pickInt(cli.Timeout, file.Timeout)) * time.Second,
		MaxRetries:        -1,
		UserAgent:         pickString(cli.UserAgent, file.UserAgent),
		AllDomains:        cli.AllDomains || file.AllDomains,
		MaxPages:          pickInt(cli.MaxPages, file.MaxPages),
		RequestsPerMinute: pickInt(cli.RequestsPerMinute, file.RequestsPerMinute),
		ArchiveDir:        pickString(cli.ArchiveDir, file.ArchiveDir),
	}
	if cli.Retries != nil {
		cfg.MaxRetries = *cli.Retries
	} else if file.Retries != nil {
		cfg.MaxRetries = *file.Retries
	}

	patterns := make([]string, 0, len(file.Ignore)+len(cli.Ignore))
	patterns = append(patterns, file.Ignore...)
	patterns = append(patterns, cli.Ignore...)
	for _, raw := range patterns {
		compiled, err := regexp.Compile(raw)
		if err != nil {
			return crawler.Config{}, fmt.Errorf("invalid ignore pattern %q: %w", raw, err)
		}
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, compiled)
	}
	return cfg, nil
}

func pickInt(flag, file int) int {
	if flag != 0 {
		return flag
	}
	return file
}

func pickString(flag, file string) string {
	if flag != "" {
		return flag
	}
	return file
}

func newLogger(verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
