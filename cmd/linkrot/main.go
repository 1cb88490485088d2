package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"linkrot/internal/crawler"
	"linkrot/internal/report"
)

var cli struct {
	URL string `arg:"" help:"URL to start crawling from."`

	Config            string   `help:"Path to a YAML config file." type:"existingfile"`
	Workers           int      `help:"Maximum number of concurrent link checks (default 5)."`
	Timeout           int      `help:"Request timeout in seconds (default 10)."`
	Retries           *int     `help:"Times to retry failed requests (default 2)."`
	UserAgent         string   `name:"user-agent" help:"Custom User-Agent header."`
	AllDomains        bool     `help:"Check links on all domains, not just the starting domain."`
	Ignore            []string `help:"Regex pattern for URLs to ignore; repeatable."`
	MaxPages          int      `name:"max-pages" help:"Stop queueing new pages after this many (0 = unlimited)."`
	RequestsPerMinute int      `name:"requests-per-minute" help:"Throttle outgoing requests (0 = unthrottled)."`
	ArchiveDir        string   `name:"archive-dir" type:"path" help:"Write a markdown snapshot of every fetched page into this directory."`
	Output            string   `short:"o" type:"path" help:"Save the report to a file instead of printing it."`
	Verbose           bool     `short:"v" help:"Enable debug logging."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("linkrot"),
		kong.Description("Crawl a website and report broken links."),
		kong.UsageOnError(),
	)

	cfg, err := buildConfig()
	kctx.FatalIfErrorf(err)

	logger := newLogger(cli.Verbose)
	defer func() { _ = logger.Sync() }()
	cfg.Logger = logger
	cfg.Progress = func(u string) { fmt.Fprintf(os.Stderr, "Checking: %s\n", u) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Starting link check from: %s\n", cfg.StartURL)
	result, err := crawler.Crawl(ctx, cfg)
	kctx.FatalIfErrorf(err)

	if result.Interrupted {
		fmt.Fprintln(os.Stderr, "Crawl interrupted by user.")
	}
	report.Write(os.Stdout, report.Render(result), cli.Output)
}
