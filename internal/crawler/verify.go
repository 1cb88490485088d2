package crawler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const markdownSuffix = ".md"

// verifier decides whether a single URL is reachable. It owns the retry and
// extension-fallback policy; transport errors never escape it.
type verifier struct {
	client     *http.Client
	userAgent  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	pacer      *pacer
	logger     *zap.Logger
}

// verify checks link with maxRetries+1 attempts. Each attempt walks the
// candidate list in order: a HEAD probe first, escalated to a GET when the
// probe reports an error status, because some servers reject HEAD outright.
// The first candidate resolving below 400 wins immediately. When every
// attempt is exhausted a final probe of the original URL decides between a
// dead status and an unreachable error.
func (v *verifier) verify(ctx context.Context, link string) Outcome {
	candidates := verifyCandidates(link)

	for attempt := 0; attempt <= v.maxRetries; attempt++ {
		for _, candidate := range candidates {
			status, err := v.probe(ctx, candidate)
			if err != nil {
				continue
			}
			if status >= 400 {
				status, err = v.fetchStatus(ctx, candidate)
				if err != nil {
					continue
				}
			}
			if status < 400 {
				return Outcome{URL: link, StatusCode: status}
			}
		}
		if attempt < v.maxRetries {
			if !sleep(ctx, v.retryDelay) {
				break
			}
		}
	}

	status, err := v.probe(ctx, link)
	if err != nil {
		v.logger.Debug("link unreachable", zap.String("url", link), zap.Error(err))
		return Outcome{URL: link, Err: err.Error()}
	}
	return Outcome{URL: link, StatusCode: status}
}

// verifyCandidates returns the URL variants to try for one link. Sites that
// migrate markdown documentation to rendered HTML leave .md links behind, so
// those get sibling variants; everything else is checked as-is.
func verifyCandidates(link string) []string {
	if !strings.HasSuffix(strings.ToLower(link), markdownSuffix) {
		return []string{link}
	}
	stripped := link[:len(link)-len(markdownSuffix)]
	return []string{link, stripped, stripped + ".html"}
}

// probe is a lightweight existence check that transfers no body.
func (v *verifier) probe(ctx context.Context, link string) (int, error) {
	return v.request(ctx, http.MethodHead, link)
}

// fetchStatus issues a GET but discards the body unread; only the status
// code matters and large broken pages must not be downloaded.
func (v *verifier) fetchStatus(ctx context.Context, link string) (int, error) {
	return v.request(ctx, http.MethodGet, link)
}

func (v *verifier) request(ctx context.Context, method, link string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, link, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", v.userAgent)
	req.Header.Set("Accept", acceptHeader)

	if err := v.pacer.wait(reqCtx); err != nil {
		return 0, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
