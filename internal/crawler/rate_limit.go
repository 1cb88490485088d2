package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer throttles all outgoing requests, page fetches and verification
// probes alike, to a requests-per-minute budget. The burst matches the
// worker count so a fresh pool does not stampede.
type pacer struct {
	limiter *rate.Limiter
}

func newPacer(requestsPerMinute, burst int) *pacer {
	if requestsPerMinute <= 0 {
		return &pacer{}
	}
	if burst < 1 {
		burst = 1
	}
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &pacer{limiter: rate.NewLimiter(rate.Every(interval), burst)}
}

func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
