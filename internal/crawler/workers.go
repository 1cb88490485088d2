package crawler

import (
	"context"
	"sync"
)

// verifyPool runs link verification on a fixed number of workers. Workers
// only ever read jobs and write outcomes; all bookkeeping stays with the
// coordinating loop.
type verifyPool struct {
	jobs    chan string
	results chan Outcome
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func newVerifyPool(ctx context.Context, workers int, v *verifier) *verifyPool {
	poolCtx, cancel := context.WithCancel(ctx)
	p := &verifyPool{
		jobs:    make(chan string),
		results: make(chan Outcome, workers),
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-poolCtx.Done():
					return
				case link := <-p.jobs:
					outcome := v.verify(poolCtx, link)
					select {
					case <-poolCtx.Done():
						return
					case p.results <- outcome:
					}
				}
			}
		}()
	}
	return p
}

// submit hands a link to the pool, returning false once ctx is cancelled.
func (p *verifyPool) submit(ctx context.Context, link string) bool {
	select {
	case <-ctx.Done():
		return false
	case p.jobs <- link:
		return true
	}
}

// collect returns one finished outcome, in completion order.
func (p *verifyPool) collect(ctx context.Context) (Outcome, bool) {
	select {
	case <-ctx.Done():
		return Outcome{}, false
	case outcome := <-p.results:
		return outcome, true
	}
}

// close stops the workers and waits for them to exit. In-flight
// verifications are abandoned; their outcomes are simply never collected.
func (p *verifyPool) close() {
	p.cancel()
	p.wg.Wait()
}
