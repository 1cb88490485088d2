package crawler

// outcomeCache remembers verification outcomes for the lifetime of one run,
// so a link rediscovered from another page is not checked twice. Only the
// coordinating loop touches it; no locking needed.
type outcomeCache struct {
	byURL map[string]Outcome
}

func newOutcomeCache() *outcomeCache {
	return &outcomeCache{byURL: map[string]Outcome{}}
}

func (oc *outcomeCache) get(link string) (Outcome, bool) {
	outcome, ok := oc.byURL[link]
	return outcome, ok
}

func (oc *outcomeCache) put(outcome Outcome) {
	oc.byURL[outcome.URL] = outcome
}
