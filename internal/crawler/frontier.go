package crawler

// frontier holds the pages queued for fetching. Pending order is kept in an
// explicit slice next to the membership set so duplicate pushes are rejected
// in O(1) without depending on map iteration order.
type frontier struct {
	pending []string
	member  map[string]struct{}
}

func newFrontier() *frontier {
	return &frontier{member: map[string]struct{}{}}
}

func (f *frontier) len() int { return len(f.pending) }

// push queues a target unless it is already pending. Callers are responsible
// for filtering out already-visited targets.
func (f *frontier) push(target string) bool {
	if target == "" {
		return false
	}
	if _, ok := f.member[target]; ok {
		return false
	}
	f.member[target] = struct{}{}
	f.pending = append(f.pending, target)
	return true
}

// pop removes and returns the most recently queued target. The choice is an
// implementation detail: callers must not rely on any visit order, only on
// the eventual fixed point of visited pages.
func (f *frontier) pop() string {
	last := len(f.pending) - 1
	target := f.pending[last]
	f.pending = f.pending[:last]
	delete(f.member, target)
	return target
}
