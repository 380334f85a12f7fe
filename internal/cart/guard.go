package cart

import "sync"

// AddGuard enforces the single-flight discipline callers owe the
// synchronizer: while an add for a product is outstanding, a second add for
// the same product is suppressed rather than queued. Suppression, not
// coalescing — the duplicate caller is told to do nothing at all, which is
// why this is not singleflight.Group.
type AddGuard struct {
	mu       sync.Mutex
	inflight map[string]bool
}

// NewAddGuard creates an empty guard.
func NewAddGuard() *AddGuard {
	return &AddGuard{inflight: make(map[string]bool)}
}

// Begin marks productID in flight. It returns false when an operation for
// that product is already outstanding; the caller must then skip its work
// and must not call End.
func (g *AddGuard) Begin(productID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[productID] {
		return false
	}
	g.inflight[productID] = true
	return true
}

// End releases productID. Call exactly once per successful Begin.
func (g *AddGuard) End(productID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, productID)
}
