package store

import "sync"

// guard serializes mutations of one component. Readers share the lock,
// writers hold it exclusively for the whole callback.
type guard struct {
	mu sync.RWMutex
}

func (g *guard) withWrite(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fn()
}

func (g *guard) withRead(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fn()
}
