package auction

import "sync"

// itemLocks hands out one mutex per item id, created lazily on first use.
// The map itself is guarded so concurrent first bids on a new item race
// safely; locks are never removed because items live for the process
// lifetime. Locks on different items never contend.
type itemLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *itemLocks) forItem(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
