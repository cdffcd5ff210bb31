package booking

import "sync"

// KeyedMutex provides one mutex per room category id so that concurrent
// admissions on the same category are serialized while different categories
// proceed in parallel.  Entries are reference-counted and removed once the
// last holder releases, so the map does not grow with the number of
// categories ever seen.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uint64]*lockEntry)}
}

// Lock acquires the mutex for key and returns the matching unlock function.
// The unlock function must be called exactly once, typically via defer.
func (k *KeyedMutex) Lock(key uint64) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
