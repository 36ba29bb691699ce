// Package keymutex provides one mutex per key, e.g. per room code.
//
// Entries are reference counted and dropped once nobody holds or waits on them, so the map
// does not grow with every room ever created.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Mutex serializes work per key; different keys never contend on the same lock
type Mutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty keyed mutex
func New() *Mutex {
	return &Mutex{
		entries: make(map[string]*entry),
	}
}

// Lock blocks until the lock for key is held and returns the matching unlock func
func (m *Mutex) Lock(key string) func() {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			m.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(m.entries, key)
			}
			m.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or waited on
func (m *Mutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
