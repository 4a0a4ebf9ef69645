package mechanics

import "sync"

// Cache holds the latest Mechanics per machine id.
//
// Invalidation contract: a scramble changes rotor and plugboard state, so the
// caller must Invalidate (or Create over) the machine's entry before any
// further lookup. Get never rebuilds anything on its own.
//
// Thread-safety: all methods are safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Mechanics
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Mechanics)}
}

// Create registers and returns a fresh, empty Mechanics for machineID,
// replacing whatever was cached before.
func (c *Cache) Create(machineID string) *Mechanics {
	m := New(machineID)
	c.mu.Lock()
	c.entries[machineID] = m
	c.mu.Unlock()
	return m
}

// Put publishes a fully built Mechanics under its machine id, replacing
// whatever was cached before. m must not be modified afterwards.
func (c *Cache) Put(m *Mechanics) {
	c.mu.Lock()
	c.entries[m.Machine] = m
	c.mu.Unlock()
}

// Get returns the cached Mechanics for machineID.
// Returns ErrNoMechanics if nothing is cached.
func (c *Cache) Get(machineID string) (*Mechanics, error) {
	c.mu.RLock()
	m, ok := c.entries[machineID]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNoMechanics
	}
	return m, nil
}

// Invalidate drops the cached Mechanics for machineID. Safe to call when
// nothing is cached.
func (c *Cache) Invalidate(machineID string) {
	c.mu.Lock()
	delete(c.entries, machineID)
	c.mu.Unlock()
}

// Len returns the number of cached machines.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
