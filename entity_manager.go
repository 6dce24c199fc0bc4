package quarry

import "sync"

// EntityManager is the sole authority on which entity ids are alive.
// It owns the dense version array and the free-list of released ids.
// Create and Destroy serialize on the write lock; IsAlive and
// PeekNextID only take the read side.
type EntityManager struct {
	mu       sync.RWMutex
	versions []uint32
	free     []uint32
	alive    int
}

// NewEntityManager creates a manager pre-sized for the given entity
// capacity.
func NewEntityManager(capacity int) *EntityManager {
	return &EntityManager{
		versions: make([]uint32, 0, capacity),
		free:     make([]uint32, 0, capacity/4),
	}
}

// PeekNextID returns the id the next Create would claim without
// mutating any state.
func (m *EntityManager) PeekNextID() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n := len(m.free); n > 0 {
		return m.free[n-1]
	}
	return uint32(len(m.versions))
}

// Create claims an id from the free-list or extends it, returning a
// handle whose version is at least 1.
func (m *EntityManager) Create() Entity {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id uint32
	if n := len(m.free); n > 0 {
		id = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		id = uint32(len(m.versions))
		m.versions = append(m.versions, 1)
	}
	m.alive++
	return Entity{ID: id, Version: m.versions[id]}
}

// Destroy releases the entity's id back to the free-list, bumping its
// version so the handle goes stale. Versions skip 0 on wrap. Stale or
// invalid handles are a no-op returning false.
func (m *EntityManager) Destroy(e Entity) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.Version == 0 || int(e.ID) >= len(m.versions) || m.versions[e.ID] != e.Version {
		return false
	}
	m.versions[e.ID]++
	if m.versions[e.ID] == 0 {
		m.versions[e.ID] = 1
	}
	m.free = append(m.free, e.ID)
	m.alive--
	return true
}

// IsAlive reports whether the handle names a live entity.
func (m *EntityManager) IsAlive(e Entity) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return e.Version != 0 && int(e.ID) < len(m.versions) && m.versions[e.ID] == e.Version
}

// Alive returns the live entity count.
func (m *EntityManager) Alive() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.alive
}
