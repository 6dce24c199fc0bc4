package quarry

import "testing"

func TestEntityManagerCreateDestroy(t *testing.T) {
	m := NewEntityManager(8)

	if got := m.PeekNextID(); got != 0 {
		t.Fatalf("PeekNextID on empty manager = %d, want 0", got)
	}

	a := m.Create()
	b := m.Create()
	if a != (Entity{ID: 0, Version: 1}) || b != (Entity{ID: 1, Version: 1}) {
		t.Fatalf("fresh handles = %v, %v", a, b)
	}
	if m.Alive() != 2 {
		t.Fatalf("alive = %d, want 2", m.Alive())
	}
	if !m.IsAlive(a) || !m.IsAlive(b) {
		t.Fatal("fresh entities not alive")
	}

	if !m.Destroy(a) {
		t.Fatal("Destroy on live handle returned false")
	}
	if m.IsAlive(a) {
		t.Error("destroyed entity still alive")
	}
	if m.Alive() != 1 {
		t.Errorf("alive = %d, want 1", m.Alive())
	}

	// The freed id is next in line, with a bumped version.
	if got := m.PeekNextID(); got != a.ID {
		t.Errorf("PeekNextID = %d, want recycled %d", got, a.ID)
	}
	c := m.Create()
	if c.ID != a.ID {
		t.Errorf("reused id = %d, want %d", c.ID, a.ID)
	}
	if c.Version <= a.Version {
		t.Errorf("reused version %d not greater than %d", c.Version, a.Version)
	}
}

func TestEntityManagerStaleDestroy(t *testing.T) {
	m := NewEntityManager(4)
	e := m.Create()
	m.Destroy(e)

	tests := []struct {
		name   string
		handle Entity
	}{
		{"stale version", e},
		{"zero version", Entity{ID: e.ID, Version: 0}},
		{"unknown id", Entity{ID: 99, Version: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m.Destroy(tt.handle) {
				t.Error("Destroy on dead/invalid handle returned true")
			}
			if m.IsAlive(tt.handle) {
				t.Error("dead/invalid handle reported alive")
			}
		})
	}
	if m.Alive() != 0 {
		t.Errorf("alive = %d, want 0", m.Alive())
	}
}

func TestEntityManagerVersionSkipsZero(t *testing.T) {
	m := NewEntityManager(1)
	e := m.Create()

	// Force the version counter to the wrap boundary.
	m.mu.Lock()
	m.versions[e.ID] = ^uint32(0)
	m.mu.Unlock()

	if !m.Destroy(Entity{ID: e.ID, Version: ^uint32(0)}) {
		t.Fatal("Destroy at wrap boundary failed")
	}
	reused := m.Create()
	if reused.Version == 0 {
		t.Error("version 0 handed out after wrap")
	}
}
