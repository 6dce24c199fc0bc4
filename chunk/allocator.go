package chunk

import (
	"sync"
	"sync/atomic"
)

// Handle is a generational reference to one chunk slot. A handle is
// valid only while its version matches the slot's current version;
// freeing a slot bumps the version and strands every prior handle.
type Handle struct {
	Slot    uint32
	Version uint32
}

// Valid reports whether the handle could ever refer to a slot.
// Version 0 is reserved for the zero Handle.
func (h Handle) Valid() bool { return h.Version != 0 }

// slot is one fixed-size buffer with its generation and borrow count.
// Slots are heap-allocated and never move, so buffers stay valid while
// the slot table itself grows.
type slot struct {
	data    []byte
	version atomic.Uint32
	borrows atomic.Int32
	free    bool
}

// Allocator is a pool of fixed-size chunks addressed by generational
// handles. Allocate and Free serialize on an internal mutex; Bytes,
// Acquire and Release run concurrently with them and with one another.
type Allocator struct {
	mu        sync.Mutex
	chunkSize int
	maxChunks int
	slots     atomic.Pointer[[]*slot]
	freeList  []uint32
	allocated int
}

// NewAllocator creates an allocator handing out zeroed buffers of
// chunkSize bytes, refusing to grow past maxChunks live slots.
func NewAllocator(chunkSize, maxChunks int) *Allocator {
	a := &Allocator{
		chunkSize: chunkSize,
		maxChunks: maxChunks,
	}
	empty := make([]*slot, 0, 16)
	a.slots.Store(&empty)
	return a
}

// ChunkSize returns the byte size of every chunk.
func (a *Allocator) ChunkSize() int { return a.chunkSize }

// Allocated returns the number of live chunks.
func (a *Allocator) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated
}

// Allocate returns a handle to a zero-initialized chunk, reusing a
// freed slot when one exists and growing the slot table otherwise.
func (a *Allocator) Allocate() (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.allocated >= a.maxChunks {
		return Handle{}, CapacityExceededError{Max: a.maxChunks}
	}
	a.allocated++

	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := (*a.slots.Load())[idx]
		clear(s.data)
		s.free = false
		return Handle{Slot: idx, Version: s.version.Load()}, nil
	}

	s := &slot{data: make([]byte, a.chunkSize)}
	s.version.Store(1)

	// Copy-on-write append keeps concurrent Bytes/Acquire callers off
	// a reallocating slice header.
	old := *a.slots.Load()
	grown := make([]*slot, len(old)+1)
	copy(grown, old)
	grown[len(old)] = s
	a.slots.Store(&grown)

	return Handle{Slot: uint32(len(old)), Version: 1}, nil
}

// Free releases the slot behind h. It fails with ChunkInUseError while
// the slot's borrow count is non-zero and with StaleHandleError when h
// no longer matches the slot.
func (a *Allocator) Free(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.slot(h.Slot)
	if s == nil || s.free || s.version.Load() != h.Version {
		return StaleHandleError{Handle: h}
	}
	if s.borrows.Load() != 0 {
		return ChunkInUseError{Handle: h, Borrows: int(s.borrows.Load())}
	}

	next := h.Version + 1
	if next == 0 {
		next = 1
	}
	s.version.Store(next)
	s.free = true
	a.freeList = append(a.freeList, h.Slot)
	a.allocated--
	return nil
}

// Acquire increments the slot's borrow count if h is current,
// preventing the chunk from being freed. It returns false for stale or
// invalid handles.
func (a *Allocator) Acquire(h Handle) bool {
	s := a.slot(h.Slot)
	if s == nil || s.version.Load() != h.Version {
		return false
	}
	s.borrows.Add(1)
	// A free may have slipped in between the version check and the
	// increment; re-check and back out if so.
	if s.version.Load() != h.Version {
		s.borrows.Add(-1)
		return false
	}
	return true
}

// Release decrements the borrow count taken by a successful Acquire.
func (a *Allocator) Release(h Handle) {
	if s := a.slot(h.Slot); s != nil {
		s.borrows.Add(-1)
	}
}

// Bytes returns the chunk's buffer, or nil for a stale handle. The
// buffer stays valid until the chunk is freed; callers that hold it
// across operations should pin the chunk with Acquire.
func (a *Allocator) Bytes(h Handle) []byte {
	s := a.slot(h.Slot)
	if s == nil || s.version.Load() != h.Version {
		return nil
	}
	return s.data
}

func (a *Allocator) slot(idx uint32) *slot {
	slots := *a.slots.Load()
	if int(idx) >= len(slots) {
		return nil
	}
	return slots[idx]
}
