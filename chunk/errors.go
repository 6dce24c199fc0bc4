package chunk

import "fmt"

// CapacityExceededError is returned when allocating would exceed the
// configured chunk maximum.
type CapacityExceededError struct {
	Max int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("chunk allocator at maximum capacity (%d)", e.Max)
}

// ChunkInUseError is returned when freeing a chunk that still has
// outstanding borrows.
type ChunkInUseError struct {
	Handle  Handle
	Borrows int
}

func (e ChunkInUseError) Error() string {
	return fmt.Sprintf("chunk %d (version %d) has %d outstanding borrows", e.Handle.Slot, e.Handle.Version, e.Borrows)
}

// StaleHandleError is returned when an operation names a chunk that was
// already freed or never existed.
type StaleHandleError struct {
	Handle Handle
}

func (e StaleHandleError) Error() string {
	return fmt.Sprintf("stale chunk handle (slot %d, version %d)", e.Handle.Slot, e.Handle.Version)
}
