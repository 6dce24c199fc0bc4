package quarry

import (
	"unsafe"

	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// Accessor binds a component id to its Go type, giving typed access on
// top of the byte-level core. Accessors are cheap values meant to be
// created once per component and shared.
type Accessor[T any] struct {
	id   table.ComponentID
	size uintptr
}

// FactoryNewAccessor creates the typed accessor for a component id.
func FactoryNewAccessor[T any](id table.ComponentID) Accessor[T] {
	var zero T
	return Accessor[T]{id: id, size: unsafe.Sizeof(zero)}
}

// ID returns the component id.
func (a Accessor[T]) ID() table.ComponentID { return a.id }

// Borrow is a typed reference into chunk memory. Holding it keeps the
// chunk from being freed; callers must Release it.
type Borrow[T any] struct {
	value  *T
	alloc  *chunk.Allocator
	handle chunk.Handle
	done   bool
}

// Value returns the borrowed component pointer.
func (b *Borrow[T]) Value() *T { return b.value }

// Release returns the chunk borrow. Safe to call more than once.
func (b *Borrow[T]) Release() {
	if b.done {
		return
	}
	b.done = true
	b.alloc.Release(b.handle)
}

// Get returns a borrow of the entity's component. Fails with
// MissingComponentError when the entity lacks it.
func (a Accessor[T]) Get(w *World, e Entity) (*Borrow[T], error) {
	if err := w.guard.enter(); err != nil {
		return nil, err
	}
	defer w.guard.exit()

	bytes, h, err := w.componentBytes(e, a.id)
	if err != nil {
		return nil, err
	}
	b := &Borrow[T]{alloc: w.alloc, handle: h}
	if len(bytes) > 0 {
		b.value = (*T)(unsafe.Pointer(&bytes[0]))
	}
	return b, nil
}

// GetValue returns a copy of the entity's component. The chunk borrow
// it takes is released before it returns.
func (a Accessor[T]) GetValue(w *World, e Entity) (T, error) {
	var out T
	b, err := a.Get(w, e)
	if err != nil {
		return out, err
	}
	defer b.Release()
	if b.value != nil {
		out = *b.value
	}
	return out, nil
}

// Set overwrites the entity's component value. The component must
// already be present.
func (a Accessor[T]) Set(w *World, e Entity, v T) error {
	return w.setComponentBytes(e, a.id, a.bytes(&v))
}

// Add attaches the component with the given initial value, migrating
// the entity to its new archetype.
func (a Accessor[T]) Add(w *World, e Entity, v T) error {
	return w.addComponent(e, a.id, a.bytes(&v))
}

// AddDefault attaches the component with a zero value.
func (a Accessor[T]) AddDefault(w *World, e Entity) error {
	return w.addComponent(e, a.id, nil)
}

// Remove detaches the component, migrating the entity along the
// reverse edge.
func (a Accessor[T]) Remove(w *World, e Entity) error {
	return w.removeComponent(e, a.id)
}

// Has reports whether the entity carries the component.
func (a Accessor[T]) Has(w *World, e Entity) (bool, error) {
	return w.HasComponent(e, a.id)
}

// GetFromCursor returns the component for the entity at the cursor
// position. The cursor's chunk pin keeps the pointer valid.
func (a Accessor[T]) GetFromCursor(c *Cursor) *T {
	bytes := c.componentSlot(a.id)
	if len(bytes) == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(&bytes[0]))
}

// CheckCursor reports whether the cursor's current archetype carries
// the component.
func (a Accessor[T]) CheckCursor(c *Cursor) bool {
	return c.hasComponent(a.id)
}

// GetFromCursorSafe combines CheckCursor and GetFromCursor.
func (a Accessor[T]) GetFromCursorSafe(c *Cursor) (bool, *T) {
	if !c.hasComponent(a.id) {
		return false, nil
	}
	return true, a.GetFromCursor(c)
}

// Write returns a ComponentWriter carrying the value, for the bulk
// CreateEntity/Overwrite/AddComponents paths.
func (a Accessor[T]) Write(v T) ComponentWriter {
	return &valueWriter[T]{accessor: a, value: v}
}

// EnqueueAdd adds the component immediately, or defers it while the
// world is locked by cursors.
func (a Accessor[T]) EnqueueAdd(w *World, e Entity, v T) error {
	return w.enqueueAdd(e, a.id, a.bytes(&v))
}

// EnqueueRemove removes the component immediately, or defers it while
// the world is locked by cursors.
func (a Accessor[T]) EnqueueRemove(w *World, e Entity) error {
	return w.enqueueRemove(e, a.id)
}

// bytes exposes the value's memory. Tags (size 0) have none.
func (a Accessor[T]) bytes(v *T) []byte {
	if a.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), a.size)
}

// valueWriter writes one typed value at the layout's offset.
type valueWriter[T any] struct {
	accessor Accessor[T]
	value    T
}

func (vw *valueWriter[T]) CollectTypes(m *mask.Mask) {
	m.Set(vw.accessor.id.Bit())
}

func (vw *valueWriter[T]) WriteComponents(alloc *chunk.Allocator, layout *table.Layout, h chunk.Handle, indexInChunk int) {
	if vw.accessor.size == 0 {
		return
	}
	buf := alloc.Bytes(h)
	off := layout.Offset(vw.accessor.id, indexInChunk)
	copy(buf[off:off+uint32(vw.accessor.size)], vw.accessor.bytes(&vw.value))
}
