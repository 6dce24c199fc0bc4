package quarry

import (
	"iter"

	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/table"
)

// Cursor walks a query's matched archetypes, then each archetype's
// chunks, then each chunk's occupied slots. The matched-archetype list
// is snapshotted at initialization: archetypes present then are all
// visited; ones appearing mid-iteration may or may not be.
//
// While a cursor is live it holds the world's read lock (structural
// mutations fail or queue) and pins its current chunk against freeing.
type Cursor struct {
	query *Query

	ids      []int32
	archIdx  int
	store    *table.Store
	layout   *table.Layout
	chunkIdx int
	occupied int
	slot     int

	chunkHandle chunk.Handle
	chunkBuf    []byte
	pinned      bool
	initialized bool
}

func newCursor(q *Query) *Cursor {
	return &Cursor{query: q, slot: -1}
}

// Next advances to the next entity, returning false when iteration is
// done. Exhaustion resets the cursor and releases its locks.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}

	for {
		if c.pinned {
			c.slot++
			if c.slot < c.occupied {
				return true
			}
			if c.nextChunk() {
				continue
			}
		}
		if !c.nextArchetype() {
			c.Reset()
			return false
		}
	}
}

// initialize snapshots the match list and takes the world read lock.
func (c *Cursor) initialize() {
	c.query.world.addLock()
	c.ids = c.query.MatchedArchetypeIDs()
	c.archIdx = 0
	c.store = nil
	c.initialized = true
}

// nextArchetype moves to the next matched archetype with entities in
// this world, leaving the cursor positioned before that archetype's
// first slot.
func (c *Cursor) nextArchetype() bool {
	c.unpin()
	for c.archIdx < len(c.ids) {
		id := c.ids[c.archIdx]
		c.archIdx++
		store := c.query.world.storeIfExists(id)
		if store == nil || store.Count() == 0 {
			continue
		}
		c.store = store
		c.layout = store.Layout()
		c.chunkIdx = -1
		if c.nextChunk() {
			return true
		}
	}
	c.store = nil
	return false
}

// nextChunk pins the archetype's next occupied chunk and positions the
// cursor before its first slot, releasing the previous pin.
func (c *Cursor) nextChunk() bool {
	c.unpin()
	for {
		c.chunkIdx++
		if c.chunkIdx >= c.store.ChunkCount() {
			return false
		}
		c.occupied = c.store.Occupied(c.chunkIdx)
		if c.occupied == 0 {
			return false
		}
		h := c.store.Chunk(c.chunkIdx)
		if !c.query.world.alloc.Acquire(h) {
			continue
		}
		c.chunkHandle = h
		c.chunkBuf = c.query.world.alloc.Bytes(h)
		c.pinned = true
		c.slot = -1
		return true
	}
}

func (c *Cursor) unpin() {
	if c.pinned {
		c.query.world.alloc.Release(c.chunkHandle)
		c.pinned = false
	}
	c.chunkBuf = nil
	c.slot = -1
}

// Reset clears iteration state and releases the read lock. A reset
// cursor can be reused from the start.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.unpin()
	c.ids = nil
	c.store = nil
	c.layout = nil
	c.initialized = false
	c.query.world.popLock()
}

// Entity returns the handle for the current slot, with its version
// resolved through the directory.
func (c *Cursor) Entity() Entity {
	id := c.layout.EntityIDAt(c.chunkBuf, c.slot)
	loc := c.query.world.location(id)
	return Entity{ID: id, Version: loc.Version}
}

// GlobalIndex returns the current entity's global index within its
// archetype.
func (c *Cursor) GlobalIndex() int {
	return c.store.GlobalIndex(c.chunkIdx, c.slot)
}

// ArchetypeID returns the current archetype's id.
func (c *Cursor) ArchetypeID() int32 {
	return c.store.ID()
}

// View returns the current chunk's column view: base slices plus
// strides, valid while the cursor stays on this chunk.
func (c *Cursor) View() View {
	return View{layout: c.layout, buf: c.chunkBuf, occupied: c.occupied}
}

// Entities iterates the remaining entities as (global index, view)
// pairs, releasing locks when the sequence completes.
func (c *Cursor) Entities() iter.Seq2[int, View] {
	return func(yield func(int, View) bool) {
		for c.Next() {
			if !yield(c.GlobalIndex(), c.View()) {
				c.Reset()
				return
			}
		}
	}
}

// componentSlot returns the byte slice for the component at the
// current slot; nil for tags and absent components.
func (c *Cursor) componentSlot(id table.ComponentID) []byte {
	if !c.hasComponent(id) {
		return nil
	}
	size := c.layout.Size(id)
	if size == 0 {
		return nil
	}
	off := c.layout.Offset(id, c.slot)
	return c.chunkBuf[off : off+size]
}

func (c *Cursor) hasComponent(id table.ComponentID) bool {
	return c.layout != nil && c.layout.Has(id)
}

// View exposes one chunk's component arrays for direct iteration:
// base slices and strides, never per-entity lookups.
type View struct {
	layout   *table.Layout
	buf      []byte
	occupied int
}

// Len returns the number of occupied slots in the viewed chunk.
func (v View) Len() int { return v.occupied }

// Column returns the component's packed array covering every occupied
// slot, or nil for tags and absent components.
func (v View) Column(id table.ComponentID) []byte {
	if v.layout == nil || !v.layout.Has(id) {
		return nil
	}
	size := v.layout.Size(id)
	if size == 0 {
		return nil
	}
	base := v.layout.BaseOffset(id)
	return v.buf[base : base+size*uint32(v.occupied)]
}

// Stride returns the byte stride of the component's array.
func (v View) Stride(id table.ComponentID) int {
	return int(v.layout.Size(id))
}

// EntityID returns the raw entity id at a slot.
func (v View) EntityID(slot int) uint32 {
	return v.layout.EntityIDAt(v.buf, slot)
}
