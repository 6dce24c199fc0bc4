package table

import (
	"github.com/TheBitDrifter/quarry/chunk"
)

// Store holds one archetype's entities: an ordered chunk list plus the
// occupied count. Slots are densely packed; only the last chunk may be
// partially filled. The store does not know about entity versions or
// directories, only raw entity ids.
type Store struct {
	id     int32
	layout *Layout
	alloc  *chunk.Allocator
	chunks []chunk.Handle
	count  int
}

// NewStore creates an empty store for one archetype.
func NewStore(id int32, layout *Layout, alloc *chunk.Allocator) *Store {
	return &Store{
		id:     id,
		layout: layout,
		alloc:  alloc,
	}
}

// ID returns the archetype id this store belongs to.
func (s *Store) ID() int32 { return s.id }

// Layout returns the store's layout.
func (s *Store) Layout() *Layout { return s.layout }

// Count returns the number of entities in the store.
func (s *Store) Count() int { return s.count }

// ChunkCount returns the number of chunks currently held.
func (s *Store) ChunkCount() int { return len(s.chunks) }

// Chunk returns the handle for the chunk at the given index.
func (s *Store) Chunk(chunkIndex int) chunk.Handle {
	return s.chunks[chunkIndex]
}

// ChunkLocation resolves a global index into (chunk index, index in
// chunk).
func (s *Store) ChunkLocation(globalIndex int) (int, int) {
	epc := s.layout.EntitiesPerChunk()
	return globalIndex / epc, globalIndex % epc
}

// GlobalIndex is the inverse of ChunkLocation.
func (s *Store) GlobalIndex(chunkIndex, indexInChunk int) int {
	return chunkIndex*s.layout.EntitiesPerChunk() + indexInChunk
}

// Occupied returns the number of filled slots in the chunk at the
// given index.
func (s *Store) Occupied(chunkIndex int) int {
	epc := s.layout.EntitiesPerChunk()
	remaining := s.count - chunkIndex*epc
	if remaining <= 0 {
		return 0
	}
	if remaining > epc {
		return epc
	}
	return remaining
}

// AllocateEntity appends a slot for the entity, pulling a fresh chunk
// from the allocator when the tail chunk is full. The slot's component
// bytes are zeroed and the entity id is written into the id region.
// The returned global index is one past the previously last slot.
func (s *Store) AllocateEntity(entityID uint32) (int, error) {
	globalIndex := s.count
	chunkIndex, indexInChunk := s.ChunkLocation(globalIndex)

	if chunkIndex == len(s.chunks) {
		h, err := s.alloc.Allocate()
		if err != nil {
			return -1, err
		}
		s.chunks = append(s.chunks, h)
	}

	buf := s.alloc.Bytes(s.chunks[chunkIndex])
	s.zeroRow(buf, indexInChunk)
	s.layout.PutEntityID(buf, indexInChunk, entityID)
	s.count++
	return globalIndex, nil
}

// RemoveEntity swap-removes the slot at globalIndex. When the slot is
// not the last, the tail row (entity id plus every non-tag component)
// moves into the vacated slot and the moved entity's id is returned
// with swapped=true. Out-of-range indices are a no-op. An emptied tail
// chunk is freed eagerly.
func (s *Store) RemoveEntity(globalIndex int) (moved uint32, swapped bool) {
	if globalIndex < 0 || globalIndex >= s.count {
		return 0, false
	}
	last := s.count - 1
	if globalIndex != last {
		s.copyRow(last, globalIndex)
		dstChunk, dstIdx := s.ChunkLocation(globalIndex)
		buf := s.alloc.Bytes(s.chunks[dstChunk])
		moved = s.layout.EntityIDAt(buf, dstIdx)
		swapped = true
	}
	s.count--
	s.trim()
	return moved, swapped
}

// EntityIDAt returns the raw entity id stored at the global index.
func (s *Store) EntityIDAt(globalIndex int) uint32 {
	chunkIndex, indexInChunk := s.ChunkLocation(globalIndex)
	buf := s.alloc.Bytes(s.chunks[chunkIndex])
	return s.layout.EntityIDAt(buf, indexInChunk)
}

// SetEntityIDAt overwrites the entity id stored at the global index.
func (s *Store) SetEntityIDAt(globalIndex int, entityID uint32) {
	chunkIndex, indexInChunk := s.ChunkLocation(globalIndex)
	buf := s.alloc.Bytes(s.chunks[chunkIndex])
	s.layout.PutEntityID(buf, indexInChunk, entityID)
}

// ComponentBytes returns the component's value slice for the entity at
// the global index. Tag components return nil.
func (s *Store) ComponentBytes(id ComponentID, globalIndex int) []byte {
	size := s.layout.Size(id)
	if size == 0 {
		return nil
	}
	chunkIndex, indexInChunk := s.ChunkLocation(globalIndex)
	buf := s.alloc.Bytes(s.chunks[chunkIndex])
	off := s.layout.Offset(id, indexInChunk)
	return buf[off : off+size]
}

// copyRow copies the full row (entity id and every non-tag component)
// from one global index to another within the store.
func (s *Store) copyRow(srcGlobal, dstGlobal int) {
	srcChunk, srcIdx := s.ChunkLocation(srcGlobal)
	dstChunk, dstIdx := s.ChunkLocation(dstGlobal)
	srcBuf := s.alloc.Bytes(s.chunks[srcChunk])
	dstBuf := s.alloc.Bytes(s.chunks[dstChunk])

	id := s.layout.EntityIDAt(srcBuf, srcIdx)
	s.layout.PutEntityID(dstBuf, dstIdx, id)

	for bit := range s.layout.Mask().Bits() {
		cid := ComponentID(bit)
		size := s.layout.Size(cid)
		if size == 0 {
			continue
		}
		srcOff := s.layout.Offset(cid, srcIdx)
		dstOff := s.layout.Offset(cid, dstIdx)
		copy(dstBuf[dstOff:dstOff+size], srcBuf[srcOff:srcOff+size])
	}
}

// zeroRow clears the entity id and every non-tag component slot at the
// given in-chunk index. Reused chunks retained by a deferred trim may
// carry stale bytes, so fresh slots are always scrubbed.
func (s *Store) zeroRow(buf []byte, indexInChunk int) {
	s.layout.PutEntityID(buf, indexInChunk, 0)
	for bit := range s.layout.Mask().Bits() {
		cid := ComponentID(bit)
		size := s.layout.Size(cid)
		if size == 0 {
			continue
		}
		off := s.layout.Offset(cid, indexInChunk)
		clear(buf[off : off+size])
	}
}

// trim frees tail chunks that no longer hold entities. A chunk pinned
// by an outstanding borrow is kept and reused by the next allocation.
func (s *Store) trim() {
	epc := s.layout.EntitiesPerChunk()
	needed := (s.count + epc - 1) / epc
	for len(s.chunks) > needed {
		tail := s.chunks[len(s.chunks)-1]
		if err := s.alloc.Free(tail); err != nil {
			return
		}
		s.chunks = s.chunks[:len(s.chunks)-1]
	}
}

// Reset removes every entity and releases chunks from the tail down,
// stopping at the first chunk still pinned by a borrow; that chunk and
// every chunk before it stay in the store. Used by world teardown.
func (s *Store) Reset() {
	s.count = 0
	s.trim()
}
