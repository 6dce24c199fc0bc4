package table

import (
	"encoding/binary"
	"sort"
	"sync/atomic"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/quarry/mask"
)

// Layout is the immutable struct-of-arrays offset table for one
// component set and one chunk size. It is a pure function of
// (mask, type table, chunk size, entity id width): equal inputs always
// produce identical layouts.
//
// Within a chunk, entity ids occupy a reserved region at offset 0 and
// each component occupies a contiguous array starting at its base
// offset. Arrays are ordered largest-alignment first, ties broken by
// ascending component id, so every base offset honors its component's
// alignment.
type Layout struct {
	componentMask    mask.Mask
	entitiesPerChunk int
	entityIDWidth    int
	chunkSize        int
	minID            ComponentID
	maxID            ComponentID
	offsets          []uint32 // indexed by ComponentID up to maxID
	sizes            []uint32
	released         atomic.Bool
}

// NewLayout computes the layout for the given component set.
// It fails with RowExceedsChunkError when even a single entity's row
// cannot fit in one chunk.
func NewLayout(m mask.Mask, types *TypeTable, chunkSize, entityIDWidth int) (*Layout, error) {
	l := &Layout{
		componentMask: m,
		entityIDWidth: entityIDWidth,
		chunkSize:     chunkSize,
		minID:         InvalidComponentID,
		maxID:         InvalidComponentID,
	}

	ids := make([]ComponentID, 0, m.Popcount())
	rowBytes := entityIDWidth
	for bit := range m.Bits() {
		id := ComponentID(bit)
		ids = append(ids, id)
		rowBytes += int(types.Size(id))
	}
	if len(ids) > 0 {
		l.minID = ids[0]
		l.maxID = ids[len(ids)-1]
		l.offsets = make([]uint32, l.maxID+1)
		l.sizes = make([]uint32, l.maxID+1)
		for _, id := range ids {
			l.sizes[id] = types.Size(id)
		}
	}

	// Placement order: largest alignment first, ascending id on ties.
	placed := make([]ComponentID, len(ids))
	copy(placed, ids)
	sort.SliceStable(placed, func(i, j int) bool {
		ai, aj := types.Type(placed[i]).Align, types.Type(placed[j]).Align
		if ai != aj {
			return ai > aj
		}
		return placed[i] < placed[j]
	})

	// The raw division gives the densest packing; alignment padding can
	// push the aligned layout past the chunk, in which case the count
	// backs off until everything fits.
	epc := chunkSize / rowBytes
	for ; epc > 0; epc-- {
		if l.place(placed, types, epc) {
			break
		}
	}
	if epc == 0 {
		return nil, RowExceedsChunkError{ChunkSize: chunkSize, RowBytes: rowBytes}
	}
	l.entitiesPerChunk = epc
	return l, nil
}

// place computes base offsets for the given entity count, reporting
// whether the aligned layout fits the chunk.
func (l *Layout) place(placed []ComponentID, types *TypeTable, epc int) bool {
	cur := l.entityIDWidth * epc
	for _, id := range placed {
		ct := types.Type(id)
		if ct.Size == 0 {
			l.offsets[id] = 0
			continue
		}
		if ct.Align > 1 {
			a := int(ct.Align)
			cur = (cur + a - 1) &^ (a - 1)
		}
		l.offsets[id] = uint32(cur)
		cur += int(ct.Size) * epc
	}
	return cur <= l.chunkSize
}

// Mask returns the component set this layout was built for.
func (l *Layout) Mask() mask.Mask {
	l.check()
	return l.componentMask
}

// Has reports whether the component is part of the layout.
func (l *Layout) Has(id ComponentID) bool {
	l.check()
	if id < 0 || uint32(id) >= mask.Capacity {
		return false
	}
	return l.componentMask.Get(uint32(id))
}

// BaseOffset returns the chunk byte offset of the component's array.
// Tag components report offset 0 and consume no bytes.
func (l *Layout) BaseOffset(id ComponentID) uint32 {
	l.check()
	return l.offsets[id]
}

// Offset returns the chunk byte offset of the component's value for
// the entity at the given in-chunk index.
func (l *Layout) Offset(id ComponentID, indexInChunk int) uint32 {
	l.check()
	return l.offsets[id] + uint32(indexInChunk)*l.sizes[id]
}

// Size returns the component's byte size within this layout.
func (l *Layout) Size(id ComponentID) uint32 {
	l.check()
	if id < 0 || int(id) >= len(l.sizes) {
		return 0
	}
	return l.sizes[id]
}

// EntitiesPerChunk returns how many entities one chunk holds.
func (l *Layout) EntitiesPerChunk() int {
	l.check()
	return l.entitiesPerChunk
}

// EntityIDWidth returns the byte width of stored entity ids.
func (l *Layout) EntityIDWidth() int {
	l.check()
	return l.entityIDWidth
}

// MinComponentID returns the lowest component id, or -1 for the empty
// layout.
func (l *Layout) MinComponentID() ComponentID {
	l.check()
	return l.minID
}

// MaxComponentID returns the highest component id, or -1 for the empty
// layout.
func (l *Layout) MaxComponentID() ComponentID {
	l.check()
	return l.maxID
}

// PutEntityID encodes an entity id into the chunk's id region at the
// given in-chunk index, little-endian at the configured width.
func (l *Layout) PutEntityID(buf []byte, indexInChunk int, entityID uint32) {
	l.check()
	off := indexInChunk * l.entityIDWidth
	switch l.entityIDWidth {
	case 1:
		buf[off] = byte(entityID)
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(entityID))
	default:
		binary.LittleEndian.PutUint32(buf[off:], entityID)
	}
}

// EntityIDAt decodes the entity id stored at the given in-chunk index.
func (l *Layout) EntityIDAt(buf []byte, indexInChunk int) uint32 {
	l.check()
	off := indexInChunk * l.entityIDWidth
	switch l.entityIDWidth {
	case 1:
		return uint32(buf[off])
	case 2:
		return uint32(binary.LittleEndian.Uint16(buf[off:]))
	default:
		return binary.LittleEndian.Uint32(buf[off:])
	}
}

// Release poisons the layout; any accessor use afterwards panics.
func (l *Layout) Release() {
	l.released.Store(true)
}

func (l *Layout) check() {
	if l.released.Load() {
		panic(bark.AddTrace(ReleasedLayoutError{}))
	}
}
