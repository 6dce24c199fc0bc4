package quarry

import (
	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// ComponentWriter is the sole boundary through which external
// generators inject typed data into the core. CollectTypes OR-sets
// every component id the writer carries; WriteComponents writes each
// component's bytes at the layout-computed offset for the slot.
type ComponentWriter interface {
	CollectTypes(m *mask.Mask)
	WriteComponents(alloc *chunk.Allocator, layout *table.Layout, h chunk.Handle, indexInChunk int)
}

// Identifiable is anything that names a component id; typed accessors
// implement it for the query-builder surface.
type Identifiable interface {
	ID() table.ComponentID
}

// Cache maps string keys to dense indices over a fixed capacity.
type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
}
