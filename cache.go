package quarry

import (
	"encoding/hex"
	"fmt"

	"github.com/TheBitDrifter/quarry/table"
)

var _ Cache[any] = &SimpleCache[any]{}

// SimpleCache is a bounded string-keyed cache handing out dense
// indices in registration order.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

// GetIndex returns the dense index registered for a key.
func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

// GetItem returns the item at a dense index.
func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// GetItem32 is GetItem for uint32 indices.
func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return &c.items[index]
}

// Register stores an item under a key, returning its dense index.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

// Clear drops every registration.
func (c *SimpleCache[T]) Clear() {
	c.items = c.items[:0]
	c.itemIndices = make(map[string]int)
}

// TypeResolver maps stable component GUIDs back to component ids, so
// external collaborators can match components across runs. Entries
// with a zero GUID are skipped.
type TypeResolver struct {
	cache Cache[table.ComponentID]
}

// NewTypeResolver indexes every GUID-carrying entry of the type table.
func NewTypeResolver(types *table.TypeTable) (*TypeResolver, error) {
	cache := FactoryNewCache[table.ComponentID](types.Len())
	for id := 0; id < types.Len(); id++ {
		cid := table.ComponentID(id)
		guid := types.Type(cid).GUID
		if guid == (table.GUID{}) {
			continue
		}
		if _, err := cache.Register(hex.EncodeToString(guid[:]), cid); err != nil {
			return nil, err
		}
	}
	return &TypeResolver{cache: cache}, nil
}

// Resolve returns the component id registered for a GUID.
func (r *TypeResolver) Resolve(guid table.GUID) (table.ComponentID, bool) {
	idx, ok := r.cache.GetIndex(hex.EncodeToString(guid[:]))
	if !ok {
		return table.InvalidComponentID, false
	}
	return *r.cache.GetItem(idx), true
}
