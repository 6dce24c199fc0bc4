package quarry

import "github.com/TheBitDrifter/quarry/table"

// factory implements the factory pattern for quarry components.
type factory struct{}

// Factory is the global factory instance.
var Factory factory

// NewRegistry builds the shared archetype metadata hub and its chunk
// allocator from a validated config and component type table.
func (f factory) NewRegistry(cfg Config, types *table.TypeTable) (*Registry, error) {
	return newRegistry(cfg, types)
}

// NewWorld creates a world on top of a shared registry.
func (f factory) NewWorld(r *Registry) *World {
	return newWorld(r)
}

// NewQuery creates an empty query builder.
func (f factory) NewQuery() *QueryBuilder {
	return newQueryBuilder()
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
