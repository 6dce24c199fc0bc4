/*
Package quarry provides an archetype-based Entity-Component-System
core for games and simulations.

Entities carrying the same component set share an archetype, and each
archetype packs its component data into fixed-size chunks using a
struct-of-arrays layout for cache-friendly iteration. Archetype
metadata — interned component masks, chunk layouts, cached add/remove
edges and query match lists — lives in a Registry shared by every
World built on it.

Core Concepts:

  - Entity: a generational handle naming one game object.
  - Component: a data attribute, described by the component type table.
  - Archetype: the storage class of all entities with one component set.
  - Query: an All/Any/None predicate over component sets.

Basic Usage:

	// Describe components and build the shared metadata
	types := table.NewTypeTable([]table.ComponentType{
		{Size: 12, Align: 4}, // Position
		{Size: 12, Align: 4}, // Velocity
	})
	registry, _ := quarry.Factory.NewRegistry(quarry.DefaultConfig(), types)
	world := quarry.Factory.NewWorld(registry)

	position := quarry.FactoryNewAccessor[Position](0)
	velocity := quarry.FactoryNewAccessor[Velocity](1)

	// Create an entity with both components in one shot
	e, _ := world.CreateEntity(quarry.Writers(
		position.Write(Position{X: 1}),
		velocity.Write(Velocity{X: 2}),
	))

	// Query and iterate
	query, _ := quarry.Factory.NewQuery().With(position, velocity).Build(world)
	cursor := query.Cursor()
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
	}
	_ = e

Multiple goroutines may read a world concurrently; structural changes
serialize on the world's lock and may be enqueued while cursors are
active.
*/
package quarry
