package quarry

// Entity is an opaque generational handle: a dense id plus a version
// distinguishing reuses of that id. Version 0 is reserved and never
// names a live entity.
type Entity struct {
	ID      uint32
	Version uint32
}

// Valid reports whether the handle could ever name a live entity.
func (e Entity) Valid() bool { return e.Version != 0 }

// NoArchetype marks an entity that is alive but carries no components
// and therefore lives in no physical archetype.
const NoArchetype int32 = -1

// EntityLocation is one entity-directory slot: the directory's version
// for the id, the archetype the entity occupies and its global index
// inside that archetype. Version 0 means the slot was never
// initialized; Archetype -1 means alive but unplaced.
type EntityLocation struct {
	Version   uint32
	Archetype int32
	Index     int32
}

// Placed reports whether the location names a physical archetype slot.
func (l EntityLocation) Placed() bool { return l.Archetype != NoArchetype }

// DestroyCallback is invoked when its entity is despawned.
type DestroyCallback func(Entity)
