package quarry

import (
	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// Writers combines component writers into one, letting a caller build
// an entity's full component set in a single structural operation.
func Writers(ws ...ComponentWriter) ComponentWriter {
	return writerSet(ws)
}

type writerSet []ComponentWriter

func (s writerSet) CollectTypes(m *mask.Mask) {
	for _, w := range s {
		w.CollectTypes(m)
	}
}

func (s writerSet) WriteComponents(alloc *chunk.Allocator, layout *table.Layout, h chunk.Handle, indexInChunk int) {
	for _, w := range s {
		w.WriteComponents(alloc, layout, h, indexInChunk)
	}
}

// CreateEntity spawns an entity and attaches the writer's whole
// component set in one shot, avoiding per-component migrations.
func (w *World) CreateEntity(writer ComponentWriter) (Entity, error) {
	if err := w.guard.enter(); err != nil {
		return Entity{}, err
	}
	defer w.guard.exit()

	if w.Locked() {
		return Entity{}, LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()

	if uint64(w.entities.PeekNextID()) > w.cfg.EntityIDLimit() {
		return Entity{}, EntityIdExceedsLimitError{Limit: w.cfg.EntityIDLimit()}
	}

	var m mask.Mask
	writer.CollectTypes(&m)

	e := w.entities.Create()
	w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: NoArchetype, Index: -1})
	if m.IsEmpty() {
		return e, nil
	}

	if err := w.placeAndWrite(e, m, writer); err != nil {
		// The entity stays alive but unplaced; the caller decides
		// whether to despawn it.
		return e, err
	}
	return e, nil
}

// Overwrite replaces the entity's entire component set with the
// writer's. Components absent from the writer are dropped; every
// written component starts from the writer's value.
func (w *World) Overwrite(e Entity, writer ComponentWriter) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if w.Locked() {
		return LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()

	if err := w.validateAlive(e); err != nil {
		return err
	}

	var m mask.Mask
	writer.CollectTypes(&m)

	loc := w.location(e.ID)
	if loc.Placed() {
		w.removeFromStore(loc.Archetype, int(loc.Index))
		w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: NoArchetype, Index: -1})
	}
	if m.IsEmpty() {
		return nil
	}
	return w.placeAndWrite(e, m, writer)
}

// AddComponents attaches the writer's whole component set in one
// migration. Overlap with the entity's current set fails with
// DuplicateComponentError.
func (w *World) AddComponents(e Entity, writer ComponentWriter) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if w.Locked() {
		return LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()

	if err := w.validateAlive(e); err != nil {
		return err
	}

	var added mask.Mask
	writer.CollectTypes(&added)
	if added.IsEmpty() {
		return nil
	}

	loc := w.location(e.ID)
	if !loc.Placed() {
		return w.placeAndWrite(e, added, writer)
	}

	current := w.registry.ArchetypeMask(loc.Archetype)
	if overlap := current.And(added); !overlap.IsEmpty() {
		return DuplicateComponentError{Entity: e, Component: table.ComponentID(overlap.FirstSet())}
	}

	tgt, _, err := w.registry.GetOrCreateArchetype(current.Or(added))
	if err != nil {
		return err
	}
	globalIndex, err := w.migrate(e, loc, tgt)
	if err != nil {
		return err
	}
	w.applyWriter(w.store(tgt), globalIndex, writer)
	return nil
}

// placeAndWrite interns the mask's archetype, allocates the entity's
// slot and runs the writer over it. Caller must hold structMu.
func (w *World) placeAndWrite(e Entity, m mask.Mask, writer ComponentWriter) error {
	tgt, _, err := w.registry.GetOrCreateArchetype(m)
	if err != nil {
		return err
	}
	store := w.store(tgt)
	globalIndex, err := store.AllocateEntity(e.ID)
	if err != nil {
		return err
	}
	w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: tgt, Index: int32(globalIndex)})
	w.applyWriter(store, globalIndex, writer)
	return nil
}

// applyWriter hands the writer the slot's chunk handle and layout.
func (w *World) applyWriter(store *table.Store, globalIndex int, writer ComponentWriter) {
	chunkIndex, indexInChunk := store.ChunkLocation(globalIndex)
	writer.WriteComponents(w.alloc, store.Layout(), store.Chunk(chunkIndex), indexInChunk)
}
