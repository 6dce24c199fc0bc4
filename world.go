package quarry

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// World orchestrates every entity and structural mutation on top of a
// shared registry. Structural changes serialize on structMu; read-only
// operations run concurrently with one another. The operation guard
// counts in-flight calls so Dispose can drain them before teardown.
//
// Readers are not blocked by structural changes: a reader racing a
// migration on another goroutine may observe the entity at either its
// pre- or post-migration location. Callers needing a stable view take
// a cursor, which read-locks the world.
type World struct {
	registry *Registry
	alloc    *chunk.Allocator
	types    *table.TypeTable
	cfg      Config

	entities  *EntityManager
	directory atomic.Pointer[[]EntityLocation]

	structMu  sync.Mutex
	stores    sync.Map // int32 -> *table.Store
	guard     operationGuard
	readLocks atomic.Int32
	queue     operationQueue

	callbackMu sync.Mutex
	callbacks  map[uint32]DestroyCallback
}

// operationGuard counts in-flight operations for graceful shutdown.
type operationGuard struct {
	ops      atomic.Int64
	disposed atomic.Bool
}

func (g *operationGuard) enter() error {
	if g.disposed.Load() {
		return DisposedError{}
	}
	g.ops.Add(1)
	if g.disposed.Load() {
		g.ops.Add(-1)
		return DisposedError{}
	}
	return nil
}

func (g *operationGuard) exit() { g.ops.Add(-1) }

func (g *operationGuard) drain() {
	g.disposed.Store(true)
	for g.ops.Load() != 0 {
		runtime.Gosched()
	}
}

func newWorld(r *Registry) *World {
	w := &World{
		registry:  r,
		alloc:     r.Allocator(),
		types:     r.Types(),
		cfg:       r.Config(),
		entities:  NewEntityManager(r.Config().DefaultEntityCapacity),
		callbacks: make(map[uint32]DestroyCallback),
	}
	dir := make([]EntityLocation, 0, r.Config().DefaultEntityCapacity)
	w.directory.Store(&dir)
	return w
}

// Registry returns the shared metadata this world was built on.
func (w *World) Registry() *Registry { return w.registry }

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int { return w.entities.Alive() }

// Locked reports whether active cursors hold the world's read lock.
func (w *World) Locked() bool { return w.readLocks.Load() != 0 }

// Spawn creates a fresh entity. Its location stays unplaced until a
// component is added.
func (w *World) Spawn() (Entity, error) {
	if err := w.guard.enter(); err != nil {
		return Entity{}, err
	}
	defer w.guard.exit()

	w.structMu.Lock()
	defer w.structMu.Unlock()

	if uint64(w.entities.PeekNextID()) > w.cfg.EntityIDLimit() {
		return Entity{}, EntityIdExceedsLimitError{Limit: w.cfg.EntityIDLimit()}
	}
	e := w.entities.Create()
	w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: NoArchetype, Index: -1})
	return e, nil
}

// Despawn destroys the entity, removing it from its archetype if it is
// placed. Stale or invalid handles return false without error.
func (w *World) Despawn(e Entity) (bool, error) {
	if err := w.guard.enter(); err != nil {
		return false, err
	}
	defer w.guard.exit()

	if w.Locked() {
		return false, LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()
	return w.despawnLocked(e)
}

func (w *World) despawnLocked(e Entity) (bool, error) {
	loc := w.location(e.ID)
	if !e.Valid() || loc.Version != e.Version || !w.entities.IsAlive(e) {
		return false, nil
	}

	if loc.Placed() {
		w.removeFromStore(loc.Archetype, int(loc.Index))
	}
	w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: NoArchetype, Index: -1})
	w.entities.Destroy(e)

	w.callbackMu.Lock()
	cb := w.callbacks[e.ID]
	delete(w.callbacks, e.ID)
	w.callbackMu.Unlock()
	if cb != nil {
		cb(e)
	}
	return true, nil
}

// IsAlive reports whether the handle names a live entity.
func (w *World) IsAlive(e Entity) (bool, error) {
	if err := w.guard.enter(); err != nil {
		return false, err
	}
	defer w.guard.exit()
	return w.entities.IsAlive(e), nil
}

// SetDestroyCallback registers a callback invoked when the entity is
// despawned. Passing nil clears it. Callbacks run under the structural
// lock and must not perform structural operations themselves.
func (w *World) SetDestroyCallback(e Entity, cb DestroyCallback) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if err := w.validateAlive(e); err != nil {
		return err
	}
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	if cb == nil {
		delete(w.callbacks, e.ID)
		return nil
	}
	w.callbacks[e.ID] = cb
	return nil
}

// HasComponent reports whether the entity carries the component.
func (w *World) HasComponent(e Entity, c table.ComponentID) (bool, error) {
	if err := w.guard.enter(); err != nil {
		return false, err
	}
	defer w.guard.exit()

	if err := w.validateAlive(e); err != nil {
		return false, err
	}
	loc := w.location(e.ID)
	if !loc.Placed() {
		return false, nil
	}
	return w.registry.ArchetypeMask(loc.Archetype).Get(c.Bit()), nil
}

// componentBytes resolves the entity's value slice for one component
// and pins the owning chunk with a borrow. The caller must release the
// returned handle. Tag components pin the chunk but return nil bytes.
//
// A structural change on another goroutine can relocate the entity (or
// free its chunk) between the directory read and the pin; the lookup
// re-resolves until it pins a live chunk for a current location.
func (w *World) componentBytes(e Entity, c table.ComponentID) ([]byte, chunk.Handle, error) {
	for {
		if err := w.validateAlive(e); err != nil {
			return nil, chunk.Handle{}, err
		}
		loc := w.location(e.ID)
		if !loc.Placed() || !w.registry.ArchetypeMask(loc.Archetype).Get(c.Bit()) {
			return nil, chunk.Handle{}, MissingComponentError{Entity: e, Component: c}
		}

		store := w.store(loc.Archetype)
		chunkIndex, _ := store.ChunkLocation(int(loc.Index))
		if chunkIndex >= store.ChunkCount() {
			continue
		}
		h := store.Chunk(chunkIndex)
		if !w.alloc.Acquire(h) {
			continue
		}
		return store.ComponentBytes(c, int(loc.Index)), h, nil
	}
}

// setComponentBytes overwrites the entity's value for a component it
// already carries. Not a structural change.
func (w *World) setComponentBytes(e Entity, c table.ComponentID, src []byte) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	dst, h, err := w.componentBytes(e, c)
	if err != nil {
		return err
	}
	defer w.alloc.Release(h)
	copy(dst, src)
	return nil
}

// addComponent performs the structural add of one component, writing
// the given bytes as its initial value (nil writes zeroes for non-tag
// components, which AllocateEntity already provides).
func (w *World) addComponent(e Entity, c table.ComponentID, src []byte) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if w.Locked() {
		return LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()
	return w.addComponentLocked(e, c, src)
}

func (w *World) addComponentLocked(e Entity, c table.ComponentID, src []byte) error {
	if err := w.validateAlive(e); err != nil {
		return err
	}
	loc := w.location(e.ID)

	if !loc.Placed() {
		var m mask.Mask
		m.Set(c.Bit())
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
		w.writeComponent(store, c, globalIndex, src)
		return nil
	}

	if w.registry.ArchetypeMask(loc.Archetype).Get(c.Bit()) {
		return DuplicateComponentError{Entity: e, Component: c}
	}
	tgt, err := w.registry.GetOrCreateWithAdd(loc.Archetype, c)
	if err != nil {
		return err
	}
	globalIndex, err := w.migrate(e, loc, tgt)
	if err != nil {
		return err
	}
	w.writeComponent(w.store(tgt), c, globalIndex, src)
	return nil
}

// removeComponent performs the structural remove of one component.
// Removing the last component transitions the entity to the unplaced
// state rather than an empty physical archetype.
func (w *World) removeComponent(e Entity, c table.ComponentID) error {
	if err := w.guard.enter(); err != nil {
		return err
	}
	defer w.guard.exit()

	if w.Locked() {
		return LockedWorldError{}
	}

	w.structMu.Lock()
	defer w.structMu.Unlock()
	return w.removeComponentLocked(e, c)
}

func (w *World) removeComponentLocked(e Entity, c table.ComponentID) error {
	if err := w.validateAlive(e); err != nil {
		return err
	}
	loc := w.location(e.ID)
	if !loc.Placed() {
		return MissingComponentError{Entity: e, Component: c}
	}
	srcMask := w.registry.ArchetypeMask(loc.Archetype)
	if !srcMask.Get(c.Bit()) {
		return MissingComponentError{Entity: e, Component: c}
	}

	if srcMask.Popcount() == 1 {
		w.removeFromStore(loc.Archetype, int(loc.Index))
		w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: NoArchetype, Index: -1})
		return nil
	}

	tgt, err := w.registry.GetOrCreateWithRemove(loc.Archetype, c)
	if err != nil {
		return err
	}
	_, err = w.migrate(e, loc, tgt)
	return err
}

// migrate moves an entity between archetypes per the structural
// migration protocol: allocate in the target, copy the shared
// components, swap-remove the source slot (fixing the moved entity's
// directory entry) and finally update the migrating entity's location.
// A failure before the swap-remove leaves the source unchanged; after
// it, the remaining steps cannot fail.
func (w *World) migrate(e Entity, src EntityLocation, tgtID int32) (int, error) {
	srcStore := w.store(src.Archetype)
	tgtStore := w.store(tgtID)

	shared := srcStore.Layout().Mask().And(tgtStore.Layout().Mask())

	tgtIndex, err := tgtStore.AllocateEntity(e.ID)
	if err != nil {
		return -1, err
	}

	srcIndex := int(src.Index)
	for bit := range shared.Bits() {
		c := table.ComponentID(bit)
		srcBytes := srcStore.ComponentBytes(c, srcIndex)
		if srcBytes == nil {
			continue
		}
		copy(tgtStore.ComponentBytes(c, tgtIndex), srcBytes)
	}

	if moved, swapped := srcStore.RemoveEntity(srcIndex); swapped {
		w.fixupMoved(moved, srcIndex)
	}
	w.setLocation(e.ID, EntityLocation{Version: e.Version, Archetype: tgtID, Index: int32(tgtIndex)})
	return tgtIndex, nil
}

// removeFromStore swap-removes a slot and patches the directory entry
// of whatever entity the tail row moved into it.
func (w *World) removeFromStore(archetypeID int32, globalIndex int) {
	store := w.store(archetypeID)
	if moved, swapped := store.RemoveEntity(globalIndex); swapped {
		w.fixupMoved(moved, globalIndex)
	}
}

// fixupMoved updates the directory's global index for an entity that a
// swap-remove relocated. Version and archetype stay untouched.
func (w *World) fixupMoved(movedID uint32, newIndex int) {
	dir := *w.directory.Load()
	if int(movedID) >= len(dir) {
		panic(bark.AddTrace(InvalidEntityHandleError{Entity: Entity{ID: movedID}}))
	}
	dir[movedID].Index = int32(newIndex)
}

// writeComponent copies src into the component's slot; nil src leaves
// the zeroed slot as the default value. Tags have no bytes to write.
func (w *World) writeComponent(store *table.Store, c table.ComponentID, globalIndex int, src []byte) {
	if src == nil {
		return
	}
	dst := store.ComponentBytes(c, globalIndex)
	if dst != nil {
		copy(dst, src)
	}
}

// store returns this world's store for the archetype, creating it
// lazily. Lookups are lock-free; racing creations reconcile through
// LoadOrStore so exactly one store survives per archetype.
func (w *World) store(archetypeID int32) *table.Store {
	if v, ok := w.stores.Load(archetypeID); ok {
		return v.(*table.Store)
	}
	s := table.NewStore(archetypeID, w.registry.ArchetypeLayout(archetypeID), w.alloc)
	actual, _ := w.stores.LoadOrStore(archetypeID, s)
	return actual.(*table.Store)
}

// storeIfExists returns the world's store for the archetype without
// creating one.
func (w *World) storeIfExists(archetypeID int32) *table.Store {
	if v, ok := w.stores.Load(archetypeID); ok {
		return v.(*table.Store)
	}
	return nil
}

// validateAlive distinguishes the invalid/stale/dead handle cases.
func (w *World) validateAlive(e Entity) error {
	if !e.Valid() {
		return InvalidEntityHandleError{Entity: e}
	}
	loc := w.location(e.ID)
	if loc.Version == 0 {
		return InvalidEntityHandleError{Entity: e}
	}
	if loc.Version != e.Version {
		return StaleEntityHandleError{Entity: e, Current: loc.Version}
	}
	if !w.entities.IsAlive(e) {
		return EntityNotAliveError{Entity: e}
	}
	return nil
}

// location reads the entity's directory slot; out-of-range ids read as
// the uninitialized location.
func (w *World) location(id uint32) EntityLocation {
	dir := *w.directory.Load()
	if int(id) < len(dir) {
		return dir[id]
	}
	return EntityLocation{}
}

// setLocation writes a directory slot, growing the directory to
// max(double, id+1) when the id is beyond capacity. Growth swaps in a
// fresh slice atomically so concurrent readers never observe a
// reallocating backing array. Caller must hold structMu.
func (w *World) setLocation(id uint32, loc EntityLocation) {
	dir := *w.directory.Load()
	if int(id) >= len(dir) {
		newLen := len(dir) * 2
		if newLen <= int(id) {
			newLen = int(id) + 1
		}
		grown := make([]EntityLocation, newLen)
		copy(grown, dir)
		w.directory.Store(&grown)
		dir = grown
	}
	dir[id] = loc
}

// Dispose drains in-flight operations, then resets every store, which
// releases the world's chunks except where a borrow still pins a
// store's tail chunk (see Store.Reset). The shared registry stays alive
// for other worlds.
func (w *World) Dispose() {
	w.guard.drain()
	w.structMu.Lock()
	defer w.structMu.Unlock()
	w.stores.Range(func(_, v any) bool {
		v.(*table.Store).Reset()
		return true
	})
}
