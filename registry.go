package quarry

import (
	"sync"
	"sync/atomic"

	"github.com/TheBitDrifter/quarry/chunk"
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// Registry is the shared archetype metadata hub: it interns component
// masks to archetype ids, owns every layout, caches add/remove edges
// of the archetype graph and maintains the per-query match lists. It
// also owns the chunk allocator shared by the worlds built on it.
//
// Readers never take the create-lock: the mask, edge and predicate
// maps support concurrent reads with single-writer inserts, and the
// archetype and query lists are replaced copy-on-write with atomic
// publication. Writers serialize on createMu.
type Registry struct {
	cfg   Config
	types *table.TypeTable
	alloc *chunk.Allocator

	createMu   sync.Mutex
	maskToID   sync.Map // mask.Mask -> int32
	edges      sync.Map // edgeKey -> int32
	predToID   sync.Map // Predicate -> int32
	archetypes atomic.Pointer[[]*archetypeRecord]
	queries    atomic.Pointer[[]*queryRecord]
	disposed   atomic.Bool
}

// newRegistry validates the config and builds an empty registry.
func newRegistry(cfg Config, types *table.TypeTable) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		cfg:   cfg,
		types: types,
		alloc: chunk.NewAllocator(cfg.ChunkSize, cfg.MaxChunks),
	}
	archetypes := make([]*archetypeRecord, 0, 16)
	queries := make([]*queryRecord, 0, 8)
	r.archetypes.Store(&archetypes)
	r.queries.Store(&queries)
	return r, nil
}

// Config returns the registry's configuration.
func (r *Registry) Config() Config { return r.cfg }

// Types returns the component type table.
func (r *Registry) Types() *table.TypeTable { return r.types }

// Allocator returns the shared chunk allocator.
func (r *Registry) Allocator() *chunk.Allocator { return r.alloc }

// ArchetypeCount returns the number of interned archetypes.
func (r *Registry) ArchetypeCount() int {
	return len(*r.archetypes.Load())
}

// ArchetypeID returns the interned id for a mask without creating
// anything.
func (r *Registry) ArchetypeID(m mask.Mask) (int32, bool) {
	if v, ok := r.maskToID.Load(m); ok {
		return v.(int32), true
	}
	return -1, false
}

// ArchetypeMask returns the component set of an interned archetype.
func (r *Registry) ArchetypeMask(id int32) mask.Mask {
	return (*r.archetypes.Load())[id].mask
}

// ArchetypeLayout returns the layout of an interned archetype.
func (r *Registry) ArchetypeLayout(id int32) *table.Layout {
	return (*r.archetypes.Load())[id].layout
}

// GetOrCreateArchetype interns the mask and returns its archetype id
// together with the ids of every query currently matching it. The
// fast path is lock-free; creation runs under the create-lock with a
// second lookup so racing writers agree on one id.
func (r *Registry) GetOrCreateArchetype(m mask.Mask) (int32, []int32, error) {
	if r.disposed.Load() {
		return -1, nil, DisposedError{}
	}
	if v, ok := r.maskToID.Load(m); ok {
		id := v.(int32)
		return id, r.matchedQueriesFor(m), nil
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if v, ok := r.maskToID.Load(m); ok {
		id := v.(int32)
		return id, r.matchedQueriesFor(m), nil
	}

	records := *r.archetypes.Load()
	id := int32(len(records))
	if int(id) >= r.cfg.MaxArchetypes {
		return -1, nil, ArchetypeIdLimitExceededError{Max: r.cfg.MaxArchetypes}
	}

	layout, err := table.NewLayout(m, r.types, r.cfg.ChunkSize, r.cfg.EntityIDWidth)
	if err != nil {
		return -1, nil, err
	}
	record := &archetypeRecord{id: id, mask: m, hash: m.Hash(), layout: layout}

	grown := make([]*archetypeRecord, len(records)+1)
	copy(grown, records)
	grown[len(records)] = record
	r.archetypes.Store(&grown)

	var matched []int32
	for _, q := range *r.queries.Load() {
		if q.pred.Matches(m) {
			q.appendMatch(id)
			matched = append(matched, q.id)
		}
	}

	// Publishing the mask mapping last makes the record and match
	// lists visible before any reader can resolve the id.
	r.maskToID.Store(m, id)
	return id, matched, nil
}

// GetOrCreateWithAdd returns the archetype reached from src by adding
// one component, consulting the edge cache first. On the slow path
// both the forward add edge and the reverse remove edge are cached.
func (r *Registry) GetOrCreateWithAdd(src int32, c table.ComponentID) (int32, error) {
	key := edgeKey{src: src, comp: c, add: true}
	if v, ok := r.edges.Load(key); ok {
		return v.(int32), nil
	}

	m := r.ArchetypeMask(src)
	m.Set(c.Bit())
	tgt, _, err := r.GetOrCreateArchetype(m)
	if err != nil {
		return -1, err
	}
	r.edges.Store(key, tgt)
	// src already containing c collapses the edge onto itself; the
	// reverse would then be wrong.
	if tgt != src {
		r.edges.Store(edgeKey{src: tgt, comp: c, add: false}, src)
	}
	return tgt, nil
}

// GetOrCreateWithRemove is the inverse of GetOrCreateWithAdd.
func (r *Registry) GetOrCreateWithRemove(src int32, c table.ComponentID) (int32, error) {
	key := edgeKey{src: src, comp: c, add: false}
	if v, ok := r.edges.Load(key); ok {
		return v.(int32), nil
	}

	m := r.ArchetypeMask(src)
	m.Clear(c.Bit())
	tgt, _, err := r.GetOrCreateArchetype(m)
	if err != nil {
		return -1, err
	}
	r.edges.Store(key, tgt)
	if tgt != src {
		r.edges.Store(edgeKey{src: tgt, comp: c, add: true}, src)
	}
	return tgt, nil
}

// GetOrCreateQuery interns the predicate. On first insertion every
// existing archetype is scanned once to seed the match list; afterward
// the list grows only through archetype-creation notifications.
func (r *Registry) GetOrCreateQuery(pred Predicate) (int32, error) {
	if r.disposed.Load() {
		return -1, DisposedError{}
	}
	if v, ok := r.predToID.Load(pred); ok {
		return v.(int32), nil
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if v, ok := r.predToID.Load(pred); ok {
		return v.(int32), nil
	}

	queries := *r.queries.Load()
	id := int32(len(queries))

	var seed []int32
	for _, rec := range *r.archetypes.Load() {
		if pred.Matches(rec.mask) {
			seed = append(seed, rec.id)
		}
	}
	record := newQueryRecord(id, pred, seed)

	grown := make([]*queryRecord, len(queries)+1)
	copy(grown, queries)
	grown[len(queries)] = record
	r.queries.Store(&grown)

	r.predToID.Store(pred, id)
	return id, nil
}

// MatchedArchetypeIDs returns the query's current match list. The
// returned slice is an immutable snapshot: appends publish a new slice,
// so holders may keep reading it while archetypes appear.
func (r *Registry) MatchedArchetypeIDs(queryID int32) []int32 {
	return *(*r.queries.Load())[queryID].matches.Load()
}

// matchedQueriesFor collects the ids of every query whose predicate
// matches the mask. Runs against the published query snapshot.
func (r *Registry) matchedQueriesFor(m mask.Mask) []int32 {
	var matched []int32
	for _, q := range *r.queries.Load() {
		if q.pred.Matches(m) {
			matched = append(matched, q.id)
		}
	}
	return matched
}

// Dispose marks the registry dead and releases every layout. Worlds
// built on the registry must be disposed first.
func (r *Registry) Dispose() {
	if r.disposed.Swap(true) {
		return
	}
	r.createMu.Lock()
	defer r.createMu.Unlock()
	for _, rec := range *r.archetypes.Load() {
		rec.layout.Release()
	}
}
