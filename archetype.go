package quarry

import (
	"sync/atomic"

	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// archetypeRecord is the shared, immutable description of one
// archetype: its interned component set, cached content hash and
// layout. Records are created once under the registry's create-lock
// and never destroyed, which keeps ids stable in edge and query
// caches.
type archetypeRecord struct {
	id     int32
	mask   mask.Mask
	hash   uint64
	layout *table.Layout
}

// Predicate is an immutable query predicate. A mask m matches iff
// m ⊇ All, (Any is empty or m ∩ Any ≠ ∅) and m ∩ None = ∅.
type Predicate struct {
	All  mask.Mask
	Any  mask.Mask
	None mask.Mask
}

// Matches applies the predicate to a component set.
func (p Predicate) Matches(m mask.Mask) bool {
	if !m.ContainsAll(p.All) {
		return false
	}
	if !p.Any.IsEmpty() && !m.ContainsAny(p.Any) {
		return false
	}
	return m.ContainsNone(p.None)
}

// queryRecord is one interned query: its predicate and the append-only
// list of matched archetype ids. The list is replaced copy-on-write by
// the create-lock holder and read through an atomic load, so readers
// iterate a consistent snapshot while appends continue.
type queryRecord struct {
	id      int32
	pred    Predicate
	matches atomic.Pointer[[]int32]
}

func newQueryRecord(id int32, pred Predicate, seed []int32) *queryRecord {
	q := &queryRecord{id: id, pred: pred}
	q.matches.Store(&seed)
	return q
}

// appendMatch publishes a new archetype id to the match list. Caller
// must hold the registry create-lock.
func (q *queryRecord) appendMatch(archetypeID int32) {
	old := *q.matches.Load()
	grown := make([]int32, len(old)+1)
	copy(grown, old)
	grown[len(old)] = archetypeID
	q.matches.Store(&grown)
}

// edgeKey identifies one cached transition in the archetype graph.
type edgeKey struct {
	src  int32
	comp table.ComponentID
	add  bool
}
