package quarry

import (
	"github.com/TheBitDrifter/quarry/mask"
	"github.com/TheBitDrifter/quarry/table"
)

// QueryBuilder accumulates an All/Any/None predicate. Builders are
// single-use; Build interns the predicate in the shared registry.
type QueryBuilder struct {
	all  mask.Mask
	any  mask.Mask
	none mask.Mask
}

// newQueryBuilder creates an empty builder.
func newQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// With requires every listed component.
func (b *QueryBuilder) With(items ...Identifiable) *QueryBuilder {
	for _, it := range items {
		b.all.Set(it.ID().Bit())
	}
	return b
}

// Without excludes archetypes carrying any listed component.
func (b *QueryBuilder) Without(items ...Identifiable) *QueryBuilder {
	for _, it := range items {
		b.none.Set(it.ID().Bit())
	}
	return b
}

// WithAny requires at least one of the listed components.
func (b *QueryBuilder) WithAny(items ...Identifiable) *QueryBuilder {
	for _, it := range items {
		b.any.Set(it.ID().Bit())
	}
	return b
}

// WithIDs is the id-based variant of With.
func (b *QueryBuilder) WithIDs(ids ...table.ComponentID) *QueryBuilder {
	for _, id := range ids {
		b.all.Set(id.Bit())
	}
	return b
}

// WithoutIDs is the id-based variant of Without.
func (b *QueryBuilder) WithoutIDs(ids ...table.ComponentID) *QueryBuilder {
	for _, id := range ids {
		b.none.Set(id.Bit())
	}
	return b
}

// WithAnyIDs is the id-based variant of WithAny.
func (b *QueryBuilder) WithAnyIDs(ids ...table.ComponentID) *QueryBuilder {
	for _, id := range ids {
		b.any.Set(id.Bit())
	}
	return b
}

// Predicate returns the accumulated predicate.
func (b *QueryBuilder) Predicate() Predicate {
	return Predicate{All: b.all, Any: b.any, None: b.none}
}

// Build interns the predicate and binds the query to a world.
func (b *QueryBuilder) Build(w *World) (*Query, error) {
	id, err := w.registry.GetOrCreateQuery(b.Predicate())
	if err != nil {
		return nil, err
	}
	return &Query{world: w, id: id}, nil
}

// Query is a built query: a dense id into the registry's match index
// plus the world whose stores it iterates.
type Query struct {
	world *World
	id    int32
}

// ID returns the dense query id.
func (q *Query) ID() int32 { return q.id }

// MatchedArchetypeIDs returns the current matched-archetype snapshot.
func (q *Query) MatchedArchetypeIDs() []int32 {
	return q.world.registry.MatchedArchetypeIDs(q.id)
}

// Count returns the number of entities currently matching in the
// query's world.
func (q *Query) Count() int {
	total := 0
	for _, id := range q.MatchedArchetypeIDs() {
		if s := q.world.storeIfExists(id); s != nil {
			total += s.Count()
		}
	}
	return total
}

// Cursor starts an iteration over the query's entities. The cursor
// read-locks the world until it is exhausted or Reset.
func (q *Query) Cursor() *Cursor {
	return newCursor(q)
}
