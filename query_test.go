package quarry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// spawnWith creates count entities carrying the given writers.
func spawnWith(t *testing.T, w *World, count int, writer ComponentWriter) []Entity {
	t.Helper()
	out := make([]Entity, count)
	for i := range out {
		e, err := w.CreateEntity(writer)
		require.NoError(t, err)
		out[i] = e
	}
	return out
}

func TestQueryFiltering(t *testing.T) {
	tests := []struct {
		name    string
		build   func(f *fixture) *QueryBuilder
		want    int
	}{
		{
			name:  "with matches supersets",
			build: func(f *fixture) *QueryBuilder { return Factory.NewQuery().With(f.position) },
			want:  15, // 5 + 10
		},
		{
			name:  "with all",
			build: func(f *fixture) *QueryBuilder { return Factory.NewQuery().With(f.position, f.velocity) },
			want:  5,
		},
		{
			name:  "without excludes",
			build: func(f *fixture) *QueryBuilder { return Factory.NewQuery().With(f.position).Without(f.velocity) },
			want:  10,
		},
		{
			name:  "with any",
			build: func(f *fixture) *QueryBuilder { return Factory.NewQuery().WithAny(f.velocity, f.health) },
			want:  25, // 5 PV + 20 H
		},
		{
			name:  "id based variants",
			build: func(f *fixture) *QueryBuilder {
				return Factory.NewQuery().WithIDs(positionID).WithoutIDs(velocityID, healthID)
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig())
			w := f.world
			spawnWith(t, w, 5, Writers(f.position.Write(Position{}), f.velocity.Write(Velocity{})))
			spawnWith(t, w, 10, f.position.Write(Position{}))
			spawnWith(t, w, 20, f.health.Write(Health{}))

			q, err := tt.build(f).Build(w)
			require.NoError(t, err)
			require.Equal(t, tt.want, q.Count())

			cursor := q.Cursor()
			n := 0
			for cursor.Next() {
				n++
			}
			require.Equal(t, tt.want, n)
		})
	}
}

func TestCursorAcrossChunks(t *testing.T) {
	cfg := testConfig()
	cfg.ChunkSize = 64 // 4 Position entities per chunk
	f := newFixture(t, cfg)
	w := f.world

	var want []uint32
	for i := 0; i < 10; i++ {
		e, err := w.CreateEntity(f.position.Write(Position{X: float32(i)}))
		require.NoError(t, err)
		want = append(want, e.ID)
	}

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	cursor := q.Cursor()
	var got []uint32
	for cursor.Next() {
		e := cursor.Entity()
		pos := f.position.GetFromCursor(cursor)
		require.Equal(t, float32(e.ID), pos.X)
		got = append(got, e.ID)
	}
	require.Equal(t, want, got)
}

func TestCursorView(t *testing.T) {
	cfg := testConfig()
	cfg.ChunkSize = 64
	f := newFixture(t, cfg)
	w := f.world
	spawnWith(t, w, 6, f.position.Write(Position{X: 2}))

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	cursor := q.Cursor()
	seen := 0
	for cursor.Next() {
		view := cursor.View()
		col := view.Column(positionID)
		require.Equal(t, 12*view.Len(), len(col))
		require.Equal(t, 12, view.Stride(positionID))
		require.Equal(t, cursor.Entity().ID, view.EntityID(cursor.slot))
		seen++
	}
	require.Equal(t, 6, seen)
}

func TestCursorSeesPreexistingArchetypesOnly(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world
	spawnWith(t, w, 3, f.position.Write(Position{}))

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	cursor := q.Cursor()
	require.True(t, cursor.Next())

	// An archetype created after iteration began may or may not be
	// visited; the snapshot guarantees the pre-existing ones are.
	_, _, err = f.registry.GetOrCreateArchetype(maskFor(positionID, velocityID))
	require.NoError(t, err)
	n := 1
	for cursor.Next() {
		n++
	}
	require.Equal(t, 3, n)
}

func TestStructuralChangesDuringIteration(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world
	entities := spawnWith(t, w, 4, f.position.Write(Position{}))

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	cursor := q.Cursor()
	require.True(t, cursor.Next())
	require.True(t, w.Locked())

	// Direct structural mutation is refused while the cursor is live.
	var locked LockedWorldError
	require.ErrorAs(t, f.velocity.Add(w, entities[0], Velocity{X: 1}), &locked)
	_, err = w.Despawn(entities[1])
	require.ErrorAs(t, err, &locked)

	// Enqueued variants defer until the cursor finishes.
	require.NoError(t, f.velocity.EnqueueAdd(w, entities[0], Velocity{X: 1}))
	require.NoError(t, w.EnqueueDespawn(entities[1]))
	alive, err := w.IsAlive(entities[1])
	require.NoError(t, err)
	require.True(t, alive)

	for cursor.Next() {
	}
	require.False(t, w.Locked())

	// Queue drained on the final unlock.
	has, err := f.velocity.Has(w, entities[0])
	require.NoError(t, err)
	require.True(t, has)
	vel, err := f.velocity.GetValue(w, entities[0])
	require.NoError(t, err)
	require.Equal(t, Velocity{X: 1}, vel)
	alive, err = w.IsAlive(entities[1])
	require.NoError(t, err)
	require.False(t, alive)
}

func TestCursorReset(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world
	spawnWith(t, w, 5, f.position.Write(Position{}))

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	cursor := q.Cursor()
	require.True(t, cursor.Next())
	require.True(t, cursor.Next())
	cursor.Reset()
	require.False(t, w.Locked())

	// A reset cursor restarts from the beginning.
	n := 0
	for cursor.Next() {
		n++
	}
	require.Equal(t, 5, n)
}

func TestCursorEntitiesSequence(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world
	spawnWith(t, w, 4, f.position.Write(Position{X: 1}))

	q, err := Factory.NewQuery().With(f.position).Build(w)
	require.NoError(t, err)

	n := 0
	for _, view := range q.Cursor().Entities() {
		require.NotNil(t, view.Column(positionID))
		n++
	}
	require.Equal(t, 4, n)
	require.False(t, w.Locked())
}
