package quarry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateEntityBulk(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(Writers(
		f.position.Write(Position{X: 1, Y: 2, Z: 3}),
		f.velocity.Write(Velocity{X: 4}),
		f.frozen.Write(Frozen{}),
	))
	require.NoError(t, err)

	// One structural hop: the full archetype exists immediately.
	require.Equal(t, 1, f.registry.ArchetypeCount())
	loc := w.location(e.ID)
	require.True(t, loc.Placed())

	pos, err := f.position.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Position{X: 1, Y: 2, Z: 3}, pos)
	vel, err := f.velocity.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Velocity{X: 4}, vel)
	has, err := f.frozen.Has(w, e)
	require.NoError(t, err)
	require.True(t, has)
}

func TestCreateEntityEmptyWriter(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(Writers())
	require.NoError(t, err)
	require.False(t, w.location(e.ID).Placed())
	alive, err := w.IsAlive(e)
	require.NoError(t, err)
	require.True(t, alive)
}

func TestAddComponentsBulk(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(f.position.Write(Position{X: 1}))
	require.NoError(t, err)
	archetypesBefore := f.registry.ArchetypeCount()

	require.NoError(t, w.AddComponents(e, Writers(
		f.velocity.Write(Velocity{X: 2}),
		f.health.Write(Health{HP: 10, Max: 10}),
	)))

	// One migration straight to {P,V,H}; no intermediate {P,V}.
	require.Equal(t, archetypesBefore+1, f.registry.ArchetypeCount())
	pos, err := f.position.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Position{X: 1}, pos)
	hp, err := f.health.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Health{HP: 10, Max: 10}, hp)
}

func TestAddComponentsOverlapFails(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(f.position.Write(Position{X: 1}))
	require.NoError(t, err)

	err = w.AddComponents(e, Writers(
		f.position.Write(Position{X: 9}),
		f.velocity.Write(Velocity{}),
	))
	var dup DuplicateComponentError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, positionID, dup.Component)

	// Nothing changed.
	pos, err := f.position.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Position{X: 1}, pos)
	has, err := f.velocity.Has(w, e)
	require.NoError(t, err)
	require.False(t, has)
}

func TestAddComponentsToUnplacedEntity(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, _ := w.Spawn()
	require.NoError(t, w.AddComponents(e, f.velocity.Write(Velocity{X: 3})))
	vel, err := f.velocity.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Velocity{X: 3}, vel)
}

func TestOverwrite(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(Writers(
		f.position.Write(Position{X: 1}),
		f.velocity.Write(Velocity{X: 2}),
	))
	require.NoError(t, err)

	// The new set fully replaces the old one.
	require.NoError(t, w.Overwrite(e, Writers(
		f.position.Write(Position{X: 7}),
		f.health.Write(Health{HP: 3, Max: 3}),
	)))

	pos, err := f.position.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Position{X: 7}, pos)
	has, err := f.velocity.Has(w, e)
	require.NoError(t, err)
	require.False(t, has)
	hp, err := f.health.GetValue(w, e)
	require.NoError(t, err)
	require.Equal(t, Health{HP: 3, Max: 3}, hp)
}

func TestOverwriteToEmpty(t *testing.T) {
	f := newFixture(t, testConfig())
	w := f.world

	e, err := w.CreateEntity(f.position.Write(Position{X: 1}))
	require.NoError(t, err)

	require.NoError(t, w.Overwrite(e, Writers()))
	require.False(t, w.location(e.ID).Placed())
	alive, err := w.IsAlive(e)
	require.NoError(t, err)
	require.True(t, alive)
}
