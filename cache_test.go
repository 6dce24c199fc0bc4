package quarry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheBitDrifter/quarry/table"
)

func TestSimpleCache(t *testing.T) {
	cache := FactoryNewCache[string](2)

	idx, err := cache.Register("first", "a")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	idx, err = cache.Register("second", "b")
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	got, ok := cache.GetIndex("first")
	require.True(t, ok)
	require.Equal(t, "a", *cache.GetItem(got))
	require.Equal(t, "b", *cache.GetItem32(1))

	_, ok = cache.GetIndex("missing")
	require.False(t, ok)

	_, err = cache.Register("third", "c")
	require.Error(t, err)
}

func TestTypeResolver(t *testing.T) {
	resolver, err := NewTypeResolver(testTypeTable())
	require.NoError(t, err)

	id, ok := resolver.Resolve(positionGUID)
	require.True(t, ok)
	require.Equal(t, positionID, id)

	// Entries without a GUID are not indexed.
	_, ok = resolver.Resolve(table.GUID{0xFF})
	require.False(t, ok)
	_, ok = resolver.Resolve(table.GUID{})
	require.False(t, ok)
}
