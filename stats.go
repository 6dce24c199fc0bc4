package quarry

import (
	"github.com/TheBitDrifter/quarry/table"
)

// ArchetypeStats is a point-in-time snapshot of one archetype's
// storage in a world.
type ArchetypeStats struct {
	ID               int32
	Components       []table.ComponentID
	Entities         int
	Chunks           int
	EntitiesPerChunk int
	BytesPerEntity   int
}

// WorldStats aggregates a world's storage snapshot.
type WorldStats struct {
	Entities   int
	Chunks     int
	Archetypes []ArchetypeStats
}

// Stats snapshots the world. Taken under the structural lock, so the
// counts are mutually consistent.
func (w *World) Stats() (WorldStats, error) {
	if err := w.guard.enter(); err != nil {
		return WorldStats{}, err
	}
	defer w.guard.exit()

	w.structMu.Lock()
	defer w.structMu.Unlock()

	stats := WorldStats{Entities: w.entities.Alive()}
	w.stores.Range(func(_, v any) bool {
		store := v.(*table.Store)
		layout := store.Layout()

		components := make([]table.ComponentID, 0, layout.Mask().Popcount())
		bytesPerEntity := layout.EntityIDWidth()
		for bit := range layout.Mask().Bits() {
			id := table.ComponentID(bit)
			components = append(components, id)
			bytesPerEntity += int(layout.Size(id))
		}

		stats.Archetypes = append(stats.Archetypes, ArchetypeStats{
			ID:               store.ID(),
			Components:       components,
			Entities:         store.Count(),
			Chunks:           store.ChunkCount(),
			EntitiesPerChunk: layout.EntitiesPerChunk(),
			BytesPerEntity:   bytesPerEntity,
		})
		stats.Chunks += store.ChunkCount()
		return true
	})
	return stats, nil
}
