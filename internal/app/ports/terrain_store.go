package ports

import (
	"context"

	"islandsim/internal/domain/terrain"
)

// WorldKey identifies one generated terrain: the same key always yields the
// same tiles.
type WorldKey struct {
	Seed  int64
	Size  int
	Noise string
}

type TerrainStore interface {
	GetChunk(ctx context.Context, key WorldKey, coord terrain.ChunkCoord) (terrain.Chunk, bool, error)
	SaveChunk(ctx context.Context, key WorldKey, chunk terrain.Chunk) error
}
