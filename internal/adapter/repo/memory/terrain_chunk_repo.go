package memory

import (
	"context"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"
)

type TerrainChunkRepo struct {
	store *Store
}

func NewTerrainChunkRepo(store *Store) TerrainChunkRepo {
	return TerrainChunkRepo{store: store}
}

func (r TerrainChunkRepo) GetChunk(_ context.Context, key ports.WorldKey, coord terrain.ChunkCoord) (terrain.Chunk, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.chunks[chunkKey(key, coord)]
	if !ok {
		return terrain.Chunk{}, false, nil
	}
	return cloneChunk(c), true, nil
}

func (r TerrainChunkRepo) SaveChunk(_ context.Context, key ports.WorldKey, chunk terrain.Chunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.chunks[chunkKey(key, chunk.Coord)] = cloneChunk(chunk)
	return nil
}

func cloneChunk(c terrain.Chunk) terrain.Chunk {
	tiles := make([]terrain.Tile, len(c.Tiles))
	copy(tiles, c.Tiles)
	c.Tiles = tiles
	return c
}
