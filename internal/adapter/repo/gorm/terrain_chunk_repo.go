package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"islandsim/internal/adapter/repo/gorm/model"
	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TerrainChunkRepo caches generated terrain in postgres, one row per chunk
// and world key.
type TerrainChunkRepo struct {
	db *gorm.DB
}

func NewTerrainChunkRepo(db *gorm.DB) TerrainChunkRepo {
	return TerrainChunkRepo{db: db}
}

func (r TerrainChunkRepo) GetChunk(ctx context.Context, key ports.WorldKey, coord terrain.ChunkCoord) (terrain.Chunk, bool, error) {
	var row model.TerrainChunk
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(map[string]any{
			"seed":    key.Seed,
			"size":    int32(key.Size),
			"noise":   key.Noise,
			"chunk_x": int32(coord.X),
			"chunk_y": int32(coord.Y),
		}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return terrain.Chunk{}, false, nil
		}
		return terrain.Chunk{}, false, err
	}
	tiles, err := decodeChunkTiles(row.Tiles)
	if err != nil {
		return terrain.Chunk{}, false, fmt.Errorf("decode chunk %d,%d: %w", coord.X, coord.Y, err)
	}
	return terrain.Chunk{
		Coord:  coord,
		Width:  int(row.Width),
		Height: int(row.Height),
		Tiles:  tiles,
	}, true, nil
}

func (r TerrainChunkRepo) SaveChunk(ctx context.Context, key ports.WorldKey, chunk terrain.Chunk) error {
	b, err := encodeChunkTiles(chunk.Tiles)
	if err != nil {
		return err
	}
	row := model.TerrainChunk{
		Seed:      key.Seed,
		Size:      int32(key.Size),
		Noise:     key.Noise,
		ChunkX:    int32(chunk.Coord.X),
		ChunkY:    int32(chunk.Coord.Y),
		Width:     int32(chunk.Width),
		Height:    int32(chunk.Height),
		Tiles:     b,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seed"}, {Name: "size"}, {Name: "noise"}, {Name: "chunk_x"}, {Name: "chunk_y"}},
		DoUpdates: clause.AssignmentColumns([]string{"width", "height", "tiles", "updated_at"}),
	}).Create(&row).Error
}

func encodeChunkTiles(tiles []terrain.Tile) ([]byte, error) {
	return json.Marshal(tiles)
}

func decodeChunkTiles(data []byte) ([]terrain.Tile, error) {
	out := []terrain.Tile{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
