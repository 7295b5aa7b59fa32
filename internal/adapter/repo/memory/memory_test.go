package memory

import (
	"context"
	"errors"
	"testing"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"
)

func TestTerrainChunkRepo_SaveAndGet(t *testing.T) {
	repo := NewTerrainChunkRepo(NewStore())
	key := ports.WorldKey{Seed: 17, Size: 8, Noise: "perlin"}
	chunk := terrain.Chunk{
		Coord:  terrain.ChunkCoord{X: 1, Y: 0},
		Width:  1,
		Height: 2,
		Tiles:  []terrain.Tile{terrain.NewTile(terrain.KindWater), terrain.NewTileWithElevation(terrain.KindEarth, 9)},
	}
	if err := repo.SaveChunk(context.Background(), key, chunk); err != nil {
		t.Fatalf("save chunk: %v", err)
	}
	chunk.Tiles[0] = terrain.NewTile(terrain.KindBeach)

	got, ok, err := repo.GetChunk(context.Background(), key, chunk.Coord)
	if err != nil || !ok {
		t.Fatalf("get chunk: ok=%v err=%v", ok, err)
	}
	if got.Tiles[0].Kind != terrain.KindWater || got.Tiles[1].Elevation != 9 {
		t.Fatalf("unexpected chunk tiles: %+v", got.Tiles)
	}

	_, ok, err = repo.GetChunk(context.Background(), ports.WorldKey{Seed: 18, Size: 8, Noise: "perlin"}, chunk.Coord)
	if err != nil || ok {
		t.Fatalf("expected miss for another seed, ok=%v err=%v", ok, err)
	}
}

func TestSnapshotRepo_KeepsMostRecent(t *testing.T) {
	store := NewStore()
	repo := NewSnapshotRepo(store)
	if _, err := repo.Latest(context.Background()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for i := 1; i <= defaultSnapshotKeep+4; i++ {
		if err := repo.Save(context.Background(), ports.Snapshot{Tick: uint64(i)}); err != nil {
			t.Fatalf("save snapshot %d: %v", i, err)
		}
	}
	latest, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Tick != uint64(defaultSnapshotKeep+4) {
		t.Fatalf("expected latest tick %d, got %d", defaultSnapshotKeep+4, latest.Tick)
	}
	all := repo.List(context.Background())
	if len(all) != defaultSnapshotKeep || all[0].Tick != 5 {
		t.Fatalf("expected %d snapshots starting at tick 5, got %d starting at %d", defaultSnapshotKeep, len(all), all[0].Tick)
	}
}

func TestTxManager_AllowsRepoCallsInside(t *testing.T) {
	store := NewStore()
	repo := NewTerrainChunkRepo(store)
	key := ports.WorldKey{Seed: 1, Size: 4, Noise: "simplex"}

	err := NewTxManager(store).RunInTx(context.Background(), func(ctx context.Context) error {
		for x := 0; x < 2; x++ {
			chunk := terrain.Chunk{Coord: terrain.ChunkCoord{X: x}, Width: 1, Height: 1, Tiles: []terrain.Tile{terrain.NewTile(terrain.KindEarth)}}
			if err := repo.SaveChunk(ctx, key, chunk); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}
	if store.ChunkCount() != 2 {
		t.Fatalf("expected 2 chunks, got %d", store.ChunkCount())
	}
}
