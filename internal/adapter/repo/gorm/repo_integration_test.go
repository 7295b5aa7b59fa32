package gormrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"islandsim/internal/app/ports"
	"islandsim/internal/app/worldbuild"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"
	"islandsim/internal/logger"

	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("ISLANDSIM_DB_DSN")
	if dsn == "" {
		t.Skip("ISLANDSIM_DB_DSN is required for integration test")
	}
	return dsn
}

func migratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations")
	if err := ApplyMigrations(context.Background(), db, dir, logger.Discard()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestTerrainChunkRepo_RoundTripAndUpsert(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	key := ports.WorldKey{Seed: -4242, Size: 4, Noise: "perlin"}
	_ = db.Exec("DELETE FROM terrain_chunks WHERE seed = ?", key.Seed).Error

	repo := NewTerrainChunkRepo(db)
	coord := terrain.ChunkCoord{X: 1, Y: 0}
	if _, ok, err := repo.GetChunk(ctx, key, coord); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	chunk := terrain.Chunk{
		Coord:  coord,
		Width:  2,
		Height: 1,
		Tiles:  []terrain.Tile{terrain.NewTileWithElevation(terrain.KindMountain, 49), terrain.NewTile(terrain.KindRiver)},
	}
	if err := repo.SaveChunk(ctx, key, chunk); err != nil {
		t.Fatalf("save: %v", err)
	}
	chunk.Tiles[1] = terrain.NewTile(terrain.KindBeach)
	if err := repo.SaveChunk(ctx, key, chunk); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.GetChunk(ctx, key, coord)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Width != 2 || got.Height != 1 || len(got.Tiles) != 2 {
		t.Fatalf("unexpected chunk shape %+v", got)
	}
	if got.Tiles[0].Elevation != 49 || got.Tiles[1].Kind != terrain.KindBeach {
		t.Fatalf("unexpected tiles %+v", got.Tiles)
	}
}

func TestWorldBuild_ReusesPostgresCache(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	key := ports.WorldKey{Seed: -77, Size: 24, Noise: "simplex"}
	_ = db.Exec("DELETE FROM terrain_chunks WHERE seed = ?", key.Seed).Error

	uc := worldbuild.UseCase{
		Store:     NewTerrainChunkRepo(db),
		TxManager: NewTxManager(db),
		ChunkSize: 8,
		Log:       logger.Discard(),
	}
	req := worldbuild.Request{Seed: key.Seed, Size: key.Size, Noise: key.Noise}
	first, err := uc.Execute(ctx, req)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := uc.Execute(ctx, req)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("expected fresh then cached build, got %v/%v", first.Cached, second.Cached)
	}
	a, b := first.Grid.Tiles(), second.Grid.Tiles()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tile %d differs after reload", i)
		}
	}
}

func TestTxManager_RollsBackChunks(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	key := ports.WorldKey{Seed: -91, Size: 2, Noise: "perlin"}
	_ = db.Exec("DELETE FROM terrain_chunks WHERE seed = ?", key.Seed).Error

	repo := NewTerrainChunkRepo(db)
	wantErr := errors.New("abort")
	err := NewTxManager(db).RunInTx(ctx, func(ctx context.Context) error {
		chunk := terrain.Chunk{Width: 1, Height: 1, Tiles: []terrain.Tile{terrain.NewTile(terrain.KindEarth)}}
		if err := repo.SaveChunk(ctx, key, chunk); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if _, ok, err := repo.GetChunk(ctx, key, terrain.ChunkCoord{}); err != nil || ok {
		t.Fatalf("expected rolled back chunk, got ok=%v err=%v", ok, err)
	}
}

func TestSnapshotRepo_Latest(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()
	_ = db.Exec("DELETE FROM world_snapshots").Error

	repo := NewSnapshotRepo(db)
	if _, err := repo.Latest(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	kevin := agent.NewCharacter("kevin", agent.RacePlayer, agent.DefaultStats(), 3, 4, true)
	for tick := uint64(1); tick <= 2; tick++ {
		snap := ports.Snapshot{
			Tick:    tick,
			TakenAt: time.Unix(1700000000+int64(tick), 0).UTC(),
			Census:  map[terrain.Kind]int{terrain.KindEarth: 10, terrain.KindWater: int(tick)},
			Items:   5,
			Agents:  []agent.View{kevin.View()},
		}
		if err := repo.Save(ctx, snap); err != nil {
			t.Fatalf("save tick %d: %v", tick, err)
		}
	}

	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Tick != 2 || got.Census[terrain.KindWater] != 2 || got.Items != 5 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if len(got.Agents) != 1 || got.Agents[0].Name != "Kevin" {
		t.Fatalf("unexpected agents %+v", got.Agents)
	}
}
