package worldbuild

import (
	"context"
	"errors"
	"fmt"
	"time"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"

	"github.com/sirupsen/logrus"
)

var ErrInvalidRequest = errors.New("invalid world build request")

// UseCase builds the island for a seed. When a Store is configured the
// generated tiles are cached in chunks and reused on the next build with
// the same seed, size and noise. With a TxManager the chunks of one build
// are written all or nothing.
type UseCase struct {
	Store      ports.TerrainStore
	TxManager  ports.TxManager
	Workers    int
	BeachWidth int
	ChunkSize  int
	Log        logrus.FieldLogger
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Size <= 0 {
		return Response{}, fmt.Errorf("%w: size %d: %w", ErrInvalidRequest, req.Size, terrain.ErrInvalidDimensions)
	}
	if req.Margin < 0 {
		return Response{}, fmt.Errorf("%w: margin %d", ErrInvalidRequest, req.Margin)
	}
	kind, err := terrain.ParseNoiseKind(req.Noise)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	now := u.Now
	if now == nil {
		now = time.Now
	}
	log := u.logger().WithFields(logrus.Fields{"seed": req.Seed, "size": req.Size, "noise": kind})
	startedAt := now()

	key := ports.WorldKey{Seed: req.Seed, Size: req.Size, Noise: string(kind)}
	grid, cached, err := u.load(ctx, key)
	if err != nil {
		return Response{}, fmt.Errorf("load terrain: %w", err)
	}
	if !cached {
		grid, err = u.generate(ctx, kind, req.Seed, req.Size)
		if err != nil {
			return Response{}, fmt.Errorf("generate terrain: %w", err)
		}
		if err := u.save(ctx, key, grid); err != nil {
			return Response{}, fmt.Errorf("save terrain: %w", err)
		}
	}

	grid.SetBoundaryMargin(req.Margin)
	census := grid.Census()
	elapsed := now().Sub(startedAt)
	log.WithFields(logrus.Fields{
		"cached":     cached,
		"elapsed_ms": elapsed.Milliseconds(),
		"water":      census[terrain.KindWater],
		"earth":      census[terrain.KindEarth],
		"beach":      census[terrain.KindBeach],
		"mountain":   census[terrain.KindMountain],
	}).Info("world built")

	return Response{Grid: grid, Cached: cached, Census: census, Elapsed: elapsed}, nil
}

func (u UseCase) logger() logrus.FieldLogger {
	if u.Log == nil {
		return logrus.StandardLogger().WithField("component", "worldbuild")
	}
	return u.Log
}

func (u UseCase) chunkSize() int {
	if u.ChunkSize <= 0 {
		return terrain.DefaultChunkSize
	}
	return u.ChunkSize
}

func (u UseCase) generate(ctx context.Context, kind terrain.NoiseKind, seed int64, size int) (*terrain.Grid, error) {
	field, err := terrain.NewNoiseField(kind, seed)
	if err != nil {
		return nil, err
	}
	gen := terrain.NewGenerator(field)
	if u.Workers > 0 {
		gen.Workers = u.Workers
	}
	if u.BeachWidth > 0 {
		gen.BeachWidth = u.BeachWidth
	}
	return gen.Build(ctx, size)
}

func (u UseCase) load(ctx context.Context, key ports.WorldKey) (*terrain.Grid, bool, error) {
	if u.Store == nil {
		return nil, false, nil
	}
	size := u.chunkSize()
	n := terrain.ChunkCount(key.Size, size)
	chunks := make([]terrain.Chunk, 0, n*n)
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			chunk, ok, err := u.Store.GetChunk(ctx, key, terrain.ChunkCoord{X: cx, Y: cy})
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			chunks = append(chunks, chunk)
		}
	}
	grid, err := terrain.AssembleGrid(key.Size, size, chunks)
	if err != nil {
		return nil, false, err
	}
	return grid, true, nil
}

func (u UseCase) save(ctx context.Context, key ports.WorldKey, grid *terrain.Grid) error {
	if u.Store == nil {
		return nil
	}
	chunks := grid.Chunks(u.chunkSize())
	write := func(ctx context.Context) error {
		for _, chunk := range chunks {
			if err := u.Store.SaveChunk(ctx, key, chunk); err != nil {
				return err
			}
		}
		return nil
	}
	if u.TxManager == nil {
		return write(ctx)
	}
	return u.TxManager.RunInTx(ctx, write)
}
