package terrain

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatNoise struct{ v float64 }

func (n flatNoise) Sample(_, _ float64) float64 { return n.v }

type nanNoise struct{}

func (nanNoise) Sample(_, _ float64) float64 { return math.NaN() }

func TestGenerator_RejectsInvalidDimensions(t *testing.T) {
	gen := NewGenerator(flatNoise{})
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := gen.Generate(context.Background(), dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("dims %v: expected ErrInvalidDimensions, got %v", dims, err)
		}
	}
	_, err := gen.Build(context.Background(), 0)
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions from Build, got %v", err)
	}
}

func TestGenerator_RejectsDegenerateNoise(t *testing.T) {
	_, err := NewGenerator(nanNoise{}).Generate(context.Background(), 8, 8)
	if !errors.Is(err, ErrDegenerateNoise) {
		t.Fatalf("expected ErrDegenerateNoise, got %v", err)
	}

	// a single cell has no spread to split into land and water
	tiles, err := NewGenerator(flatNoise{}).Generate(context.Background(), 1, 1)
	if !errors.Is(err, ErrDegenerateNoise) {
		t.Fatalf("expected ErrDegenerateNoise for a zero-width range, got err=%v tiles=%v", err, tiles)
	}
}

func TestThresholdOf(t *testing.T) {
	got, err := thresholdOf([]valueRange{{min: 0.2, max: 0.5}, {min: 0.4, max: 0.8}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	_, err = thresholdOf([]valueRange{{min: 0.3, max: 0.3}, {min: 0.3, max: 0.3}})
	assert.ErrorIs(t, err, ErrDegenerateNoise)
	_, err = thresholdOf(nil)
	assert.ErrorIs(t, err, ErrDegenerateNoise)
}

func TestCenterDistance_UsesIntegerCenter(t *testing.T) {
	// 5x5 has its center on cell (2,2), not (2.5,2.5)
	assert.Equal(t, 0.0, centerDistance(2, 2, 5, 5))
	assert.Equal(t, 1.0, centerDistance(3, 2, 5, 5))
	assert.InDelta(t, math.Sqrt2, centerDistance(1, 1, 5, 5), 1e-9)
}

func TestGenerator_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(NewPerlinField(1)).Generate(ctx, 16, 16)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerator_ElevationFollowsKind(t *testing.T) {
	for _, seed := range []int64{1, 17, 99} {
		tiles, err := NewGenerator(NewPerlinField(seed)).Generate(context.Background(), 48, 48)
		require.NoError(t, err)
		for i, tile := range tiles {
			require.True(t, tile.Kind.Valid(), "cell %d has no kind", i)
			_, ok := tile.ElevationValue()
			switch tile.Kind {
			case KindEarth, KindMountain:
				if !ok {
					t.Fatalf("seed %d cell %d: %s without elevation", seed, i, tile.Kind)
				}
			default:
				if ok || tile.Height() != 0 {
					t.Fatalf("seed %d cell %d: %s should not carry elevation", seed, i, tile.Kind)
				}
			}
		}
	}
}

func TestGenerator_CenterIsLandAndCornersAreWater(t *testing.T) {
	tiles, err := NewGenerator(flatNoise{v: 0}).Generate(context.Background(), 40, 40)
	require.NoError(t, err)

	center := tiles[20*40+20]
	assert.NotEqual(t, KindWater, center.Kind)
	assert.Equal(t, KindWater, tiles[0].Kind)
	assert.Equal(t, KindWater, tiles[len(tiles)-1].Kind)
}

func TestGenerator_DeterministicAcrossWorkerCounts(t *testing.T) {
	noise := NewSimplexField(42)
	one := Generator{Noise: noise, Workers: 1}
	many := Generator{Noise: noise, Workers: 7}

	a, err := one.Generate(context.Background(), 33, 21)
	require.NoError(t, err)
	b, err := many.Generate(context.Background(), 33, 21)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewGenerator(NewSimplexField(42)).Generate(context.Background(), 33, 21)
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestClassifyCell(t *testing.T) {
	assert.Equal(t, KindWater, classifyCell(0.3, 0.5, 0, 100).Kind)
	assert.Equal(t, KindWater, classifyCell(0.5, 0.5, 0, 100).Kind)

	mountain := classifyCell(0.9, 0.5, 0, 100)
	assert.Equal(t, KindMountain, mountain.Kind)
	assert.Equal(t, uint32(59), mountain.Height())

	// high ground but the noise gate fails
	earth := classifyCell(0.45, 0.4, 0, 100)
	assert.Equal(t, KindEarth, earth.Kind)
	assert.Equal(t, uint32(54), earth.Height())

	// 47.5 before truncation still clears the mountain line
	edge := classifyCell(0.5, 0.4, 15.625, 100)
	assert.Equal(t, KindMountain, edge.Kind)
	assert.Equal(t, uint32(47), edge.Height())

	// exactly 47 does not
	flat := classifyCell(0.9, 0.4, 25, 100)
	assert.Equal(t, KindEarth, flat.Kind)
	assert.Equal(t, uint32(47), flat.Height())

	low := classifyCell(0.9, 0.5, 100, 100)
	assert.Equal(t, KindEarth, low.Kind)
	assert.Equal(t, uint32(11), low.Height())
}

func TestApplyBeaches_AxisProbesOnly(t *testing.T) {
	g, err := NewGrid(20)
	require.NoError(t, err)
	g.SetTileType(10, 10, KindWater)

	ApplyBeaches(g, 8)

	kindAt := func(x, y int) Kind {
		tile, err := g.Tile(x, y)
		require.NoError(t, err)
		return tile.Kind
	}
	assert.Equal(t, KindBeach, kindAt(10, 2))
	assert.Equal(t, KindEarth, kindAt(10, 1))
	assert.Equal(t, KindBeach, kindAt(18, 10))
	assert.Equal(t, KindEarth, kindAt(19, 10))
	assert.Equal(t, KindEarth, kindAt(11, 11))
	assert.Equal(t, KindWater, kindAt(10, 10))
}

func TestApplyBeaches_IsIdempotent(t *testing.T) {
	g, err := NewGenerator(NewPerlinField(5)).Build(context.Background(), 64)
	require.NoError(t, err)
	once := g.Tiles()

	ApplyBeaches(g, DefaultBeachWidth)

	assert.Equal(t, once, g.Tiles())
}

func TestParseNoiseKind(t *testing.T) {
	k, err := ParseNoiseKind(" Simplex ")
	require.NoError(t, err)
	assert.Equal(t, NoiseSimplex, k)

	k, err = ParseNoiseKind("")
	require.NoError(t, err)
	assert.Equal(t, NoisePerlin, k)

	_, err = ParseNoiseKind("worley")
	assert.ErrorIs(t, err, ErrUnknownNoise)

	_, err = NewNoiseField("worley", 1)
	assert.ErrorIs(t, err, ErrUnknownNoise)
}

func TestNoiseFields_AreDeterministicPerSeed(t *testing.T) {
	for _, kind := range []NoiseKind{NoisePerlin, NoiseSimplex} {
		a, err := NewNoiseField(kind, 11)
		require.NoError(t, err)
		b, err := NewNoiseField(kind, 11)
		require.NoError(t, err)
		for _, p := range [][2]float64{{0.1, 0.2}, {0.5, 0.5}, {0.93, 0.07}} {
			assert.Equal(t, a.Sample(p[0], p[1]), b.Sample(p[0], p[1]), "kind %s", kind)
		}
	}
}
