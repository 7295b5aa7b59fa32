package terrain

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBeachWidth = 8

	minLandElevation   = 2.0
	landElevationRange = 48.0
	noiseRelief        = 10.0
	mountainElevation  = 47.0
	mountainNoise      = 0.46
)

type Generator struct {
	Noise      NoiseField
	Workers    int
	BeachWidth int
}

func NewGenerator(noise NoiseField) Generator {
	return Generator{Noise: noise, Workers: runtime.GOMAXPROCS(0), BeachWidth: DefaultBeachWidth}
}

// Generate classifies a width×height island in row-major order, beaches
// included.
func (g Generator) Generate(ctx context.Context, width, height int) ([]Tile, error) {
	tiles, err := g.classify(ctx, width, height)
	if err != nil {
		return nil, err
	}
	applyBeaches(width, height, tiles, g.beachWidth())
	return tiles, nil
}

// Build creates a square grid and shapes it into an island.
func (g Generator) Build(ctx context.Context, size int) (*Grid, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	if err := g.GenerateInto(ctx, grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// GenerateInto overwrites every tile of grid with the generated island.
func (g Generator) GenerateInto(ctx context.Context, grid *Grid) error {
	if grid == nil || grid.Size() <= 0 {
		return ErrInvalidDimensions
	}
	tiles, err := g.Generate(ctx, grid.Size(), grid.Size())
	if err != nil {
		return err
	}
	grid.Edit(func(_ int, dst []Tile) {
		copy(dst, tiles)
	})
	return nil
}

func (g Generator) beachWidth() int {
	if g.BeachWidth <= 0 {
		return DefaultBeachWidth
	}
	return g.BeachWidth
}

func (g Generator) workers(rows int) int {
	w := g.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > rows {
		w = rows
	}
	return w
}

type valueRange struct {
	min float64
	max float64
}

func (g Generator) classify(ctx context.Context, width, height int) ([]Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if g.Noise == nil {
		return nil, fmt.Errorf("generator: %w", ErrUnknownNoise)
	}

	values := make([]float64, width*height)
	workers := g.workers(height)
	ranges := make([]valueRange, workers)

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
			for y := w; y < height; y += workers {
				if err := egCtx.Err(); err != nil {
					return err
				}
				for x := 0; x < width; x++ {
					v := g.biasedValue(x, y, width, height)
					values[y*width+x] = v
					r.min = math.Min(r.min, v)
					r.max = math.Max(r.max, v)
				}
			}
			ranges[w] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	threshold, err := thresholdOf(ranges)
	if err != nil {
		return nil, err
	}

	maxDist := math.Sqrt(float64(width*width + height*height))
	tiles := make([]Tile, width*height)
	eg, egCtx = errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for y := w; y < height; y += workers {
				if err := egCtx.Err(); err != nil {
					return err
				}
				for x := 0; x < width; x++ {
					i := y*width + x
					tiles[i] = classifyCell(values[i], threshold, centerDistance(x, y, width, height), maxDist)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

func (g Generator) biasedValue(x, y, width, height int) float64 {
	raw := g.Noise.Sample(float64(x)/float64(width), float64(y)/float64(height))
	v := raw - centerDistance(x, y, width, height)/float64(width)
	return v*0.5 + 0.5
}

// centerDistance measures from the integer center cell (width/2, height/2).
func centerDistance(x, y, width, height int) float64 {
	dx := float64(x - width/2)
	dy := float64(y - height/2)
	return math.Sqrt(dx*dx + dy*dy)
}

func thresholdOf(ranges []valueRange) (float64, error) {
	if len(ranges) == 0 {
		return 0, ErrDegenerateNoise
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range ranges {
		lo = math.Min(lo, r.min)
		hi = math.Max(hi, r.max)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(hi > lo) {
		return 0, fmt.Errorf("%w: min=%v max=%v", ErrDegenerateNoise, lo, hi)
	}
	return (lo + hi) / 2, nil
}

func classifyCell(v, threshold, dist, maxDist float64) Tile {
	if v <= threshold {
		return NewTile(KindWater)
	}
	e := landElevation(v, dist, maxDist)
	kind := KindEarth
	if e > mountainElevation && v > mountainNoise {
		kind = KindMountain
	}
	return NewTileWithElevation(kind, toElevation(e))
}

func landElevation(v, dist, maxDist float64) float64 {
	return minLandElevation + landElevationRange*(1-dist/maxDist) + v*noiseRelief
}

func toElevation(e float64) uint32 {
	if e < 0 {
		return 0
	}
	return uint32(e)
}

// ApplyBeaches turns Earth cells into Beach when a probe along one of the
// four axes, up to width cells away, lands on Water. Diagonal water is not
// seen. Running it again changes nothing.
func ApplyBeaches(grid *Grid, width int) {
	if width <= 0 {
		width = DefaultBeachWidth
	}
	grid.Edit(func(size int, tiles []Tile) {
		applyBeaches(size, size, tiles, width)
	})
}

func applyBeaches(w, h int, tiles []Tile, width int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if tiles[i].Kind != KindEarth {
				continue
			}
			if waterOnAxis(w, h, tiles, x, y, width) {
				tiles[i] = NewTile(KindBeach)
			}
		}
	}
}

func waterOnAxis(w, h int, tiles []Tile, x, y, width int) bool {
	for i := 1; i <= width; i++ {
		probes := [4][2]int{
			{clamp(x-i, w), y},
			{clamp(x+i, w), y},
			{x, clamp(y-i, h)},
			{x, clamp(y+i, h)},
		}
		for _, p := range probes {
			if tiles[p[1]*w+p[0]].Kind == KindWater {
				return true
			}
		}
	}
	return false
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}
