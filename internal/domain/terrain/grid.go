package terrain

import (
	"fmt"
	"math"
	"sync"
)

// Grid is a square world of N×N tiles stored row-major. Reads take the
// read lock; edits take the write lock so no reader observes a half-applied
// bulk edit.
type Grid struct {
	mu    sync.RWMutex
	size  int
	tiles []Tile
}

func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidDimensions, size)
	}
	tiles := make([]Tile, size*size)
	for i := range tiles {
		tiles[i] = NewTile(KindEarth)
	}
	return &Grid{size: size, tiles: tiles}, nil
}

// NewGridFromTiles adopts a row-major tile slice of length size*size.
func NewGridFromTiles(size int, tiles []Tile) (*Grid, error) {
	if size <= 0 || len(tiles) != size*size {
		return nil, fmt.Errorf("%w: size %d with %d tiles", ErrInvalidDimensions, size, len(tiles))
	}
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		out[i] = NewTileWithElevation(t.Kind, t.Elevation)
		out[i].IsSafeZone = t.IsSafeZone
		out[i].IsSpawnPoint = t.IsSpawnPoint
	}
	return &Grid{size: size, tiles: out}, nil
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

func (g *Grid) index(x, y int) int {
	return y*g.size + x
}

func (g *Grid) boundsErr(x, y int) error {
	return &OutOfBoundsError{X: x, Y: y, Size: g.size}
}

func (g *Grid) Tile(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return Tile{}, g.boundsErr(x, y)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tiles[g.index(x, y)], nil
}

// Tiles returns a row-major copy of every tile.
func (g *Grid) Tiles() []Tile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Neighbors lists the in-bounds Chebyshev neighbours of (x, y), scanning
// dx from -1 to 1 and dy from -1 to 1 within each column.
func (g *Grid) Neighbors(x, y int) []Point {
	out := make([]Point, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) {
				out = append(out, Point{X: nx, Y: ny})
			}
		}
	}
	return out
}

func Distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

func (g *Grid) Distance(x1, y1, x2, y2 int) float64 {
	return Distance(x1, y1, x2, y2)
}

func (g *Grid) ElevationDifference(x1, y1, x2, y2 int) (float64, error) {
	a, err := g.Tile(x1, y1)
	if err != nil {
		return 0, err
	}
	b, err := g.Tile(x2, y2)
	if err != nil {
		return 0, err
	}
	return math.Abs(float64(a.Height()) - float64(b.Height())), nil
}

// Cost is the energy needed to move between two cells: Euclidean distance
// plus the absolute elevation difference.
func (g *Grid) Cost(x1, y1, x2, y2 int) (float64, error) {
	diff, err := g.ElevationDifference(x1, y1, x2, y2)
	if err != nil {
		return 0, err
	}
	return Distance(x1, y1, x2, y2) + diff, nil
}

// IsNotWater is the walkability predicate; out-of-bounds cells are not walkable.
func (g *Grid) IsNotWater(x, y int) bool {
	t, err := g.Tile(x, y)
	if err != nil {
		return false
	}
	return t.Walkable()
}

// SetTileType replaces the tile wholesale. Writes outside the grid are ignored.
func (g *Grid) SetTileType(x, y int, kind Kind) {
	if !g.InBounds(x, y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tiles[g.index(x, y)] = NewTile(kind)
}

// SetTileElevation only affects kinds that carry an elevation.
func (g *Grid) SetTileElevation(x, y int, elevation uint32) {
	if !g.InBounds(x, y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.index(x, y)
	t := g.tiles[i]
	if !t.Kind.HasElevation() {
		return
	}
	g.tiles[i] = NewTileWithElevation(t.Kind, elevation)
}

func (g *Grid) SetBoundaryMargin(margin int) {
	if margin <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if x < margin || y < margin || x >= g.size-margin || y >= g.size-margin {
				g.tiles[g.index(x, y)] = NewTile(KindBoundary)
			}
		}
	}
}

// RaiseEarth lifts every Earth tile by one unit.
func (g *Grid) RaiseEarth() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, t := range g.tiles {
		if t.Kind == KindEarth {
			g.tiles[i] = NewTileWithElevation(KindEarth, t.Elevation+1)
		}
	}
}

func (g *Grid) Census() map[Kind]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := map[Kind]int{}
	for _, t := range g.tiles {
		out[t.Kind]++
	}
	return out
}

// Edit runs fn with exclusive access to the grid. fn must not call other
// Grid methods.
func (g *Grid) Edit(fn func(size int, tiles []Tile)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.size, g.tiles)
}

// HighestPoint returns the tallest Earth cell. Mountains are skipped. Ties
// keep the first cell in row-major order.
func (g *Grid) HighestPoint() (Point, uint32, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var (
		best  Point
		top   uint32
		found bool
	)
	for i, t := range g.tiles {
		if t.Kind != KindEarth {
			continue
		}
		if e := t.Height(); !found || e > top {
			best = Point{X: i % g.size, Y: i / g.size}
			top = e
			found = true
		}
	}
	return best, top, found
}

// BoundaryWater returns the first water cell on the outer edge of the grid.
func (g *Grid) BoundaryWater() (Point, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if x != 0 && y != 0 && x != g.size-1 && y != g.size-1 {
				continue
			}
			if g.tiles[g.index(x, y)].Kind == KindWater {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}
