package terrain

import "fmt"

const DefaultChunkSize = 64

type ChunkCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chunk is a square block of tiles, row-major, anchored at
// (Coord.X*Size, Coord.Y*Size). Chunks on the far edges may be narrower.
type Chunk struct {
	Coord  ChunkCoord
	Width  int
	Height int
	Tiles  []Tile
}

func ChunkCount(gridSize, chunkSize int) int {
	if chunkSize <= 0 {
		return 0
	}
	return (gridSize + chunkSize - 1) / chunkSize
}

// Chunks cuts the grid into chunkSize blocks.
func (g *Grid) Chunks(chunkSize int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := ChunkCount(g.size, chunkSize)
	out := make([]Chunk, 0, n*n)
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			x0, y0 := cx*chunkSize, cy*chunkSize
			w := min(chunkSize, g.size-x0)
			h := min(chunkSize, g.size-y0)
			tiles := make([]Tile, 0, w*h)
			for y := y0; y < y0+h; y++ {
				tiles = append(tiles, g.tiles[g.index(x0, y):g.index(x0+w, y)]...)
			}
			out = append(out, Chunk{Coord: ChunkCoord{X: cx, Y: cy}, Width: w, Height: h, Tiles: tiles})
		}
	}
	return out
}

// AssembleGrid rebuilds a grid from the chunks produced by Chunks.
func AssembleGrid(size, chunkSize int, chunks []Chunk) (*Grid, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	n := ChunkCount(size, chunkSize)
	if len(chunks) != n*n {
		return nil, fmt.Errorf("%w: want %d chunks, got %d", ErrInvalidDimensions, n*n, len(chunks))
	}
	for _, c := range chunks {
		x0, y0 := c.Coord.X*chunkSize, c.Coord.Y*chunkSize
		if c.Width <= 0 || c.Height <= 0 || len(c.Tiles) != c.Width*c.Height ||
			x0+c.Width > size || y0+c.Height > size {
			return nil, fmt.Errorf("%w: chunk %d,%d", ErrInvalidDimensions, c.Coord.X, c.Coord.Y)
		}
		for row := 0; row < c.Height; row++ {
			for col := 0; col < c.Width; col++ {
				t := c.Tiles[row*c.Width+col]
				g.tiles[g.index(x0+col, y0+row)] = NewTileWithElevation(t.Kind, t.Elevation)
			}
		}
	}
	return g, nil
}
