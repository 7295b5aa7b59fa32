package items

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

var ErrOutOfBounds = errors.New("item cell out of bounds")

type PlacedItem struct {
	Item Item `json:"item"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
}

// WalkFunc reports whether a cell may hold an item.
type WalkFunc func(x, y int) bool

// Index maps each cell of an N×N world to at most one placed item. It is
// laid out like the terrain grid but does not depend on it.
type Index struct {
	mu    sync.RWMutex
	size  int
	cells []*PlacedItem
	count int
}

func NewIndex(size int) (*Index, error) {
	if size <= 0 {
		return nil, fmt.Errorf("item index size %d: %w", size, ErrOutOfBounds)
	}
	return &Index{size: size, cells: make([]*PlacedItem, size*size)}, nil
}

func (ix *Index) Size() int {
	return ix.size
}

func (ix *Index) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < ix.size && y < ix.size
}

// Place stores item at (x, y), replacing whatever was there.
func (ix *Index) Place(item Item, x, y int) error {
	if !ix.inBounds(x, y) {
		return fmt.Errorf("place (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	i := y*ix.size + x
	if ix.cells[i] == nil {
		ix.count++
	}
	ix.cells[i] = &PlacedItem{Item: item, X: x, Y: y}
	return nil
}

func (ix *Index) Get(x, y int) (Item, bool) {
	if !ix.inBounds(x, y) {
		return Item{}, false
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p := ix.cells[y*ix.size+x]
	if p == nil {
		return Item{}, false
	}
	return p.Item, true
}

// Take removes and returns the item at (x, y).
func (ix *Index) Take(x, y int) (Item, bool) {
	if !ix.inBounds(x, y) {
		return Item{}, false
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	i := y*ix.size + x
	p := ix.cells[i]
	if p == nil {
		return Item{}, false
	}
	ix.cells[i] = nil
	ix.count--
	return p.Item, true
}

func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.count
}

// Within lists placed items inside the square of the given radius around (x, y).
func (ix *Index) Within(x, y, radius int) []PlacedItem {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := []PlacedItem{}
	for cy := y - radius; cy <= y+radius; cy++ {
		for cx := x - radius; cx <= x+radius; cx++ {
			if !ix.inBounds(cx, cy) {
				continue
			}
			if p := ix.cells[cy*ix.size+cx]; p != nil {
				out = append(out, *p)
			}
		}
	}
	return out
}

// PopulateRandom makes count attempts at placing a random entry of table on
// a uniformly chosen cell, skipping cells walk rejects. It returns how many
// attempts placed an item; a later placement may overwrite an earlier one.
func (ix *Index) PopulateRandom(rng *rand.Rand, count int, table Table, walk WalkFunc) (int, error) {
	if table.Len() == 0 {
		return 0, ErrEmptyTable
	}
	placed := 0
	for i := 0; i < count; i++ {
		x, y := rng.Intn(ix.size), rng.Intn(ix.size)
		if walk != nil && !walk(x, y) {
			continue
		}
		item, err := table.Random(rng)
		if err != nil {
			return placed, err
		}
		if err := ix.Place(item, x, y); err != nil {
			return placed, err
		}
		placed++
	}
	return placed, nil
}
