package worldbuild

import (
	"time"

	"islandsim/internal/domain/terrain"
)

type Request struct {
	Seed   int64
	Size   int
	Margin int
	Noise  string
}

type Response struct {
	Grid    *terrain.Grid
	Cached  bool
	Census  map[terrain.Kind]int
	Elapsed time.Duration
}
