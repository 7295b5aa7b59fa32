package terrain

type Kind string

const (
	KindBoundary Kind = "boundary"
	KindMountain Kind = "mountain"
	KindForest   Kind = "forest"
	KindEarth    Kind = "earth"
	KindBeach    Kind = "beach"
	KindWater    Kind = "water"
	KindRiver    Kind = "river"
)

var allKinds = []Kind{KindBoundary, KindMountain, KindForest, KindEarth, KindBeach, KindWater, KindRiver}

func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// HasElevation reports whether tiles of this kind carry an elevation.
func (k Kind) HasElevation() bool {
	return k == KindEarth || k == KindMountain
}

// Walkable is false for water, rivers and the world rim.
func (k Kind) Walkable() bool {
	switch k {
	case KindWater, KindRiver, KindBoundary:
		return false
	default:
		return k.Valid()
	}
}

type Tile struct {
	Kind         Kind   `json:"kind"`
	Elevation    uint32 `json:"elevation"`
	IsSafeZone   bool   `json:"is_safe_zone,omitempty"`
	IsSpawnPoint bool   `json:"is_spawn_point,omitempty"`
}

// NewTile builds a tile at elevation 0. Only Earth and Mountain keep an
// elevation; every other kind reports none.
func NewTile(kind Kind) Tile {
	return Tile{Kind: kind}
}

func NewTileWithElevation(kind Kind, elevation uint32) Tile {
	t := Tile{Kind: kind}
	if kind.HasElevation() {
		t.Elevation = elevation
	}
	return t
}

func (t Tile) ElevationValue() (uint32, bool) {
	if !t.Kind.HasElevation() {
		return 0, false
	}
	return t.Elevation, true
}

// Height is the elevation used by the cost model; tiles without one sit at 0.
func (t Tile) Height() uint32 {
	e, _ := t.ElevationValue()
	return e
}

func (t Tile) Walkable() bool {
	return t.Kind.Walkable()
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
