package simulation

import (
	"fmt"
	"math/rand"

	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

// World bundles the terrain, the item index and the characters living on it.
type World struct {
	Grid   *terrain.Grid
	Items  *items.Index
	Roster *agent.Roster
	Player string
}

type Spawn struct {
	Name     string
	Race     agent.Race
	X        int
	Y        int
	IsPlayer bool
}

type BootstrapConfig struct {
	FoodCount   int
	UsefulCount int
	Spawns      []Spawn
}

const referenceSize = 2048

// DefaultBootstrap uses the item counts and spawn spots of a 2048 island.
// Spawns scale with size and item counts with area.
func DefaultBootstrap(size int) BootstrapConfig {
	scale := func(v int) int { return v * size / referenceSize }
	area := func(v int) int {
		return int(int64(v) * int64(size) * int64(size) / (referenceSize * referenceSize))
	}
	return BootstrapConfig{
		FoodCount:   area(28000),
		UsefulCount: area(1000),
		Spawns: []Spawn{
			{Name: "Kevin", Race: agent.RacePlayer, X: scale(500), Y: scale(500), IsPlayer: true},
			{Name: "Grum", Race: agent.RaceTroll, X: scale(1000), Y: scale(1000)},
		},
	}
}

// Bootstrap scatters items over the walkable cells of grid and spawns the
// configured characters.
func Bootstrap(grid *terrain.Grid, cfg BootstrapConfig, rng *rand.Rand) (*World, error) {
	index, err := items.NewIndex(grid.Size())
	if err != nil {
		return nil, err
	}
	if _, err := index.PopulateRandom(rng, cfg.FoodCount, items.FoodTable, grid.IsNotWater); err != nil {
		return nil, fmt.Errorf("place food: %w", err)
	}
	if _, err := index.PopulateRandom(rng, cfg.UsefulCount, items.UsefulTable, grid.IsNotWater); err != nil {
		return nil, fmt.Errorf("place useful items: %w", err)
	}

	w := &World{Grid: grid, Items: index, Roster: agent.NewRoster()}
	for _, s := range cfg.Spawns {
		if !grid.InBounds(s.X, s.Y) {
			return nil, fmt.Errorf("spawn %s at (%d,%d): %w", s.Name, s.X, s.Y, terrain.ErrOutOfBounds)
		}
		c := agent.NewCharacter(s.Name, s.Race, agent.DefaultStats(), s.X, s.Y, s.IsPlayer)
		if err := w.Roster.Add(c); err != nil {
			return nil, err
		}
		if s.IsPlayer && w.Player == "" {
			w.Player = c.Name
		}
	}
	return w, nil
}
