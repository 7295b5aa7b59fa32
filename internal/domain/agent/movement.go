package agent

import (
	"fmt"
	"math/rand"

	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

// Terrain is the read surface of the world the movement rules need.
type Terrain interface {
	Tile(x, y int) (terrain.Tile, error)
	Neighbors(x, y int) []terrain.Point
	Cost(x1, y1, x2, y2 int) (float64, error)
	IsNotWater(x, y int) bool
}

type MoveResult string

const (
	MoveCommitted MoveResult = "moved"
	MoveReflected MoveResult = "reflected"
	MoveRested    MoveResult = "rested"
)

type MoveOutcome struct {
	Result    MoveResult    `json:"result"`
	From      terrain.Point `json:"from"`
	To        terrain.Point `json:"to"`
	Cost      float64       `json:"cost"`
	Spent     uint32        `json:"spent"`
	Ate       *items.Item   `json:"ate,omitempty"`
	Corrected bool          `json:"corrected,omitempty"`
}

type Mover struct {
	Rand *rand.Rand
}

func (m Mover) coin() bool {
	if m.Rand == nil {
		return rand.Intn(2) == 0
	}
	return m.Rand.Intn(2) == 0
}

// TurnRandomly turns the character left or right with equal odds.
func (m Mover) TurnRandomly(c *Character) {
	if m.coin() {
		c.TurnLeft()
	} else {
		c.TurnRight()
	}
}

// Step tries to move c one cell towards dir.
//
// The rim of the world and anything past it reflect the character instead
// of moving it. A move costs the whole part of grid.Cost in energy; when
// energy runs short the character eats its first food and moves anyway,
// or rests in place when the bag holds no food. Energy never drops below 0.
func (m Mover) Step(grid Terrain, c *Character, dir terrain.Direction) (MoveOutcome, error) {
	from := c.Position()
	if _, err := grid.Tile(from.X, from.Y); err != nil {
		return MoveOutcome{}, fmt.Errorf("character %s: %w", c.Name, err)
	}
	dx, dy := dir.Offset()
	to := terrain.Point{X: from.X + dx, Y: from.Y + dy}
	out := MoveOutcome{From: from, To: from}

	dest, err := grid.Tile(to.X, to.Y)
	if err != nil || dest.Kind == terrain.KindBoundary {
		c.Facing = dir.Opposite()
		m.TurnRandomly(c)
		out.Result = MoveReflected
		return out, nil
	}

	cost, err := grid.Cost(from.X, from.Y, to.X, to.Y)
	if err != nil {
		return MoveOutcome{}, err
	}
	out.Cost = cost
	units := uint32(cost)

	if c.Energy < units {
		food, ok := c.EatFirstFood()
		if !ok {
			c.Rest()
			out.Result = MoveRested
			return out, nil
		}
		out.Ate = &food
	}

	out.Spent = c.spend(units)
	c.Teleport(to.X, to.Y)
	out.To = to
	out.Result = MoveCommitted
	return out, nil
}

func (m Mover) StepForward(grid Terrain, c *Character) (MoveOutcome, error) {
	return m.Step(grid, c, c.Facing)
}

// StepForwardChecked steps forward and, if that left the character on water
// or the rim, turns around and steps once more.
func (m Mover) StepForwardChecked(grid Terrain, c *Character) (MoveOutcome, error) {
	out, err := m.StepForward(grid, c)
	if err != nil {
		return out, err
	}
	here, err := grid.Tile(c.X, c.Y)
	if err != nil {
		return out, err
	}
	if here.Kind != terrain.KindBoundary && here.Kind != terrain.KindWater {
		return out, nil
	}
	c.Facing = c.Facing.Opposite()
	back, err := m.StepForward(grid, c)
	if err != nil {
		return out, err
	}
	back.From = out.From
	back.Corrected = true
	back.Cost += out.Cost
	back.Spent += out.Spent
	if back.Ate == nil {
		back.Ate = out.Ate
	}
	return back, nil
}
