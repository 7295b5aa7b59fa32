package agent

import (
	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

// ItemStore is the part of the item index a forager reads and mutates.
type ItemStore interface {
	Get(x, y int) (items.Item, bool)
	Take(x, y int) (items.Item, bool)
}

type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StatePursuing State = "pursuing"
	StatePicking  State = "picking"
	StateStepping State = "stepping"
	stateDone     State = "done"
)

const pickupReach = 2.0

// Report describes what one forager tick did.
type Report struct {
	Path    []State
	Goal    *terrain.Point
	Picked  *items.Item
	Evicted *items.Item
	Move    MoveOutcome
}

// Forager drives non-player characters with a fixed-priority policy: look
// at the walkable neighbours for food, grab it when in reach, then take one
// forward step. It never plans past the neighbourhood.
type Forager struct {
	Mover Mover
}

func (f Forager) Tick(grid Terrain, store ItemStore, c *Character) (Report, error) {
	if c.IsPlayer {
		return Report{Path: []State{StateIdle}}, nil
	}

	var (
		report Report
		goal   terrain.Point
	)
	state := StateScanning
	for state != stateDone {
		report.Path = append(report.Path, state)
		switch state {
		case StateScanning:
			p, ok := f.scan(grid, store, c)
			if !ok {
				state = StateStepping
				continue
			}
			goal = p
			report.Goal = &p
			state = StatePursuing

		case StatePursuing:
			state = f.pursue(c, goal)

		case StatePicking:
			picked, evicted := f.pickUp(store, c, goal)
			report.Picked = picked
			report.Evicted = evicted
			state = StateStepping

		case StateStepping:
			out, err := f.Mover.StepForwardChecked(grid, c)
			if err != nil {
				return report, err
			}
			report.Move = out
			state = stateDone
		}
	}
	return report, nil
}

// scan returns the first walkable neighbour holding food.
func (f Forager) scan(grid Terrain, store ItemStore, c *Character) (terrain.Point, bool) {
	for _, p := range grid.Neighbors(c.X, c.Y) {
		if !grid.IsNotWater(p.X, p.Y) {
			continue
		}
		if it, ok := store.Get(p.X, p.Y); ok && it.IsFood() {
			return p, true
		}
	}
	return terrain.Point{}, false
}

func (f Forager) pursue(c *Character, goal terrain.Point) State {
	dx, dy := goal.X-c.X, goal.Y-c.Y
	if d, ok := terrain.DirectionFromOffset(dx, dy); ok {
		c.Face(d)
	}
	if dx == 0 && dy == 0 {
		return StatePicking
	}
	if terrain.Distance(c.X, c.Y, goal.X, goal.Y) < pickupReach {
		c.Teleport(goal.X, goal.Y)
		return StatePicking
	}
	return StateStepping
}

// pickUp bags the food at goal. A bag that fills up gives up its least
// nutritious food to keep a slot free.
func (f Forager) pickUp(store ItemStore, c *Character, goal terrain.Point) (picked, evicted *items.Item) {
	it, ok := store.Take(goal.X, goal.Y)
	if !ok || !it.IsFood() {
		return nil, nil
	}
	c.Bag.Add(it)
	picked = &it
	if c.Bag.IsFull() {
		if out, ok := c.Bag.RemoveLeastNutritious(); ok {
			evicted = &out
		}
	}
	f.Mover.TurnRandomly(c)
	return picked, evicted
}
