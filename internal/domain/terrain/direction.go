package terrain

import (
	"fmt"
	"math/rand"
	"strings"
)

type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var directions = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

var directionNames = map[Direction]string{
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "northeast",
	NorthWest: "northwest",
	SouthEast: "southeast",
	SouthWest: "southwest",
}

var directionAliases = map[string]Direction{
	"n": North, "s": South, "e": East, "w": West,
	"ne": NorthEast, "nw": NorthWest, "se": SouthEast, "sw": SouthWest,
	"north-east": NorthEast, "north-west": NorthWest, "south-east": SouthEast, "south-west": SouthWest,
}

func Directions() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions)
	return out
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Offset is the grid step for one move; y grows southwards.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case NorthEast:
		return 1, -1
	case NorthWest:
		return -1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	}
	return 0, 0
}

func (d Direction) TurnRight() Direction {
	switch d {
	case North:
		return East
	case South:
		return West
	case East:
		return South
	case West:
		return North
	case NorthEast:
		return SouthEast
	case NorthWest:
		return NorthEast
	case SouthEast:
		return SouthWest
	case SouthWest:
		return NorthWest
	}
	return d
}

func (d Direction) TurnLeft() Direction {
	switch d {
	case North:
		return West
	case South:
		return East
	case East:
		return North
	case West:
		return South
	case NorthEast:
		return NorthWest
	case NorthWest:
		return SouthWest
	case SouthEast:
		return NorthEast
	case SouthWest:
		return SouthEast
	}
	return d
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case NorthEast:
		return SouthWest
	case NorthWest:
		return SouthEast
	case SouthEast:
		return NorthWest
	case SouthWest:
		return NorthEast
	}
	return d
}

// DirectionFromOffset maps the signs of (dx, dy) to a compass direction.
// A zero offset has no direction.
func DirectionFromOffset(dx, dy int) (Direction, bool) {
	sx, sy := sign(dx), sign(dy)
	for _, d := range directions {
		ox, oy := d.Offset()
		if ox == sx && oy == sy {
			return d, true
		}
	}
	return North, false
}

func ParseDirection(raw string) (Direction, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for d, name := range directionNames {
		if s == name {
			return d, nil
		}
	}
	if d, ok := directionAliases[s]; ok {
		return d, nil
	}
	return North, fmt.Errorf("%w %q", ErrUnknownDirection, raw)
}

func RandomDirection(rng *rand.Rand) Direction {
	return directions[rng.Intn(len(directions))]
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
