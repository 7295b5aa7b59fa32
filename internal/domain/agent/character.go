package agent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"

	"github.com/google/uuid"
)

type Race string

const (
	RacePlayer Race = "player"
	RaceHuman  Race = "human"
	RaceElf    Race = "elf"
	RaceDwarf  Race = "dwarf"
	RaceGnole  Race = "gnole"
	RaceOrc    Race = "orc"
	RaceTroll  Race = "troll"
)

const (
	StartingEnergy uint32 = 1000
	RestEnergy     uint32 = 20
)

type Stats struct {
	Health       uint32 `json:"health"`
	Strength     uint32 `json:"strength"`
	Agility      uint32 `json:"agility"`
	Intelligence uint32 `json:"intelligence"`
}

func DefaultStats() Stats {
	return Stats{Health: 100, Strength: 10, Agility: 10, Intelligence: 10}
}

type Character struct {
	ID       uuid.UUID
	Name     string
	Race     Race
	Facing   terrain.Direction
	Energy   uint32
	Stats    Stats
	X        int
	Y        int
	Bag      *items.Bag
	IsPlayer bool
}

func NewCharacter(name string, race Race, stats Stats, x, y int, isPlayer bool) *Character {
	return &Character{
		ID:       uuid.New(),
		Name:     ProperName(name),
		Race:     race,
		Facing:   terrain.North,
		Energy:   StartingEnergy,
		Stats:    stats,
		X:        x,
		Y:        y,
		Bag:      items.NewBag(items.DefaultBagCapacity),
		IsPlayer: isPlayer,
	}
}

// ProperName lowercases name and capitalises its first letter.
func ProperName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}

func (c *Character) Position() terrain.Point {
	return terrain.Point{X: c.X, Y: c.Y}
}

func (c *Character) TurnLeft() {
	c.Facing = c.Facing.TurnLeft()
}

func (c *Character) TurnRight() {
	c.Facing = c.Facing.TurnRight()
}

func (c *Character) Face(d terrain.Direction) {
	c.Facing = d
}

func (c *Character) Teleport(x, y int) {
	c.X = x
	c.Y = y
}

func (c *Character) Rest() {
	c.Energy += RestEnergy
}

// EatFirstFood consumes the earliest food in the bag for its nutrition.
func (c *Character) EatFirstFood() (items.Item, bool) {
	food, ok := c.Bag.RemoveFirstFood()
	if !ok {
		return items.Item{}, false
	}
	c.Energy += food.NutritionalValue()
	return food, true
}

func (c *Character) spend(units uint32) uint32 {
	if units > c.Energy {
		spent := c.Energy
		c.Energy = 0
		return spent
	}
	c.Energy -= units
	return units
}

type View struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Race     Race          `json:"race"`
	Facing   string        `json:"facing"`
	Energy   uint32        `json:"energy"`
	Stats    Stats         `json:"stats"`
	Position terrain.Point `json:"position"`
	Bag      []items.Item  `json:"bag"`
	IsPlayer bool          `json:"is_player"`
}

func (c *Character) View() View {
	return View{
		ID:       c.ID.String(),
		Name:     c.Name,
		Race:     c.Race,
		Facing:   c.Facing.String(),
		Energy:   c.Energy,
		Stats:    c.Stats,
		Position: c.Position(),
		Bag:      c.Bag.Items(),
		IsPlayer: c.IsPlayer,
	}
}
