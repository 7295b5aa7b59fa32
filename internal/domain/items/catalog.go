package items

import (
	"errors"
	"math/rand"
)

var ErrEmptyTable = errors.New("empty item table")

// Definition is one placeable entry of a catalog table.
type Definition struct {
	Name  string
	Value uint32
}

type Table struct {
	Kind        Kind
	Definitions []Definition
}

func (t Table) Len() int {
	return len(t.Definitions)
}

func (t Table) Item(i int) Item {
	d := t.Definitions[i]
	return Item{Kind: t.Kind, Name: d.Name, Value: d.Value}
}

// Random draws one entry uniformly.
func (t Table) Random(rng *rand.Rand) (Item, error) {
	if len(t.Definitions) == 0 {
		return Item{}, ErrEmptyTable
	}
	return t.Item(rng.Intn(len(t.Definitions))), nil
}

// Some fruits appear twice with different values; both entries are drawable.
var FoodTable = Table{
	Kind: KindFood,
	Definitions: []Definition{
		{Name: "Apple", Value: 10},
		{Name: "Banana", Value: 15},
		{Name: "Orange", Value: 20},
		{Name: "Grapes", Value: 25},
		{Name: "Strawberry", Value: 30},
		{Name: "Blueberry", Value: 35},
		{Name: "Raspberry", Value: 40},
		{Name: "Blackberry", Value: 45},
		{Name: "Pineapple", Value: 50},
		{Name: "Watermelon", Value: 55},
		{Name: "Kiwi", Value: 60},
		{Name: "Mango", Value: 65},
		{Name: "Peach", Value: 70},
		{Name: "Plum", Value: 75},
		{Name: "Cherry", Value: 80},
		{Name: "Pear", Value: 85},
		{Name: "Pomegranate", Value: 90},
		{Name: "Apricot", Value: 95},
		{Name: "Cantaloupe", Value: 100},
		{Name: "Honeydew", Value: 105},
		{Name: "Lemon", Value: 110},
		{Name: "Lime", Value: 115},
		{Name: "Coconut", Value: 120},
		{Name: "Grapefruit", Value: 125},
		{Name: "Tangerine", Value: 130},
		{Name: "Nectarine", Value: 135},
		{Name: "Persimmon", Value: 140},
		{Name: "Starfruit", Value: 145},
		{Name: "Passionfruit", Value: 150},
		{Name: "Dragonfruit", Value: 155},
		{Name: "Guava", Value: 160},
		{Name: "Papaya", Value: 165},
		{Name: "Lychee", Value: 170},
		{Name: "Jackfruit", Value: 175},
		{Name: "Durian", Value: 180},
		{Name: "Mangosteen", Value: 185},
		{Name: "Kiwi", Value: 190},
		{Name: "Pineapple", Value: 195},
		{Name: "Watermelon", Value: 200},
		{Name: "EnergyDrink", Value: 200},
	},
}

var UsefulTable = Table{
	Kind: KindUseful,
	Definitions: []Definition{
		{Name: "Medkit", Value: 50},
		{Name: "Axe", Value: 45},
		{Name: "Shovel", Value: 50},
		{Name: "Pickaxe", Value: 55},
		{Name: "Knife", Value: 60},
		{Name: "Sword", Value: 65},
		{Name: "Shield", Value: 70},
		{Name: "Bow", Value: 75},
		{Name: "Crossbow", Value: 80},
		{Name: "Arrows", Value: 85},
		{Name: "Bolts", Value: 90},
		{Name: "Quiver", Value: 95},
	},
}
