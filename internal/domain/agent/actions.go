package agent

import (
	"errors"

	"islandsim/internal/domain/items"
)

var (
	ErrNothingHere = errors.New("nothing to pick up here")
	ErrBagFull     = errors.New("bag is full")
	ErrNoFood      = errors.New("no food in bag")
)

// PickUpHere moves whatever item lies under c into its bag. Unlike foraging
// it accepts useful items and refuses when the bag is full.
func PickUpHere(store ItemStore, c *Character) (items.Item, error) {
	if c.Bag.IsFull() {
		return items.Item{}, ErrBagFull
	}
	if _, ok := store.Get(c.X, c.Y); !ok {
		return items.Item{}, ErrNothingHere
	}
	it, ok := store.Take(c.X, c.Y)
	if !ok {
		return items.Item{}, ErrNothingHere
	}
	c.Bag.Add(it)
	return it, nil
}

func Eat(c *Character) (items.Item, error) {
	it, ok := c.EatFirstFood()
	if !ok {
		return items.Item{}, ErrNoFood
	}
	return it, nil
}
