package agent

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrDuplicateName     = errors.New("character name already taken")
)

// Roster owns every character in the world. AutomateAll and the mutating
// methods take the write lock; views take the read lock.
type Roster struct {
	mu         sync.RWMutex
	characters []*Character
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Add(c *Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.characters {
		if existing.Name == c.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name)
		}
	}
	r.characters = append(r.characters, c)
	return nil
}

func (r *Roster) Remove(name string) (*Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.characters {
		if c.Name == name {
			r.characters = append(r.characters[:i], r.characters[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
}

func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.characters)
}

func (r *Roster) View(name string) (View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.characters {
		if c.Name == name {
			return c.View(), nil
		}
	}
	return View{}, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
}

func (r *Roster) Views() []View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]View, 0, len(r.characters))
	for _, c := range r.characters {
		out = append(out, c.View())
	}
	return out
}

func (r *Roster) At(x, y int) []View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []View{}
	for _, c := range r.characters {
		if c.X == x && c.Y == y {
			out = append(out, c.View())
		}
	}
	return out
}

func (r *Roster) Occupied(x, y int) bool {
	return len(r.At(x, y)) > 0
}

// With runs fn on the named character under the write lock.
func (r *Roster) With(name string, fn func(c *Character) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.characters {
		if c.Name == name {
			return fn(c)
		}
	}
	return fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
}

// AutomateAll runs one forager tick for every character in insertion order.
// A failing character does not stop the others; the reports keep the order
// of the roster and failures are joined into the returned error.
func (r *Roster) AutomateAll(grid Terrain, store ItemStore, f Forager) ([]Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reports := make([]Report, 0, len(r.characters))
	var errs []error
	for _, c := range r.characters {
		rep, err := f.Tick(grid, store, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
		reports = append(reports, rep)
	}
	return reports, errors.Join(errs...)
}
