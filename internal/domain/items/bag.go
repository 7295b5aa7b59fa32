package items

const DefaultBagCapacity = 15

type Bag struct {
	capacity int
	items    []Item
}

func NewBag(capacity int) *Bag {
	if capacity <= 0 {
		capacity = DefaultBagCapacity
	}
	return &Bag{capacity: capacity, items: make([]Item, 0, capacity)}
}

func (b *Bag) Capacity() int {
	return b.capacity
}

func (b *Bag) Len() int {
	return len(b.items)
}

func (b *Bag) IsFull() bool {
	return len(b.items) >= b.capacity
}

// Add stores item unless the bag is already full.
func (b *Bag) Add(item Item) bool {
	if b.IsFull() {
		return false
	}
	b.items = append(b.items, item)
	return true
}

func (b *Bag) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Bag) HasFood() bool {
	for _, it := range b.items {
		if it.IsFood() {
			return true
		}
	}
	return false
}

// RemoveFirstFood takes out the earliest stored food item.
func (b *Bag) RemoveFirstFood() (Item, bool) {
	for i, it := range b.items {
		if it.IsFood() {
			b.removeAt(i)
			return it, true
		}
	}
	return Item{}, false
}

// RemoveLeastNutritious takes out the food with the lowest nutrition; the
// earliest one wins a tie.
func (b *Bag) RemoveLeastNutritious() (Item, bool) {
	best := -1
	for i, it := range b.items {
		if !it.IsFood() {
			continue
		}
		if best < 0 || it.NutritionalValue() < b.items[best].NutritionalValue() {
			best = i
		}
	}
	if best < 0 {
		return Item{}, false
	}
	it := b.items[best]
	b.removeAt(best)
	return it, true
}

func (b *Bag) removeAt(i int) {
	b.items = append(b.items[:i], b.items[i+1:]...)
}

func (b *Bag) TotalNutritionalValue() uint32 {
	var sum uint32
	for _, it := range b.items {
		sum += it.NutritionalValue()
	}
	return sum
}

func (b *Bag) TotalUseValue() uint32 {
	var sum uint32
	for _, it := range b.items {
		sum += it.UseValue()
	}
	return sum
}
