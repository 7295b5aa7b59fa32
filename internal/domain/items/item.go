package items

import "fmt"

type Kind string

const (
	KindFood   Kind = "food"
	KindUseful Kind = "useful"
)

// Item is either food, valued by nutrition, or a useful tool, valued by use.
type Item struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

func Food(name string, nutrition uint32) Item {
	return Item{Kind: KindFood, Name: name, Value: nutrition}
}

func Useful(name string, use uint32) Item {
	return Item{Kind: KindUseful, Name: name, Value: use}
}

func (i Item) IsFood() bool {
	return i.Kind == KindFood
}

func (i Item) NutritionalValue() uint32 {
	if i.Kind != KindFood {
		return 0
	}
	return i.Value
}

func (i Item) UseValue() uint32 {
	if i.Kind != KindUseful {
		return 0
	}
	return i.Value
}

func (i Item) String() string {
	switch i.Kind {
	case KindFood:
		return fmt.Sprintf("%s (nutrition %d)", i.Name, i.Value)
	case KindUseful:
		return fmt.Sprintf("%s (use %d)", i.Name, i.Value)
	}
	return i.Name
}
