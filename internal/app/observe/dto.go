package observe

import (
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

type TileRequest struct {
	X int
	Y int
}

type TileResponse struct {
	Pos       terrain.Point `json:"pos"`
	Kind      terrain.Kind  `json:"kind"`
	Elevation *uint32       `json:"elevation,omitempty"`
	Walkable  bool          `json:"walkable"`
	Item      *items.Item   `json:"item,omitempty"`
	Agents    []string      `json:"agents"`
}

type CostRequest struct {
	From terrain.Point
	To   terrain.Point
}

type CostResponse struct {
	From                terrain.Point `json:"from"`
	To                  terrain.Point `json:"to"`
	Distance            float64       `json:"distance"`
	ElevationDifference float64       `json:"elevation_difference"`
	Cost                float64       `json:"cost"`
}

type NeighborsResponse struct {
	Center    terrain.Point   `json:"center"`
	Neighbors []terrain.Point `json:"neighbors"`
	Walkable  []terrain.Point `json:"walkable"`
}

type CensusResponse struct {
	Size   int                  `json:"size"`
	Kinds  map[terrain.Kind]int `json:"kinds"`
	Items  int                  `json:"items"`
	Agents int                  `json:"agents"`
}

type ItemsNearRequest struct {
	X      int
	Y      int
	Radius int
}

type ItemsNearResponse struct {
	Center terrain.Point      `json:"center"`
	Radius int                `json:"radius"`
	Items  []items.PlacedItem `json:"items"`
}

type AgentsResponse struct {
	Player string       `json:"player,omitempty"`
	Agents []agent.View `json:"agents"`
}
