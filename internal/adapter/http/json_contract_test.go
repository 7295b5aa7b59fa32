package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"islandsim/internal/app/observe"
	"islandsim/internal/app/ports"
	"islandsim/internal/app/simulation"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	kevin := agent.NewCharacter("kevin", agent.RacePlayer, agent.DefaultStats(), 1, 2, true)
	elevation := uint32(12)
	move := agent.MoveOutcome{Result: agent.MoveCommitted, From: terrain.Point{X: 1, Y: 2}, To: terrain.Point{X: 1, Y: 1}, Cost: 1, Spent: 1}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name:    "tile",
			payload: observe.TileResponse{Pos: terrain.Point{X: 1, Y: 2}, Kind: terrain.KindMountain, Elevation: &elevation, Walkable: true},
			want:    []string{"pos", "kind", "elevation", "walkable", "agents"},
			notWant: []string{"Pos", "Kind", "item"},
		},
		{
			name:    "cost",
			payload: observe.CostResponse{Distance: 1, ElevationDifference: 2, Cost: 3},
			want:    []string{"from", "to", "distance", "elevation_difference", "cost"},
			notWant: []string{"ElevationDifference"},
		},
		{
			name:    "agent",
			payload: kevin.View(),
			want:    []string{"id", "name", "race", "facing", "energy", "stats", "position", "bag", "is_player"},
			notWant: []string{"IsPlayer", "Energy"},
		},
		{
			name:    "items_near",
			payload: observe.ItemsNearResponse{Items: []items.PlacedItem{{Item: items.Food("Apple", 10), X: 1, Y: 1}}},
			want:    []string{"center", "radius", "items"},
			notWant: []string{"Items"},
		},
		{
			name:    "snapshot",
			payload: ports.Snapshot{Tick: 4, TakenAt: time.Unix(1700000000, 0).UTC(), Census: map[terrain.Kind]int{terrain.KindEarth: 1}},
			want:    []string{"tick", "taken_at", "census", "items", "agents"},
			notWant: []string{"TakenAt", "Census"},
		},
		{
			name:    "command_result",
			payload: simulation.CommandResult{Command: simulation.Command{Type: simulation.CommandStep}, Move: &move},
			want:    []string{"command", "move"},
			notWant: []string{"Move", "error"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if tc.name == "command_result" {
				moveMap := asMap(got["move"])
				if _, ok := moveMap["result"]; !ok {
					t.Fatalf("expected nested snake_case key move.result in %s", string(b))
				}
				if _, ok := moveMap["Result"]; ok {
					t.Fatalf("unexpected nested key move.Result in %s", string(b))
				}
			}
		})
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
