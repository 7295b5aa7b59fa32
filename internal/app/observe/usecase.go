package observe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"islandsim/internal/app/ports"
	"islandsim/internal/app/simulation"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const MaxItemRadius = 32

// UseCase answers read-only questions about a running world. Every query
// goes through the locks of the grid, index and roster, so it is safe to
// call while the simulation loop ticks.
type UseCase struct {
	World     *simulation.World
	Snapshots ports.SnapshotReader
}

func (u UseCase) Tile(_ context.Context, req TileRequest) (TileResponse, error) {
	tile, err := u.World.Grid.Tile(req.X, req.Y)
	if err != nil {
		return TileResponse{}, err
	}
	resp := TileResponse{
		Pos:      terrain.Point{X: req.X, Y: req.Y},
		Kind:     tile.Kind,
		Walkable: tile.Walkable(),
		Agents:   []string{},
	}
	if e, ok := tile.ElevationValue(); ok {
		resp.Elevation = &e
	}
	if it, ok := u.World.Items.Get(req.X, req.Y); ok {
		resp.Item = &it
	}
	for _, v := range u.World.Roster.At(req.X, req.Y) {
		resp.Agents = append(resp.Agents, v.Name)
	}
	return resp, nil
}

func (u UseCase) Cost(_ context.Context, req CostRequest) (CostResponse, error) {
	g := u.World.Grid
	diff, err := g.ElevationDifference(req.From.X, req.From.Y, req.To.X, req.To.Y)
	if err != nil {
		return CostResponse{}, err
	}
	cost, err := g.Cost(req.From.X, req.From.Y, req.To.X, req.To.Y)
	if err != nil {
		return CostResponse{}, err
	}
	return CostResponse{
		From:                req.From,
		To:                  req.To,
		Distance:            g.Distance(req.From.X, req.From.Y, req.To.X, req.To.Y),
		ElevationDifference: diff,
		Cost:                cost,
	}, nil
}

func (u UseCase) Neighbors(_ context.Context, req TileRequest) (NeighborsResponse, error) {
	g := u.World.Grid
	if _, err := g.Tile(req.X, req.Y); err != nil {
		return NeighborsResponse{}, err
	}
	resp := NeighborsResponse{
		Center:    terrain.Point{X: req.X, Y: req.Y},
		Neighbors: g.Neighbors(req.X, req.Y),
		Walkable:  []terrain.Point{},
	}
	for _, p := range resp.Neighbors {
		if g.IsNotWater(p.X, p.Y) {
			resp.Walkable = append(resp.Walkable, p)
		}
	}
	return resp, nil
}

func (u UseCase) Census(_ context.Context) (CensusResponse, error) {
	return CensusResponse{
		Size:   u.World.Grid.Size(),
		Kinds:  u.World.Grid.Census(),
		Items:  u.World.Items.Count(),
		Agents: u.World.Roster.Count(),
	}, nil
}

func (u UseCase) ItemsNear(_ context.Context, req ItemsNearRequest) (ItemsNearResponse, error) {
	if req.Radius < 0 || req.Radius > MaxItemRadius {
		return ItemsNearResponse{}, fmt.Errorf("%w: radius must be within [0,%d]", ErrInvalidRequest, MaxItemRadius)
	}
	if _, err := u.World.Grid.Tile(req.X, req.Y); err != nil {
		return ItemsNearResponse{}, err
	}
	return ItemsNearResponse{
		Center: terrain.Point{X: req.X, Y: req.Y},
		Radius: req.Radius,
		Items:  u.World.Items.Within(req.X, req.Y, req.Radius),
	}, nil
}

func (u UseCase) Agents(_ context.Context) (AgentsResponse, error) {
	return AgentsResponse{
		Player: u.World.Player,
		Agents: u.World.Roster.Views(),
	}, nil
}

func (u UseCase) Agent(_ context.Context, name string) (agent.View, error) {
	if strings.TrimSpace(name) == "" {
		return agent.View{}, ErrInvalidRequest
	}
	return u.World.Roster.View(agent.ProperName(name))
}

func (u UseCase) LatestSnapshot(ctx context.Context) (ports.Snapshot, error) {
	if u.Snapshots == nil {
		return ports.Snapshot{}, ports.ErrNotFound
	}
	return u.Snapshots.Latest(ctx)
}
