package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"islandsim/internal/app/observe"
	"islandsim/internal/app/ports"
	"islandsim/internal/app/simulation"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var ErrInvalidQuery = errors.New("invalid query parameter")

const defaultItemRadius = 5

type commandSubmitter interface {
	Submit(cmd simulation.Command) error
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	ObserveUC observe.UseCase
	Commands  commandSubmitter
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	world := s.Group("/api/world")
	world.GET("/tile", h.tile)
	world.GET("/cost", h.cost)
	world.GET("/neighbors", h.neighbors)
	world.GET("/census", h.census)
	world.GET("/items", h.itemsNear)
	world.GET("/snapshot", h.snapshot)

	s.GET("/api/agents", h.agents)
	s.GET("/api/agents/:name", h.agent)
	s.POST("/api/player/command", h.command)

	s.GET("/ops/kpi", h.kpi)
}

type commandRequest struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

type commandAccepted struct {
	Accepted bool               `json:"accepted"`
	Command  simulation.Command `json:"command"`
}

func (h Handler) tile(c context.Context, ctx *app.RequestContext) {
	x, y, err := queryPoint(ctx, "x", "y")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ObserveUC.Tile(c, observe.TileRequest{X: x, Y: y})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) cost(c context.Context, ctx *app.RequestContext) {
	x1, y1, err := queryPoint(ctx, "x1", "y1")
	if err != nil {
		writeError(ctx, err)
		return
	}
	x2, y2, err := queryPoint(ctx, "x2", "y2")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ObserveUC.Cost(c, observe.CostRequest{
		From: terrain.Point{X: x1, Y: y1},
		To:   terrain.Point{X: x2, Y: y2},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) neighbors(c context.Context, ctx *app.RequestContext) {
	x, y, err := queryPoint(ctx, "x", "y")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ObserveUC.Neighbors(c, observe.TileRequest{X: x, Y: y})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) census(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Census(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) itemsNear(c context.Context, ctx *app.RequestContext) {
	x, y, err := queryPoint(ctx, "x", "y")
	if err != nil {
		writeError(ctx, err)
		return
	}
	radius := defaultItemRadius
	if raw := strings.TrimSpace(string(ctx.Query("radius"))); raw != "" {
		if radius, err = strconv.Atoi(raw); err != nil {
			writeError(ctx, fmt.Errorf("%w: radius", ErrInvalidQuery))
			return
		}
	}
	resp, err := h.ObserveUC.ItemsNear(c, observe.ItemsNearRequest{X: x, Y: y, Radius: radius})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) snapshot(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.LatestSnapshot(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) agents(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Agents(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) agent(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Agent(c, ctx.Param("name"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) command(_ context.Context, ctx *app.RequestContext) {
	if h.Commands == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "simulation not running")
		return
	}
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	cmd := simulation.Command{
		Type:      simulation.ParseCommandType(body.Type),
		Direction: strings.TrimSpace(body.Direction),
	}
	if err := h.Commands.Submit(cmd); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, commandAccepted{Accepted: true, Command: cmd})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func queryPoint(ctx *app.RequestContext, xKey, yKey string) (int, int, error) {
	x, err := queryInt(ctx, xKey)
	if err != nil {
		return 0, 0, err
	}
	y, err := queryInt(ctx, yKey)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidQuery, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, key)
	}
	return n, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, simulation.ErrUnknownCommand),
		errors.Is(err, terrain.ErrUnknownDirection):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, simulation.ErrInputBusy):
		writeErrorBody(ctx, consts.StatusTooManyRequests, "input_busy", err.Error())
	case errors.Is(err, terrain.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusNotFound, "out_of_bounds", err.Error())
	case errors.Is(err, agent.ErrCharacterNotFound),
		errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
