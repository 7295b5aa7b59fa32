package simulation

import (
	"errors"
	"strings"

	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/items"
	"islandsim/internal/domain/terrain"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInputBusy      = errors.New("command queue is full")
	ErrNoPlayer       = errors.New("world has no player")
)

type CommandType string

const (
	CommandStep       CommandType = "step"
	CommandTurnLeft   CommandType = "turn_left"
	CommandTurnRight  CommandType = "turn_right"
	CommandFace       CommandType = "face"
	CommandRest       CommandType = "rest"
	CommandEat        CommandType = "eat"
	CommandPickUp     CommandType = "pickup"
	CommandRaiseEarth CommandType = "raise_earth"
)

type Command struct {
	Type      CommandType `json:"type"`
	Direction string      `json:"direction,omitempty"`
}

// Validate checks the command shape without touching the world.
func (c Command) Validate() error {
	switch c.Type {
	case CommandStep, CommandTurnLeft, CommandTurnRight, CommandRest, CommandEat, CommandPickUp, CommandRaiseEarth:
		return nil
	case CommandFace:
		_, err := terrain.ParseDirection(c.Direction)
		return err
	}
	return ErrUnknownCommand
}

func ParseCommandType(raw string) CommandType {
	return CommandType(strings.ToLower(strings.TrimSpace(raw)))
}

type CommandResult struct {
	Command Command            `json:"command"`
	Move    *agent.MoveOutcome `json:"move,omitempty"`
	Item    *items.Item        `json:"item,omitempty"`
	Err     string             `json:"error,omitempty"`
}
