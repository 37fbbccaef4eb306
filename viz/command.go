// Package viz provides draw-command sinks for visibility passes. The fov
// package emits its diagnostic geometry through fov.DebugSink; the sinks here
// turn those calls into serializable commands for a viewer or a recording.
package viz

import (
	"github.com/skuggalabs/skuggi/fov"
	"github.com/skuggalabs/skuggi/models"
)

// CommandKind tells a consumer which geometry a command carries.
type CommandKind string

const (
	CommandKindRect CommandKind = "rect"
	CommandKindLine CommandKind = "line"
)

// Command is one serializable draw instruction.
type Command struct {
	Kind  CommandKind   `json:"kind"`
	Plane fov.Plane     `json:"plane,omitempty"`
	Depth float32       `json:"depth,omitempty"`
	Rect  *fov.Rect     `json:"rect,omitempty"`
	From  *models.Vec3f `json:"from,omitempty"`
	To    *models.Vec3f `json:"to,omitempty"`
	Color fov.Color     `json:"color"`
}

func rectCommand(plane fov.Plane, depth float32, r fov.Rect, c fov.Color) Command {
	return Command{
		Kind:  CommandKindRect,
		Plane: plane,
		Depth: depth,
		Rect:  &r,
		Color: c,
	}
}

func lineCommand(from, to models.Vec3f, c fov.Color) Command {
	return Command{
		Kind:  CommandKindLine,
		From:  &from,
		To:    &to,
		Color: c,
	}
}
