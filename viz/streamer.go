package viz

import (
	"github.com/skuggalabs/skuggi/fov"
	"github.com/skuggalabs/skuggi/models"
)

// Streamer forwards draw commands to a function, usually one that queues them
// on a client connection. A nil Send drops everything.
type Streamer struct {
	Send func(Command)
}

func (s *Streamer) DrawRect(plane fov.Plane, depth float32, r fov.Rect, c fov.Color) {
	if s.Send == nil {
		return
	}
	s.Send(rectCommand(plane, depth, r, c))
}

func (s *Streamer) DrawLine(from, to models.Vec3f, c fov.Color) {
	if s.Send == nil {
		return
	}
	s.Send(lineCommand(from, to, c))
}
