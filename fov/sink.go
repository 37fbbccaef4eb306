package fov

import "github.com/skuggalabs/skuggi/models"

// Plane identifies the coordinate plane a debug rectangle lies on.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneYZ Plane = "yz"
	PlaneXZ Plane = "xz"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

var (
	// ColorView outlines the view rectangle still visible at a depth layer.
	ColorView = Color{R: 0, G: 1, B: 1, A: 1}

	// ColorOccluder outlines the grown footprint of an occluding cell.
	ColorOccluder = Color{R: 1, G: 0, B: 0, A: 1}
)

// DebugSink receives diagnostic draw requests while a pass runs. The caster
// treats the sink as optional: a nil sink disables drawing. Implementations
// render, stream, or record the requests; the core never depends on how.
type DebugSink interface {
	// DrawRect outlines a rectangle on the given coordinate plane at the
	// given world depth.
	DrawRect(plane Plane, depth float32, r Rect, c Color)

	// DrawLine draws a segment between two world positions.
	DrawLine(from, to models.Vec3f, c Color)
}
