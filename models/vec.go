package models

import "math"

// Vec3f is a position or direction in world space.
type Vec3f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func NewVec3f(x, y, z float32) Vec3f {
	return Vec3f{X: x, Y: y, Z: z}
}

func (v Vec3f) Add(o Vec3f) Vec3f {
	return Vec3f{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3f) Sub(o Vec3f) Vec3f {
	return Vec3f{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3f) EqualWithEpsilon(o Vec3f, epsilon float64) bool {
	return math.Abs(float64(v.X-o.X)) <= epsilon &&
		math.Abs(float64(v.Y-o.Y)) <= epsilon &&
		math.Abs(float64(v.Z-o.Z)) <= epsilon
}

// Cell returns the voxel cell containing v. Cells are unit cubes centered on
// integer coordinates, so the cell of a coordinate is its nearest integer.
func (v Vec3f) Cell() Vec3i {
	return Vec3i{
		X: int(math.Floor(float64(v.X) + 0.5)),
		Y: int(math.Floor(float64(v.Y) + 0.5)),
		Z: int(math.Floor(float64(v.Z) + 0.5)),
	}
}

// Vec3i is an integer voxel coordinate.
type Vec3i struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func NewVec3i(x, y, z int) Vec3i {
	return Vec3i{X: x, Y: y, Z: z}
}

func (c Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Center returns the world-space center of the cell.
func (c Vec3i) Center() Vec3f {
	return Vec3f{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
}
