package fov

import (
	"github.com/skuggalabs/skuggi/models"
)

// Axis identifies a world axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Sector is one of the 24 symmetric scan directions that together cover the
// full sphere around the origin: 3 choices of which world axis plays depth,
// 2 depth directions, and 4 transverse quadrants expressed as canonical seed
// cones split at slope 1 and -1. A sector is stateless; it only parameterizes
// the recursion.
type Sector struct {
	// The world axis the sector walks as depth. The remaining two axes are
	// transverse: (Y, Z) for X-depth, (X, Z) for Y-depth, (X, Y) for Z-depth.
	Depth Axis

	// Reverse walks the depth axis toward negative coordinates.
	Reverse bool

	// The canonical view cone the sector starts from at depth 1.
	Seed SlopeRect
}

// Sectors enumerates all 24 sectors. Adjacent sectors share boundary cells,
// which is why visibility reports are deduplicated.
func Sectors() []Sector {
	seeds := [4]SlopeRect{
		{Sx: inf, Sy: inf, Ex: 1, Ey: 1},
		{Sx: -1, Sy: inf, Ex: -inf, Ey: 1},
		{Sx: inf, Sy: -1, Ex: 1, Ey: -inf},
		{Sx: -1, Sy: -1, Ex: -inf, Ey: -inf},
	}

	sectors := make([]Sector, 0, 24)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, reverse := range []bool{false, true} {
			for _, seed := range seeds {
				sectors = append(sectors, Sector{
					Depth:   axis,
					Reverse: reverse,
					Seed:    seed,
				})
			}
		}
	}
	return sectors
}

func (s Sector) dir() float32 {
	if s.Reverse {
		return -1
	}
	return 1
}

// cell maps sector-local transverse indices and a world depth-layer index
// back onto the volume's fixed axes.
func (s Sector) cell(u, v, layer int) models.Vec3i {
	switch s.Depth {
	case AxisX:
		return models.Vec3i{X: layer, Y: u, Z: v}
	case AxisY:
		return models.Vec3i{X: u, Y: layer, Z: v}
	default:
		return models.Vec3i{X: u, Y: v, Z: layer}
	}
}

// layer is the world index of the depth layer d cells away from the origin
// cell along the sector's depth axis.
func (s Sector) layer(originCell models.Vec3i, d int) int {
	if s.Reverse {
		d = -d
	}
	switch s.Depth {
	case AxisX:
		return originCell.X + d
	case AxisY:
		return originCell.Y + d
	default:
		return originCell.Z + d
	}
}

// transverse returns the components of p on the sector's transverse axes.
func (s Sector) transverse(p models.Vec3f) (float32, float32) {
	switch s.Depth {
	case AxisX:
		return p.Y, p.Z
	case AxisY:
		return p.X, p.Z
	default:
		return p.X, p.Y
	}
}

// Plane is the coordinate plane debug rectangles for this sector are drawn
// on.
func (s Sector) Plane() Plane {
	switch s.Depth {
	case AxisX:
		return PlaneYZ
	case AxisY:
		return PlaneXZ
	default:
		return PlaneXY
	}
}
