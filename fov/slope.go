package fov

import "math"

// inf seeds the unbounded halves of the canonical view cones.
var inf = float32(math.Inf(1))

// SlopeRect is the angular extent of a view cone along the two transverse
// axes. Bounds are stored as depth-over-offset ratios, so turning a bound
// into a transverse coordinate at some depth is a single division and the
// canonical seeds are drawn from {-Inf, -1, 1, +Inf}. A SlopeRect is never
// mutated; narrowing produces new values.
type SlopeRect struct {
	Sx float32
	Sy float32
	Ex float32
	Ey float32
}

// project returns the origin-relative rectangle the cone covers on the plane
// that sits numer cells from the origin along the depth axis. numer is signed:
// reverse-depth sectors project with a negative numerator, which is what
// swaps the roles of the start and end bounds.
func (s SlopeRect) project(numer float32) Rect {
	// A zero bound would project to infinity. Bounds are seeded from
	// {-Inf, -1, 1, +Inf} and re-derived from finite plane coordinates, so a
	// zero here means the projection math itself is broken.
	if s.Sx == 0 || s.Sy == 0 || s.Ex == 0 || s.Ey == 0 {
		panic("fov: slope bound is zero")
	}

	ax, bx := numer/s.Sx, numer/s.Ex
	ay, by := numer/s.Sy, numer/s.Ey

	return Rect{
		Sx: min32(ax, bx),
		Sy: min32(ay, by),
		Ex: max32(ax, bx),
		Ey: max32(ay, by),
	}
}

// unproject turns a remaining view rectangle on the plane at numer back into
// a cone. Edges that landed exactly on an axis divide to the proper signed
// infinity because min32/max32 preserved the sign of their zero.
func unproject(r Rect, numer float32) SlopeRect {
	return SlopeRect{
		Sx: numer / r.Sx,
		Sy: numer / r.Sy,
		Ex: numer / r.Ex,
		Ey: numer / r.Ey,
	}
}

// occluderFootprint is the shadow an occluded cell at transverse indices
// (u, v) casts on the near-face plane of depth layer d, origin-relative.
//
// The base footprint is the cell's unit square. Each edge is then extended to
// cover the far-face silhouette: projecting the far face onto the near plane
// scales transverse offsets by (d-0.5)/(d+0.5), so an edge on the positive
// side of the origin axis drags the shadow down and an edge on the negative
// side drags it up. Edges straddling the axis stay put. Without the far-face
// extension, sightlines grazing a corner leak between diagonally adjacent
// occluders.
func occluderFootprint(u, v int, ou, ov float32, d int) Rect {
	f := (float32(d) - 0.5) / (float32(d) + 0.5)

	loU := float32(u) - 0.5 - ou
	hiU := float32(u) + 0.5 - ou
	loV := float32(v) - 0.5 - ov
	hiV := float32(v) + 0.5 - ov

	return Rect{
		Sx: min32(loU, loU*f),
		Sy: min32(loV, loV*f),
		Ex: max32(hiU, hiU*f),
		Ey: max32(hiV, hiV*f),
	}
}
