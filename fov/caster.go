package fov

import (
	"math"
	"time"

	"github.com/skuggalabs/skuggi/models"
)

// DefaultMaxDepth is the visibility radius, in cells, used when a caster does
// not set its own. Recursion strictly increases depth by one per layer, so
// the bound is also what guarantees termination.
const DefaultMaxDepth = 32

// Caster runs recursive shadowcasting passes against an occlusion volume.
// A pass is a pure read of (volume, origin): the caster holds no mutable
// state between passes and a single pass runs synchronously to completion.
type Caster struct {
	// The volume read during passes. It must not be mutated while a pass is
	// in flight.
	Volume *models.OcclusionVolume

	// The maximum depth layer visited per sector. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// Optional receiver for diagnostic draw requests. Nil disables drawing.
	Sink DebugSink

	// SweepDiff selects the sweep-line set-difference instead of the
	// incremental splitting one. Both cover the same region.
	SweepDiff bool
}

// ComputeFrom runs all 24 sector casts from the given origin and returns the
// deduplicated set of visible cells. The origin's own cell, when in bounds
// and unoccluded, is always part of the set.
func (c *Caster) ComputeFrom(origin models.Vec3f) *models.VisibilitySet {
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	diff := SubtractRects
	if c.SweepDiff {
		diff = SubtractRectsSweep
	}

	start := time.Now()

	p := &pass{
		volume:     c.Volume,
		visible:    models.NewVisibilitySet(c.Volume.Size()),
		origin:     origin,
		originCell: origin.Cell(),
		maxDepth:   maxDepth,
		sink:       c.Sink,
		diff:       diff,
	}

	if p.volume.InBounds(p.originCell) && !p.volume.Occluded(p.originCell) {
		p.visible.Add(p.originCell)
	}

	for _, sec := range Sectors() {
		p.cast(sec, sec.Seed, 1)
	}

	instrumentPass(time.Since(start), p.visible.Len())
	return p.visible
}

// pass is the read-only state shared by every recursion frame of one
// computation.
type pass struct {
	volume     *models.OcclusionVolume
	visible    *models.VisibilitySet
	origin     models.Vec3f
	originCell models.Vec3i
	maxDepth   int
	sink       DebugSink
	diff       func(Rect, []Rect) []Rect
}

// cast visits one depth layer of one sector with the view cone that is still
// unblocked, then recurses on whatever the layer's occluders leave over.
func (p *pass) cast(sec Sector, slope SlopeRect, depth int) {
	if depth > p.maxDepth {
		return
	}

	// The projection plane sits on the near face of the voxel layer, half a
	// cell before its centers. Projecting on the near face instead of the
	// center is what lets diagonal occluders fully block corner-grazing
	// sightlines.
	numer := sec.dir() * (float32(depth) - 0.5)

	view := slope.project(numer)
	if !view.IsValid() {
		return
	}

	ou, ov := sec.transverse(p.origin)
	layer := sec.layer(p.originCell, depth)

	p.drawRect(sec, depth, view, ou, ov, ColorView)

	// Scan the view's bounding box with one cell of margin: occluders just
	// outside the view can still shadow into it once their footprint grows.
	su := floorI(view.Sx+ou) - 1
	eu := ceilI(view.Ex+ou) + 1
	sv := floorI(view.Sy+ov) - 1
	ev := ceilI(view.Ey+ov) + 1

	var occluders []Rect
	for u := su; u <= eu; u++ {
		for v := sv; v <= ev; v++ {
			cell := sec.cell(u, v, layer)
			if !p.volume.InBounds(cell) {
				continue
			}

			if p.volume.Occluded(cell) {
				fp := occluderFootprint(u, v, ou, ov, depth)
				p.drawRect(sec, depth, fp, ou, ov, ColorOccluder)
				occluders = append(occluders, fp)
				continue
			}

			// Margin cells matter as occluders but are only visible when
			// their square reaches the view cone. The test is closed so that
			// cells sitting exactly on a sector seam, like the ones along
			// the 45 degree diagonals, are reported by the sectors sharing
			// the seam; the visibility set deduplicates them.
			cellRect := Rect{
				Sx: float32(u) - 0.5 - ou,
				Sy: float32(v) - 0.5 - ov,
				Ex: float32(u) + 0.5 - ou,
				Ey: float32(v) + 0.5 - ov,
			}
			if touches(view, cellRect) {
				p.visible.Add(cell)
			}
		}
	}

	for _, r := range p.diff(view, occluders) {
		if !r.IsValid() {
			continue
		}
		p.cast(sec, unproject(r, numer), depth+1)
	}
}

func (p *pass) drawRect(sec Sector, depth int, r Rect, ou, ov float32, c Color) {
	if p.sink == nil {
		return
	}

	planeDepth := sec.layerPlane(p.originCell, depth)
	p.sink.DrawRect(sec.Plane(), planeDepth, Rect{
		Sx: r.Sx + ou,
		Sy: r.Sy + ov,
		Ex: r.Ex + ou,
		Ey: r.Ey + ov,
	}, c)
}

// layerPlane is the world coordinate of the near-face plane of depth layer d.
func (s Sector) layerPlane(originCell models.Vec3i, d int) float32 {
	offset := s.dir() * (float32(d) - 0.5)
	switch s.Depth {
	case AxisX:
		return float32(originCell.X) + offset
	case AxisY:
		return float32(originCell.Y) + offset
	default:
		return float32(originCell.Z) + offset
	}
}

func floorI(x float32) int {
	return int(math.Floor(float64(x)))
}

func ceilI(x float32) int {
	return int(math.Ceil(float64(x)))
}
