package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeOutOfBounds is the error type returned when a voxel coordinate falls
// outside an occlusion volume.
const ErrTypeOutOfBounds = "out_of_bounds"

// OcclusionVolume is a fixed-size 3D boolean field that records which voxels
// block line of sight. It is allocated once, populated through Mark, and then
// read-only for the duration of a visibility pass.
//
// The volume carries no internal locking. The contract is single writer, then
// many readers: callers must not mark cells while a pass is reading.
type OcclusionVolume struct {
	size          Vec3i
	cells         []bool
	occludedCount int
}

func NewOcclusionVolume(size Vec3i) (*OcclusionVolume, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, errors.New("invalid occlusion volume size").
			WithTag("size", size)
	}

	return &OcclusionVolume{
		size:  size,
		cells: make([]bool, size.X*size.Y*size.Z),
	}, nil
}

func (v *OcclusionVolume) Size() Vec3i {
	return v.size
}

func (v *OcclusionVolume) InBounds(c Vec3i) bool {
	return c.X >= 0 && c.X < v.size.X &&
		c.Y >= 0 && c.Y < v.size.Y &&
		c.Z >= 0 && c.Z < v.size.Z
}

// Mark sets the given cell as occluded. Marking a cell outside the volume is
// an error, not a silent drop.
func (v *OcclusionVolume) Mark(c Vec3i) error {
	if !v.InBounds(c) {
		return errors.New("cell is out of volume bounds").
			WithType(ErrTypeOutOfBounds).
			WithTag("cell", c).
			WithTag("size", v.size)
	}

	i := v.index(c)
	if !v.cells[i] {
		v.cells[i] = true
		v.occludedCount++
		instrumentOccludedCells(v.occludedCount)
	}
	return nil
}

// Occluded reports whether the given cell blocks sight. Cells outside the
// volume are unoccluded, which lets scans extend past the bounds without
// faulting.
func (v *OcclusionVolume) Occluded(c Vec3i) bool {
	if !v.InBounds(c) {
		return false
	}
	return v.cells[v.index(c)]
}

func (v *OcclusionVolume) OccludedCount() int {
	return v.occludedCount
}

func (v *OcclusionVolume) index(c Vec3i) int {
	return c.X + v.size.X*(c.Y+v.size.Y*c.Z)
}
