package fov

import (
	"sync"

	"github.com/skuggalabs/skuggi/models"
)

// World owns an occlusion volume and enforces the single-writer-then-many-
// readers contract around it: marking takes the write lock, passes take the
// read lock, so the volume is never mutated under an in-flight pass. The
// caster itself stays lock-free.
type World struct {
	mutex  sync.RWMutex
	volume *models.OcclusionVolume

	// The maximum depth layer per sector. Zero means DefaultMaxDepth.
	MaxDepth int

	// SweepDiff selects the sweep-line set-difference for passes.
	SweepDiff bool
}

func NewWorld(size models.Vec3i, maxDepth int) (*World, error) {
	volume, err := models.NewOcclusionVolume(size)
	if err != nil {
		return nil, err
	}

	return &World{
		volume:   volume,
		MaxDepth: maxDepth,
	}, nil
}

func (w *World) Size() models.Vec3i {
	return w.volume.Size()
}

func (w *World) OccludedCount() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.volume.OccludedCount()
}

func (w *World) Occluded(c models.Vec3i) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.volume.Occluded(c)
}

// MarkOccluded marks the given cells as occluded. It stops and returns the
// error of the first out-of-bounds cell; cells before it stay marked.
func (w *World) MarkOccluded(cells ...models.Vec3i) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, c := range cells {
		if err := w.volume.Mark(c); err != nil {
			return err
		}
	}
	return nil
}

// SetOriginAndRecompute runs a full visibility pass from the given origin.
// The sink may be nil to disable diagnostic drawing.
func (w *World) SetOriginAndRecompute(origin models.Vec3f, sink DebugSink) *models.VisibilitySet {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	caster := Caster{
		Volume:    w.volume,
		MaxDepth:  w.MaxDepth,
		Sink:      sink,
		SweepDiff: w.SweepDiff,
	}
	return caster.ComputeFrom(origin)
}
