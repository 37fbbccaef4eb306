package fov

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectSeedAtDepthOne(t *testing.T) {
	seed := SlopeRect{Sx: inf, Sy: inf, Ex: 1, Ey: 1}

	view := seed.project(0.5)
	require.Equal(t, float32(0), view.Sx)
	require.Equal(t, float32(0), view.Sy)
	require.Equal(t, float32(0.5), view.Ex)
	require.Equal(t, float32(0.5), view.Ey)
}

func TestProjectNegativeQuadrant(t *testing.T) {
	seed := SlopeRect{Sx: -1, Sy: -1, Ex: -inf, Ey: -inf}

	view := seed.project(0.5)
	require.Equal(t, float32(-0.5), view.Sx)
	require.Equal(t, float32(-0.5), view.Sy)
	require.Equal(t, float32(0), view.Ex)
	require.Equal(t, float32(0), view.Ey)
}

func TestProjectReverseDepthSwapsBounds(t *testing.T) {
	seed := SlopeRect{Sx: inf, Sy: inf, Ex: 1, Ey: 1}

	// A negative numerator mirrors the view across the origin axis.
	view := seed.project(-0.5)
	require.Equal(t, float32(-0.5), view.Sx)
	require.Equal(t, float32(0), view.Ex)
	require.True(t, view.IsValid())
}

func TestProjectZeroSlopePanics(t *testing.T) {
	require.Panics(t, func() {
		SlopeRect{Sx: 0, Sy: inf, Ex: 1, Ey: 1}.project(0.5)
	})
}

func TestUnprojectRoundTrip(t *testing.T) {
	seeds := []SlopeRect{
		{Sx: inf, Sy: inf, Ex: 1, Ey: 1},
		{Sx: -1, Sy: inf, Ex: -inf, Ey: 1},
		{Sx: inf, Sy: -1, Ex: 1, Ey: -inf},
		{Sx: -1, Sy: -1, Ex: -inf, Ey: -inf},
	}

	for _, numer := range []float32{0.5, 2.5, -0.5, -2.5} {
		for _, seed := range seeds {
			view := seed.project(numer)
			again := unproject(view, numer).project(numer)

			require.InDelta(t, view.Sx, again.Sx, 1e-5)
			require.InDelta(t, view.Sy, again.Sy, 1e-5)
			require.InDelta(t, view.Ex, again.Ex, 1e-5)
			require.InDelta(t, view.Ey, again.Ey, 1e-5)
		}
	}
}

func TestUnprojectAxisEdgeKeepsSign(t *testing.T) {
	// A view edge exactly on the origin axis must come back as the proper
	// signed infinity, not flip into the opposite quadrant.
	pos := SlopeRect{Sx: inf, Sy: inf, Ex: 1, Ey: 1}.project(0.5)
	require.Equal(t, inf, unproject(pos, 0.5).Sx)

	neg := SlopeRect{Sx: -1, Sy: -1, Ex: -inf, Ey: -inf}.project(0.5)
	require.Equal(t, -inf, unproject(neg, 0.5).Ex)
}

func TestOccluderFootprintGrowsTowardAxis(t *testing.T) {
	// Cell u=2 at depth 1 from an origin on the axis: the far-face
	// silhouette scales the near edge 1.5 by (0.5/1.5), extending the
	// footprint down to 0.5.
	fp := occluderFootprint(2, 0, 0, 0, 1)

	require.InDelta(t, 0.5, fp.Sx, 1e-5)
	require.InDelta(t, 2.5, fp.Ex, 1e-5)

	// v straddles the axis: no growth on either side.
	require.InDelta(t, -0.5, fp.Sy, 1e-5)
	require.InDelta(t, 0.5, fp.Ey, 1e-5)
}

func TestOccluderFootprintNegativeSideGrowsUp(t *testing.T) {
	fp := occluderFootprint(-2, 0, 0, 0, 1)

	require.InDelta(t, -2.5, fp.Sx, 1e-5)
	require.InDelta(t, -0.5, fp.Ex, 1e-5)
}

func TestOccluderFootprintStraddlingCellIsUngrown(t *testing.T) {
	fp := occluderFootprint(0, 0, 0, 0, 3)

	require.InDelta(t, -0.5, fp.Sx, 1e-5)
	require.InDelta(t, 0.5, fp.Ex, 1e-5)
	require.InDelta(t, -0.5, fp.Sy, 1e-5)
	require.InDelta(t, 0.5, fp.Ey, 1e-5)
}
