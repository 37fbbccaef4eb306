package models

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewOcclusionVolume(t *testing.T) {
	t.Run("creating a volume succeeds", func(t *testing.T) {
		v, err := NewOcclusionVolume(NewVec3i(4, 5, 6))
		require.NoError(t, err)
		require.Equal(t, NewVec3i(4, 5, 6), v.Size())
		require.Zero(t, v.OccludedCount())
	})

	t.Run("creating a volume with a zero dimension returns an error", func(t *testing.T) {
		_, err := NewOcclusionVolume(NewVec3i(4, 0, 6))
		require.Error(t, err)
	})

	t.Run("creating a volume with a negative dimension returns an error", func(t *testing.T) {
		_, err := NewOcclusionVolume(NewVec3i(4, 5, -1))
		require.Error(t, err)
	})
}

func TestOcclusionVolumeMark(t *testing.T) {
	t.Run("marking a cell makes it occluded", func(t *testing.T) {
		v, err := NewOcclusionVolume(NewVec3i(4, 4, 4))
		require.NoError(t, err)

		c := NewVec3i(1, 2, 3)
		require.False(t, v.Occluded(c))
		require.NoError(t, v.Mark(c))
		require.True(t, v.Occluded(c))
		require.Equal(t, 1, v.OccludedCount())
	})

	t.Run("marking a cell twice counts once", func(t *testing.T) {
		v, err := NewOcclusionVolume(NewVec3i(4, 4, 4))
		require.NoError(t, err)

		c := NewVec3i(0, 0, 0)
		require.NoError(t, v.Mark(c))
		require.NoError(t, v.Mark(c))
		require.Equal(t, 1, v.OccludedCount())
	})

	t.Run("marking an out-of-bounds cell returns a typed error", func(t *testing.T) {
		v, err := NewOcclusionVolume(NewVec3i(4, 4, 4))
		require.NoError(t, err)

		for _, c := range []Vec3i{
			{X: -1, Y: 0, Z: 0},
			{X: 0, Y: 4, Z: 0},
			{X: 0, Y: 0, Z: 4},
		} {
			err := v.Mark(c)
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeOutOfBounds))
		}
		require.Zero(t, v.OccludedCount())
	})
}

func TestOcclusionVolumeOccluded(t *testing.T) {
	v, err := NewOcclusionVolume(NewVec3i(4, 4, 4))
	require.NoError(t, err)
	require.NoError(t, v.Mark(NewVec3i(3, 3, 3)))

	t.Run("cells outside the volume are unoccluded", func(t *testing.T) {
		require.False(t, v.Occluded(NewVec3i(-1, 0, 0)))
		require.False(t, v.Occluded(NewVec3i(4, 3, 3)))
	})

	t.Run("unmarked cells are unoccluded", func(t *testing.T) {
		require.False(t, v.Occluded(NewVec3i(0, 0, 0)))
	})
}
