package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisibilitySetAdd(t *testing.T) {
	t.Run("adding a cell reports it visible", func(t *testing.T) {
		s := NewVisibilitySet(NewVec3i(4, 4, 4))

		c := NewVec3i(1, 2, 3)
		require.True(t, s.Add(c))
		require.True(t, s.Visible(c))
		require.Equal(t, []Vec3i{c}, s.Cells())
	})

	t.Run("adding a cell twice keeps it once", func(t *testing.T) {
		s := NewVisibilitySet(NewVec3i(4, 4, 4))

		c := NewVec3i(2, 2, 2)
		require.True(t, s.Add(c))
		require.False(t, s.Add(c))
		require.Equal(t, 1, s.Len())
	})

	t.Run("adding an out-of-bounds cell is ignored", func(t *testing.T) {
		s := NewVisibilitySet(NewVec3i(4, 4, 4))

		require.False(t, s.Add(NewVec3i(4, 0, 0)))
		require.False(t, s.Add(NewVec3i(0, -1, 0)))
		require.Zero(t, s.Len())
	})
}

func TestVisibilitySetCellsKeepReportOrder(t *testing.T) {
	s := NewVisibilitySet(NewVec3i(4, 4, 4))

	cells := []Vec3i{
		{X: 3, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 2, Z: 3},
	}
	for _, c := range cells {
		require.True(t, s.Add(c))
	}
	require.Equal(t, cells, s.Cells())
}
