package fov

import (
	"testing"

	"github.com/skuggalabs/skuggi/models"
	"github.com/stretchr/testify/require"
)

func TestSectorsCoverAllDirectionsOnce(t *testing.T) {
	sectors := Sectors()
	require.Len(t, sectors, 24)

	seen := make(map[Sector]struct{})
	for _, s := range sectors {
		_, dup := seen[s]
		require.False(t, dup, "duplicate sector %+v", s)
		seen[s] = struct{}{}
	}
}

func TestSectorCellMapping(t *testing.T) {
	origin := models.NewVec3i(10, 20, 30)

	t.Run("x depth", func(t *testing.T) {
		s := Sector{Depth: AxisX}
		require.Equal(t, models.NewVec3i(13, 1, 2), s.cell(1, 2, s.layer(origin, 3)))
	})

	t.Run("y depth", func(t *testing.T) {
		s := Sector{Depth: AxisY}
		require.Equal(t, models.NewVec3i(1, 23, 2), s.cell(1, 2, s.layer(origin, 3)))
	})

	t.Run("z depth", func(t *testing.T) {
		s := Sector{Depth: AxisZ}
		require.Equal(t, models.NewVec3i(1, 2, 33), s.cell(1, 2, s.layer(origin, 3)))
	})

	t.Run("reverse depth", func(t *testing.T) {
		s := Sector{Depth: AxisZ, Reverse: true}
		require.Equal(t, models.NewVec3i(1, 2, 27), s.cell(1, 2, s.layer(origin, 3)))
	})
}

func TestSectorTransverse(t *testing.T) {
	p := models.NewVec3f(1, 2, 3)

	u, v := Sector{Depth: AxisX}.transverse(p)
	require.Equal(t, float32(2), u)
	require.Equal(t, float32(3), v)

	u, v = Sector{Depth: AxisY}.transverse(p)
	require.Equal(t, float32(1), u)
	require.Equal(t, float32(3), v)

	u, v = Sector{Depth: AxisZ}.transverse(p)
	require.Equal(t, float32(1), u)
	require.Equal(t, float32(2), v)
}

func TestSectorPlane(t *testing.T) {
	require.Equal(t, PlaneYZ, Sector{Depth: AxisX}.Plane())
	require.Equal(t, PlaneXZ, Sector{Depth: AxisY}.Plane())
	require.Equal(t, PlaneXY, Sector{Depth: AxisZ}.Plane())
}
