package smoketest

import (
	"github.com/aquilax/go-perlin"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/skuggalabs/skuggi/fov"
	"github.com/skuggalabs/skuggi/models"
)

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3

	// Horizontal noise frequency. Tuned so a 32-cell volume holds a few
	// hills rather than flat ground or white noise.
	terrainFrequency = 0.1
)

// NewTerrainWorld builds a world whose lower half is filled with perlin noise
// terrain: every column is occluded up to its height map value. The same seed
// always produces the same terrain.
func NewTerrainWorld(size models.Vec3i, maxDepth int, seed int64) (*fov.World, error) {
	world, err := fov.NewWorld(size, maxDepth)
	if err != nil {
		return nil, err
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)

	cells := make([]models.Vec3i, 0, size.X*size.Z)
	for x := 0; x < size.X; x++ {
		for z := 0; z < size.Z; z++ {
			h := terrainHeight(noise, x, z, size.Y)
			for y := 0; y < h; y++ {
				cells = append(cells, models.NewVec3i(x, y, z))
			}
		}
	}

	if err := world.MarkOccluded(cells...); err != nil {
		return nil, errors.New("filling terrain failed").Wrap(err)
	}
	return world, nil
}

// terrainHeight maps noise in [-1, 1] to a column height in [1, sizeY/2].
func terrainHeight(noise *perlin.Perlin, x, z, sizeY int) int {
	n := noise.Noise2D(float64(x)*terrainFrequency, float64(z)*terrainFrequency)

	max := sizeY / 2
	h := 1 + int((n+1)/2*float64(max-1))
	if h > max {
		h = max
	}
	return h
}

// spawnOrigin returns a view position floating above the terrain at the
// center of the volume.
func spawnOrigin(world *fov.World) models.Vec3f {
	size := world.Size()
	center := models.NewVec3i(size.X/2, 0, size.Z/2)

	y := size.Y - 1
	for ; y > 0; y-- {
		if world.Occluded(models.NewVec3i(center.X, y-1, center.Z)) {
			break
		}
	}

	spawn := models.NewVec3i(center.X, y+1, center.Z)
	if spawn.Y >= size.Y {
		spawn.Y = size.Y - 1
	}
	return spawn.Center()
}
