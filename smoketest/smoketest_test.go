package smoketest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/models"
	"github.com/stretchr/testify/require"
)

func TestNewTerrainWorld(t *testing.T) {
	size := models.NewVec3i(16, 16, 16)

	world, err := NewTerrainWorld(size, 4, 42)
	require.NoError(t, err)
	require.NotZero(t, world.OccludedCount())

	t.Run("the same seed produces the same terrain", func(t *testing.T) {
		again, err := NewTerrainWorld(size, 4, 42)
		require.NoError(t, err)
		require.Equal(t, world.OccludedCount(), again.OccludedCount())

		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				for z := 0; z < size.Z; z++ {
					c := models.NewVec3i(x, y, z)
					require.Equal(t, world.Occluded(c), again.Occluded(c))
				}
			}
		}
	})
}

func TestRunSmokeTest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	res := RunSmokeTest(ctx, Request{
		Size:     models.NewVec3i(24, 24, 24),
		MaxDepth: 6,
		Seed:     7,
	})

	require.Equal(t, StatusSuccess, res.Status)
	require.Empty(t, res.Error)
	require.NotZero(t, res.OccludedCells)
	require.NotZero(t, res.VisibleCells)
	require.GreaterOrEqual(t, res.LatencyMilliSec, float64(0))
}

func TestHandleSmokeTest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	ctx = context.WithValue(ctx, testCtxKeyValue, testContext{
		Context: ctx,
		Cancel:  cancel,
	})

	var gotResult bool
	smokeTest := HandleSmokeTest(ctx, Options{
		Endpoint: "http://localskuggi",
		SendResult: func(_ context.Context, res Results) error {
			require.Equal(t, "http://localskuggi", res.FromEndpoint)
			require.Equal(t, StatusSuccess, res.Status)
			require.NotZero(t, res.VisibleCells)
			gotResult = true
			return nil
		},
	})

	body, err := json.Marshal(Request{
		Size:     models.NewVec3i(16, 16, 16),
		MaxDepth: 4,
		Seed:     3,
		Timeout:  time.Second * 10,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localskuggi", bytes.NewBuffer(body))

	smokeTest.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	<-ctx.Done()

	require.True(t, gotResult)
}

func TestHandleSmokeTestWithBadBody(t *testing.T) {
	smokeTest := HandleSmokeTest(context.Background(), Options{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localskuggi", bytes.NewBufferString("{"))

	smokeTest.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
