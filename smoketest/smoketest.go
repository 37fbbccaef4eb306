// Package smoketest runs an end-to-end self check of the visibility pipeline:
// it builds a deterministic terrain volume, runs passes over it, and verifies
// the structural properties every pass must keep.
package smoketest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/models"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Request configures a smoke test run. Zero values fall back to defaults.
type Request struct {
	Size     models.Vec3i  `json:"size"`
	MaxDepth int           `json:"max_depth"`
	Seed     int64         `json:"seed"`
	Timeout  time.Duration `json:"timeout"`
}

// Results is what a smoke test run reports back.
type Results struct {
	FromEndpoint    string  `json:"from_endpoint"`
	Status          Status  `json:"status"`
	LatencyMilliSec float64 `json:"latency_millisec"`
	OccludedCells   int     `json:"occluded_cells"`
	VisibleCells    int     `json:"visible_cells"`
	Error           string  `json:"error,omitempty"`
}

type Options struct {
	Endpoint   string
	SendResult func(context.Context, Results) error
}

type testCtxKey string

var testCtxKeyValue testCtxKey = "test-context"

type testContext struct {
	context.Context
	Cancel func()
}

const (
	defaultSize     = 32
	defaultMaxDepth = 8
	defaultTimeout  = time.Second * 30
)

func HandleSmokeTest(ctx context.Context, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			logs.Warn(errors.New("reading body failed").Wrap(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var req Request
		if len(b) != 0 {
			if err := json.Unmarshal(b, &req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		go func() {
			defer func() {
				// if context is of testContext
				// cancel context on exit to signal function exited
				// this is used for testing
				if tctx := ctx.Value(testCtxKeyValue); tctx != nil {
					testCtx := tctx.(testContext)
					if testCtx.Cancel != nil {
						testCtx.Cancel()
					}
				}
			}()

			timeout := req.Timeout
			if timeout <= 0 {
				timeout = defaultTimeout
			}
			runCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res := RunSmokeTest(runCtx, req)
			res.FromEndpoint = opts.Endpoint

			if err := opts.SendResult(ctx, res); err != nil {
				logs.WithTag("from_endpoint", opts.Endpoint).
					Warn(errors.New("sending smoke test result failed").Wrap(err))
			}
		}()

		w.WriteHeader(http.StatusOK)
	}
}

// RunSmokeTest builds the terrain world and runs the checks. It never panics;
// a failing check comes back as a failed result.
func RunSmokeTest(ctx context.Context, req Request) Results {
	if req.Size == (models.Vec3i{}) {
		req.Size = models.NewVec3i(defaultSize, defaultSize, defaultSize)
	}
	if req.MaxDepth <= 0 {
		req.MaxDepth = defaultMaxDepth
	}

	start := time.Now()

	res, err := runChecks(ctx, req)
	res.LatencyMilliSec = float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		return res
	}

	res.Status = StatusSuccess
	return res
}

func runChecks(ctx context.Context, req Request) (Results, error) {
	var res Results

	world, err := NewTerrainWorld(req.Size, req.MaxDepth, req.Seed)
	if err != nil {
		return res, errors.New("building terrain world failed").Wrap(err)
	}
	res.OccludedCells = world.OccludedCount()

	if res.OccludedCells == 0 {
		return res, errors.New("terrain volume is empty")
	}

	origin := spawnOrigin(world)
	vs := world.SetOriginAndRecompute(origin, nil)
	res.VisibleCells = vs.Len()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	originCell := origin.Cell()
	if !vs.Visible(originCell) {
		return res, errors.New("origin cell is not visible").
			WithTag("origin", originCell)
	}

	for _, c := range vs.Cells() {
		if world.Occluded(c) {
			return res, errors.New("an occluded cell was reported visible").
				WithTag("cell", c)
		}
		if d := chebyshev(c, originCell); d > req.MaxDepth {
			return res, errors.New("a visible cell is beyond the depth bound").
				WithTag("cell", c).
				WithTag("distance", d)
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Passes are deterministic, and both set-difference formulations must
	// carve the same remainders.
	again := world.SetOriginAndRecompute(origin, nil)
	if err := requireSameCells(vs.Cells(), again); err != nil {
		return res, errors.New("pass is not deterministic").Wrap(err)
	}

	world.SweepDiff = true
	sweep := world.SetOriginAndRecompute(origin, nil)
	if err := requireSameCells(vs.Cells(), sweep); err != nil {
		return res, errors.New("set-difference formulations disagree").Wrap(err)
	}

	return res, nil
}

func requireSameCells(cells []models.Vec3i, vs *models.VisibilitySet) error {
	if len(cells) != vs.Len() {
		return errors.New("visible cell counts differ").
			WithTag("want", len(cells)).
			WithTag("got", vs.Len())
	}
	for _, c := range cells {
		if !vs.Visible(c) {
			return errors.New("a visible cell is missing").WithTag("cell", c)
		}
	}
	return nil
}

func chebyshev(a, b models.Vec3i) int {
	d := 0
	for _, n := range []int{a.X - b.X, a.Y - b.Y, a.Z - b.Z} {
		if n < 0 {
			n = -n
		}
		if n > d {
			d = n
		}
	}
	return d
}
