// Package report forwards visibility pass summaries to an optional external
// collector. Passes are queued on a buffered channel by the connection
// handlers and drained by a background worker, so a slow or failing collector
// never stalls a pass.
package report

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/models"
)

// Pass summarizes one visibility pass.
type Pass struct {
	PassID       string       `json:"pass_id"`
	Origin       models.Vec3f `json:"origin"`
	VisibleCells int          `json:"visible_cells"`
	DurationMS   float64      `json:"duration_ms"`
	Timestamp    time.Time    `json:"timestamp"`
}

type Handler struct {
	// The collector endpoint. Empty disables forwarding; queued passes are
	// drained and dropped.
	Endpoint string

	// Channel for receiving incoming pass summaries. Buffered.
	PassChan chan Pass

	// The transport used to send reports. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// HandlePasses drains the pass channel until the context is canceled.
func (h Handler) HandlePasses(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return

			case pass := <-h.PassChan:
				if h.Endpoint == "" {
					continue
				}
				if err := h.forward(ctx, pass); err != nil {
					logs.Warn(errors.New("forwarding pass report failed").
						WithTag("pass_id", pass.PassID).
						WithTag("endpoint", h.Endpoint).
						Wrap(err))
				}
			}
		}
	}()
}

func (h Handler) forward(ctx context.Context, pass Pass) error {
	start := time.Now()
	defer instrumentReportLatency(h.Endpoint, start)

	body, err := json.Marshal(pass)
	if err != nil {
		return errors.New("encoding pass report failed").Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.New("creating report request failed").Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	transport := h.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	res, err := (&http.Client{Transport: transport}).Do(req)
	if err != nil {
		instrumentReportSendError(h.Endpoint, err)
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		err := errors.New("report rejected").
			WithType("report_rejected").
			WithTag("status_code", res.StatusCode)
		instrumentReportSendError(h.Endpoint, err)
		return err
	}

	instrumentReportSend(h.Endpoint)
	return nil
}
