package websocket

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/skuggalabs/skuggi/featureflag"
	"github.com/skuggalabs/skuggi/fov"
	shttp "github.com/skuggalabs/skuggi/http"
	"github.com/skuggalabs/skuggi/models"
	"github.com/skuggalabs/skuggi/report"
	"github.com/skuggalabs/skuggi/viz"
	"golang.org/x/net/websocket"
)

const blockAddMaxCells = 65536

// ViewerHandler serves one viewer connection: it answers volume queries,
// applies occluder updates, and runs a visibility pass whenever the viewer
// moves its origin.
type ViewerHandler struct {
	// The time a client is idle before being disconnected.
	ClientIdleTimeout time.Duration

	// The world holding the shared occlusion volume.
	World *fov.World

	FeatureFlags featureflag.FeatureFlag

	// channel for sending pass summaries to the report handler goroutine
	PassChan chan report.Pass

	conn     *websocket.Conn
	clientID string
}

func (h *ViewerHandler) HandleConnect(conn *websocket.Conn) {
	req := conn.Request()
	h.clientID = req.Header.Get(shttp.HeaderClientID)

	h.conn = conn
}

func (h *ViewerHandler) HandlePing(ctx context.Context, respond ResponseSender, msg Msg) error {
	res, err := NewMsg(MsgTypePingResponse, msg.RequestID, nil)
	if err != nil {
		return err
	}

	respond.Send(res)
	return nil
}

func (h *ViewerHandler) HandleVolumeInfo(ctx context.Context, respond ResponseSender, msg Msg) error {
	res, err := NewMsg(MsgTypeVolumeInfo, msg.RequestID, VolumeInfo{
		Size:          h.World.Size(),
		OccludedCount: h.World.OccludedCount(),
		MaxDepth:      h.World.MaxDepth,
	})
	if err != nil {
		return err
	}

	respond.Send(res)
	return nil
}

func (h *ViewerHandler) HandleBlockAdd(ctx context.Context, respond ResponseSender, msg Msg) error {
	var req BlockAdd
	if err := msg.DataTo(&req); err != nil {
		return err
	}

	if len(req.Cells) == 0 || len(req.Cells) > blockAddMaxCells {
		return h.sendError(respond, msg.RequestID, ErrorCodeBadRequest)
	}

	if err := h.World.MarkOccluded(req.Cells...); err != nil {
		if errors.IsType(err, models.ErrTypeOutOfBounds) {
			return h.sendError(respond, msg.RequestID, ErrorCodeOutOfBounds)
		}
		return err
	}

	res, err := NewMsg(MsgTypeBlockAddResponse, msg.RequestID, BlockAddResponse{
		OccludedCount: h.World.OccludedCount(),
	})
	if err != nil {
		return err
	}

	respond.Send(res)
	return nil
}

func (h *ViewerHandler) HandleOriginUpdate(ctx context.Context, respond ResponseSender, msg Msg) error {
	var req OriginUpdate
	if err := msg.DataTo(&req); err != nil {
		return err
	}

	var sink fov.DebugSink
	h.FeatureFlags.IfNotSet(featureflag.FlagDisableDrawStream, func() {
		sink = &viz.Streamer{Send: func(cmd viz.Command) {
			drawMsg, err := NewMsg(MsgTypeDrawCommand, 0, cmd)
			if err != nil {
				logs.WithTag("client_id", h.clientID).Debug(err)
				return
			}
			respond.Send(drawMsg)
		}}
	})

	start := time.Now()
	vs := h.World.SetOriginAndRecompute(req.Origin, sink)
	duration := time.Since(start)

	var sendErr error
	h.FeatureFlags.IfNotSet(featureflag.FlagDisableVisibilityState, func() {
		res, err := NewMsg(MsgTypeVisibilityState, msg.RequestID, VisibilityState{
			Origin:       req.Origin,
			VisibleCells: vs.Cells(),
			DurationMS:   float64(duration) / float64(time.Millisecond),
		})
		if err != nil {
			sendErr = err
			return
		}
		respond.Send(res)
	})
	if sendErr != nil {
		return sendErr
	}

	h.FeatureFlags.IfNotSet(featureflag.FlagDisablePassReports, func() {
		if h.PassChan == nil {
			return
		}

		pass := report.Pass{
			PassID:       uuid.NewString(),
			Origin:       req.Origin,
			VisibleCells: vs.Len(),
			DurationMS:   float64(duration) / float64(time.Millisecond),
			Timestamp:    time.Now(),
		}

		select {
		case h.PassChan <- pass:
		default:
			// discard - the report worker is behind, passes are best effort
		}
	})

	return nil
}

func (h *ViewerHandler) HandleDisconnect(_ error) {
}

func (h *ViewerHandler) Receiver() Receiver {
	return func() (Msg, int, error) {
		return Receive(h.conn)
	}
}

func (h *ViewerHandler) Sender() Sender {
	return func(msg Msg) (int, error) {
		return Send(h.conn, msg)
	}
}

func (h *ViewerHandler) Close() {
}

func (h *ViewerHandler) IdleTimeout() time.Duration {
	return h.ClientIdleTimeout
}

func (h *ViewerHandler) GetClientID() string {
	return h.clientID
}

func (h *ViewerHandler) sendError(respond ResponseSender, requestID uint32, code ErrorCode) error {
	res, err := NewMsg(MsgTypeErrorResponse, requestID, ErrorResponse{Code: code})
	if err != nil {
		return err
	}

	respond.Send(res)
	return nil
}
