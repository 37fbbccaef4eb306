package websocket

import (
	"testing"
	"time"

	"github.com/skuggalabs/skuggi/featureflag"
	"github.com/skuggalabs/skuggi/fov"
	"github.com/skuggalabs/skuggi/models"
	"github.com/skuggalabs/skuggi/report"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func newTestWorld(t *testing.T) *fov.World {
	t.Helper()

	world, err := fov.NewWorld(models.NewVec3i(9, 9, 9), 3)
	require.NoError(t, err)
	return world
}

func newTestHandler(world *fov.World, flags []string, passChan chan report.Pass) func() Handler {
	return func() Handler {
		var h Handler = &ViewerHandler{
			ClientIdleTimeout: time.Minute,
			World:             world,
			FeatureFlags:      featureflag.New(flags),
			PassChan:          passChan,
		}

		h = HandlerWithLogs(h, time.Millisecond*100)
		h = HandlerWithMetrics(h, "https://skuggi-test.com")
		return h
	}
}

func sendTestMsg(t *testing.T, conn *websocket.Conn, msgType MsgType, requestID uint32, v any) {
	t.Helper()

	msg, err := NewMsg(msgType, requestID, v)
	require.NoError(t, err)
	_, err = Send(conn, msg)
	require.NoError(t, err)
}

func receiveTestMsg(t *testing.T, conn *websocket.Conn) Msg {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second*5)))
	msg, _, err := Receive(conn)
	require.NoError(t, err)
	return msg
}

// receiveUntil reads messages until one of the given type arrives, returning
// it along with everything received before it.
func receiveUntil(t *testing.T, conn *websocket.Conn, msgType MsgType) (Msg, []Msg) {
	t.Helper()

	var before []Msg
	for {
		msg := receiveTestMsg(t, conn)
		if msg.Type == msgType {
			return msg, before
		}
		before = append(before, msg)
	}
}

func TestViewerHandlerPing(t *testing.T) {
	conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), nil, nil))
	defer close()

	sendTestMsg(t, conn, MsgTypePingRequest, 1, nil)

	res := receiveTestMsg(t, conn)
	require.Equal(t, MsgTypePingResponse, res.Type)
	require.Equal(t, uint32(1), res.RequestID)
}

func TestViewerHandlerVolumeInfo(t *testing.T) {
	world := newTestWorld(t)
	require.NoError(t, world.MarkOccluded(models.NewVec3i(1, 1, 1)))

	conn, close := NewTestingEnv(t, newTestHandler(world, nil, nil))
	defer close()

	sendTestMsg(t, conn, MsgTypeVolumeInfoRequest, 7, nil)

	res := receiveTestMsg(t, conn)
	require.Equal(t, MsgTypeVolumeInfo, res.Type)
	require.Equal(t, uint32(7), res.RequestID)

	var info VolumeInfo
	require.NoError(t, res.DataTo(&info))
	require.Equal(t, models.NewVec3i(9, 9, 9), info.Size)
	require.Equal(t, 1, info.OccludedCount)
	require.Equal(t, 3, info.MaxDepth)
}

func TestViewerHandlerBlockAdd(t *testing.T) {
	t.Run("marking cells succeeds", func(t *testing.T) {
		conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), nil, nil))
		defer close()

		sendTestMsg(t, conn, MsgTypeBlockAddRequest, 2, BlockAdd{
			Cells: []models.Vec3i{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		})

		res := receiveTestMsg(t, conn)
		require.Equal(t, MsgTypeBlockAddResponse, res.Type)
		require.Equal(t, uint32(2), res.RequestID)

		var ack BlockAddResponse
		require.NoError(t, res.DataTo(&ack))
		require.Equal(t, 2, ack.OccludedCount)
	})

	t.Run("marking an out-of-bounds cell returns an error response", func(t *testing.T) {
		conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), nil, nil))
		defer close()

		sendTestMsg(t, conn, MsgTypeBlockAddRequest, 3, BlockAdd{
			Cells: []models.Vec3i{{X: 9, Y: 0, Z: 0}},
		})

		res := receiveTestMsg(t, conn)
		require.Equal(t, MsgTypeErrorResponse, res.Type)
		require.Equal(t, uint32(3), res.RequestID)

		var errRes ErrorResponse
		require.NoError(t, res.DataTo(&errRes))
		require.Equal(t, ErrorCodeOutOfBounds, errRes.Code)
	})

	t.Run("an empty cell batch is a bad request", func(t *testing.T) {
		conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), nil, nil))
		defer close()

		sendTestMsg(t, conn, MsgTypeBlockAddRequest, 4, BlockAdd{})

		res := receiveTestMsg(t, conn)
		require.Equal(t, MsgTypeErrorResponse, res.Type)

		var errRes ErrorResponse
		require.NoError(t, res.DataTo(&errRes))
		require.Equal(t, ErrorCodeBadRequest, errRes.Code)
	})
}

func TestViewerHandlerOriginUpdate(t *testing.T) {
	world := newTestWorld(t)
	require.NoError(t, world.MarkOccluded(models.NewVec3i(5, 4, 4)))

	passChan := make(chan report.Pass, 8)
	conn, close := NewTestingEnv(t, newTestHandler(world, nil, passChan))
	defer close()

	sendTestMsg(t, conn, MsgTypeOriginUpdate, 5, OriginUpdate{
		Origin: models.NewVec3f(4, 4, 4),
	})

	res, before := receiveUntil(t, conn, MsgTypeVisibilityState)
	require.Equal(t, uint32(5), res.RequestID)

	var state VisibilityState
	require.NoError(t, res.DataTo(&state))
	require.Equal(t, models.NewVec3f(4, 4, 4), state.Origin)
	require.Contains(t, state.VisibleCells, models.NewVec3i(4, 4, 4))
	require.NotContains(t, state.VisibleCells, models.NewVec3i(5, 4, 4))

	// The draw stream is emitted ahead of the state on the same connection.
	require.NotEmpty(t, before)
	for _, msg := range before {
		require.Equal(t, MsgTypeDrawCommand, msg.Type)
	}

	select {
	case pass := <-passChan:
		require.Equal(t, models.NewVec3f(4, 4, 4), pass.Origin)
		require.Equal(t, len(state.VisibleCells), pass.VisibleCells)
		require.NotEmpty(t, pass.PassID)

	case <-time.After(time.Second * 5):
		t.Fatal("no pass report was queued")
	}
}

func TestViewerHandlerOriginUpdateWithDrawStreamDisabled(t *testing.T) {
	flags := []string{string(featureflag.FlagDisableDrawStream)}
	conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), flags, nil))
	defer close()

	sendTestMsg(t, conn, MsgTypeOriginUpdate, 6, OriginUpdate{
		Origin: models.NewVec3f(4, 4, 4),
	})

	res, before := receiveUntil(t, conn, MsgTypeVisibilityState)
	require.Empty(t, before)
	require.Equal(t, uint32(6), res.RequestID)
}

func TestViewerHandlerUnknownMessageIsIgnored(t *testing.T) {
	conn, close := NewTestingEnv(t, newTestHandler(newTestWorld(t), nil, nil))
	defer close()

	sendTestMsg(t, conn, MsgType("unknown"), 8, nil)
	sendTestMsg(t, conn, MsgTypePingRequest, 9, nil)

	res := receiveTestMsg(t, conn)
	require.Equal(t, MsgTypePingResponse, res.Type)
	require.Equal(t, uint32(9), res.RequestID)
}
