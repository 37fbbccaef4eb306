package websocket

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/models"
	"golang.org/x/net/websocket"
)

// MsgType identifies a viewer protocol message.
type MsgType string

const (
	MsgTypePingRequest       MsgType = "ping_request"
	MsgTypePingResponse      MsgType = "ping_response"
	MsgTypeVolumeInfoRequest MsgType = "volume_info_request"
	MsgTypeVolumeInfo        MsgType = "volume_info"
	MsgTypeBlockAddRequest   MsgType = "block_add_request"
	MsgTypeBlockAddResponse  MsgType = "block_add_response"
	MsgTypeOriginUpdate      MsgType = "origin_update"
	MsgTypeVisibilityState   MsgType = "visibility_state"
	MsgTypeDrawCommand       MsgType = "draw_command"
	MsgTypeErrorResponse     MsgType = "error_response"
)

// ErrorCode qualifies an error response.
type ErrorCode string

const (
	ErrorCodeBadRequest  ErrorCode = "bad_request"
	ErrorCodeOutOfBounds ErrorCode = "out_of_bounds"
)

// Msg is the envelope for every message exchanged with a viewer. Data carries
// the type-specific payload.
type Msg struct {
	Type      MsgType         `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID uint32          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func (m Msg) TypeString() string {
	return string(m.Type)
}

// DataTo decodes the message payload into v.
func (m Msg) DataTo(v any) error {
	if len(m.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return errors.New("decoding message payload failed").
			WithTag("msg_type", m.Type).
			Wrap(err)
	}
	return nil
}

// NewMsg makes a message of the given type carrying v as payload. A nil v
// leaves the payload empty.
func NewMsg(msgType MsgType, requestID uint32, v any) (Msg, error) {
	msg := Msg{
		Type:      msgType,
		Timestamp: time.Now(),
		RequestID: requestID,
	}

	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return Msg{}, errors.New("encoding message payload failed").
				WithTag("msg_type", msgType).
				Wrap(err)
		}
		msg.Data = data
	}
	return msg, nil
}

// VolumeInfo describes the occlusion volume to a viewer.
type VolumeInfo struct {
	Size          models.Vec3i `json:"size"`
	OccludedCount int          `json:"occluded_count"`
	MaxDepth      int          `json:"max_depth"`
}

// BlockAdd is a request to mark a batch of cells as occluded.
type BlockAdd struct {
	Cells []models.Vec3i `json:"cells"`
}

// BlockAddResponse acknowledges a block add.
type BlockAddResponse struct {
	OccludedCount int `json:"occluded_count"`
}

// OriginUpdate moves the view origin and requests a visibility pass.
type OriginUpdate struct {
	Origin models.Vec3f `json:"origin"`
}

// VisibilityState is the result of a visibility pass.
type VisibilityState struct {
	Origin       models.Vec3f   `json:"origin"`
	VisibleCells []models.Vec3i `json:"visible_cells"`
	DurationMS   float64        `json:"duration_ms"`
}

// ErrorResponse reports a request failure.
type ErrorResponse struct {
	Code ErrorCode `json:"code"`
}

// Receiver receives an incoming message and its size in bytes.
type Receiver func() (Msg, int, error)

// Sender sends a message and returns its size in bytes.
type Sender func(Msg) (int, error)

// ResponseSender queues messages on the connection's send channel.
type ResponseSender interface {
	Send(Msg)
}

// Receive reads one message from the connection.
func Receive(conn *websocket.Conn) (Msg, int, error) {
	var b []byte
	if err := websocket.Message.Receive(conn, &b); err != nil {
		return Msg{}, 0, err
	}

	var msg Msg
	if err := json.Unmarshal(b, &msg); err != nil {
		return Msg{}, len(b), errors.New("decoding message failed").Wrap(err)
	}
	return msg, len(b), nil
}

// Send writes one message to the connection.
func Send(conn *websocket.Conn, msg Msg) (int, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return 0, errors.New("encoding message failed").
			WithTag("msg_type", msg.Type).
			Wrap(err)
	}

	if err := websocket.Message.Send(conn, string(b)); err != nil {
		return 0, err
	}
	return len(b), nil
}
