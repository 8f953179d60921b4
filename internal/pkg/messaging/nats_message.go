package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

type natsMessage struct {
	msg        *nats.Msg
	receivedAt time.Time
	headers    []Header

	responded atomic.Bool
}

func newNATSMessage(msg *nats.Msg, receivedAt time.Time) *natsMessage {
	var headers []Header
	for k, values := range msg.Header {
		for _, v := range values {
			headers = append(headers, Header{Key: k, Value: []byte(v)})
		}
	}
	return &natsMessage{msg: msg, receivedAt: receivedAt, headers: headers}
}

func (m *natsMessage) hasResponded() bool { return m.responded.Load() }

func (m *natsMessage) Body() []byte                  { return m.msg.Data }
func (m *natsMessage) Key() []byte                   { return []byte(m.msg.Header.Get(HeaderMessageKey)) }
func (m *natsMessage) Headers() []Header             { return m.headers }
func (m *natsMessage) Attributes() map[string]string { return flattenHeaders(m.headers) }
func (m *natsMessage) ID() string                    { return "" }
func (m *natsMessage) Topic() string                 { return "" }
func (m *natsMessage) Subject() string               { return m.msg.Subject }
func (m *natsMessage) Timestamp() time.Time          { return m.receivedAt }

// Ack and Nack answer at most once. Core NATS messages have nothing to
// answer, which is not an error.
func (m *natsMessage) Ack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Ack)
}

func (m *natsMessage) Nack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Nak)
}

func (m *natsMessage) respond(ctx context.Context, fn func(...nats.AckOpt) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	return ignoreNoReply(fn())
}

func (m *natsMessage) Extend(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ignoreNoReply(m.msg.InProgress())
}

func (m *natsMessage) Metadata() map[string]any {
	meta := map[string]any{"reply": m.msg.Reply}
	if md, err := m.msg.Metadata(); err == nil && md != nil {
		meta["sequence_stream"] = md.Sequence.Stream
		meta["num_delivered"] = md.NumDelivered
		meta["timestamp"] = md.Timestamp
	}
	return meta
}

func (m *natsMessage) Raw() any { return m.msg }

func (m *natsMessage) String() string {
	return fmt.Sprintf("nats subject=%q", m.msg.Subject)
}

func ignoreNoReply(err error) error {
	if errors.Is(err, nats.ErrMsgNoReply) || errors.Is(err, nats.ErrMsgNotBound) {
		return nil
	}
	return err
}
