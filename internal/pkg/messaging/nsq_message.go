package messaging

import (
	"context"
	"encoding/hex"
	"sync/atomic"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

// nsqMessage exposes an NSQ delivery with its envelope already unpacked.
type nsqMessage struct {
	topic   string
	msg     *nsq.Message
	body    []byte
	headers []Header

	responded atomic.Bool
}

func newNSQMessage(topic string, msg *nsq.Message) *nsqMessage {
	body, headers := decodeNSQBody(msg.Body)
	return &nsqMessage{topic: topic, msg: msg, body: body, headers: headers}
}

func (m *nsqMessage) hasResponded() bool { return m.responded.Load() }

func (m *nsqMessage) Body() []byte                  { return m.body }
func (m *nsqMessage) Key() []byte                   { return firstHeader(m.headers, HeaderMessageKey) }
func (m *nsqMessage) Headers() []Header             { return m.headers }
func (m *nsqMessage) Attributes() map[string]string { return flattenHeaders(m.headers) }
func (m *nsqMessage) ID() string                    { return hex.EncodeToString(m.msg.ID[:]) }
func (m *nsqMessage) Topic() string                 { return m.topic }
func (m *nsqMessage) Subject() string               { return "" }
func (m *nsqMessage) Timestamp() time.Time          { return time.Unix(0, m.msg.Timestamp) }

func (m *nsqMessage) Ack(ctx context.Context) error {
	return m.respond(ctx, m.msg.Finish)
}

// Nack requeues with nsqd's attempt-based backoff.
func (m *nsqMessage) Nack(ctx context.Context) error {
	return m.respond(ctx, func() { m.msg.Requeue(-1) })
}

func (m *nsqMessage) respond(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.responded.Swap(true) {
		fn()
	}
	return nil
}

func (m *nsqMessage) Extend(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.msg.Touch()
	return nil
}

func (m *nsqMessage) Metadata() map[string]any {
	return map[string]any{
		"attempts":     m.msg.Attempts,
		"nsqd_address": m.msg.NSQDAddress,
	}
}

func (m *nsqMessage) Raw() any { return m.msg }
