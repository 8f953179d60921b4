package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	nsq "github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNSQEnvelope(t *testing.T) {
	t.Run("body without headers is sent as is", func(t *testing.T) {
		raw, err := encodeNSQBody(OutgoingMessage{Body: []byte(`{"a":1}`), Headers: []Header{{Key: ""}}})
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), raw)

		body, headers := decodeNSQBody(raw)
		assert.Equal(t, []byte(`{"a":1}`), body)
		assert.Nil(t, headers)
	})

	t.Run("headers round trip", func(t *testing.T) {
		raw, err := encodeNSQBody(OutgoingMessage{
			Body:    []byte(`{"session_id":"s1"}`),
			Headers: []Header{{Key: "cID", Value: []byte("abc")}},
		})
		require.NoError(t, err)

		msg := newNSQMessage("otp", nsq.NewMessage(nsq.MessageID{}, raw))
		assert.Equal(t, []byte(`{"session_id":"s1"}`), msg.Body())
		assert.Equal(t, []Header{{Key: "cID", Value: []byte("abc")}}, msg.Headers())
		assert.Equal(t, map[string]string{"cID": "abc"}, msg.Attributes())
		assert.Equal(t, "otp", msg.Topic())
	})

	t.Run("broken envelope is delivered raw", func(t *testing.T) {
		raw := append(append([]byte{}, nsqEnvelopePrefix...), '{')
		body, headers := decodeNSQBody(raw)
		assert.Equal(t, raw, body)
		assert.Nil(t, headers)
	})
}

func TestNewFromDriver(t *testing.T) {
	_, err := NewFromDriver("kafka", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(DriverNATS, FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)

	client, err := NewFromDriver(" nsq ", FactoryOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.Publish(context.Background(), "otp", OutgoingMessage{Body: []byte("x")})
	assert.ErrorIs(t, err, ErrNSQProducerAddrRequired)

	err = client.Consume(context.Background(), "otp", func(context.Context, Message) error { return nil }, WithChannel("c"))
	assert.ErrorIs(t, err, ErrNSQConsumerAddrsRequired)
}

func TestConsumeOptions(t *testing.T) {
	co := newConsumeOptions(
		WithConcurrency(4),
		WithChannel("delivery"),
		WithQueueGroup("delivery-q"),
		WithAutoAck(true),
		WithMaxInFlight(8),
		WithParams(map[string]string{"queue_group": "override"}),
		WithParam("", "ignored"),
		nil,
	)

	assert.Equal(t, 4, co.concurrency)
	assert.Equal(t, "delivery", co.channel)
	assert.True(t, co.autoAck)
	assert.Equal(t, 8, co.maxInFlight)
	assert.Equal(t, "override", queueGroupFromConsumeOptions(co))
	assert.Equal(t, 1, concurrencyOrDefault(0, 1))
}

func TestCallHandlerWithRecover(t *testing.T) {
	err := callHandlerWithRecover(context.Background(), "nsq", func() error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in nsq handler")
}

func TestMessageKeyTravelsAsHeader(t *testing.T) {
	out := OutgoingMessage{
		Body:    []byte(`{"session_id":"s1"}`),
		Key:     []byte("s1"),
		Headers: []Header{{Key: "cID", Value: []byte("abc")}},
	}

	t.Run("nsq", func(t *testing.T) {
		raw, err := encodeNSQBody(out)
		require.NoError(t, err)

		msg := newNSQMessage("otp", nsq.NewMessage(nsq.MessageID{}, raw))
		assert.Equal(t, []byte("s1"), msg.Key())
		assert.Equal(t, map[string]string{"cID": "abc", HeaderMessageKey: "s1"}, msg.Attributes())
	})

	t.Run("nats", func(t *testing.T) {
		raw := nats.NewMsg("otp")
		raw.Data = out.Body
		for _, h := range outgoingHeaders(out) {
			raw.Header.Add(h.Key, string(h.Value))
		}

		msg := newNATSMessage(raw, time.Unix(1792400400, 0))
		assert.Equal(t, []byte("s1"), msg.Key())
		assert.Equal(t, "abc", msg.Attributes()["cID"])
		assert.Equal(t, "otp", msg.Subject())
		assert.NoError(t, msg.Ack(context.Background()))
		assert.True(t, msg.hasResponded())
	})
}

func TestAutoAckParam(t *testing.T) {
	assert.False(t, newConsumeOptions(WithAutoAck(true), WithParam("auto_ack", "false")).autoAck)
	assert.True(t, newConsumeOptions(WithParam("auto_ack", "1")).autoAck)
	assert.True(t, newConsumeOptions(WithAutoAck(true), WithParam("auto_ack", "maybe")).autoAck)
}

func TestQueueGroupFromConsumeOptions(t *testing.T) {
	co := newConsumeOptions(WithQueueGroup("delivery"))
	assert.Equal(t, "delivery", queueGroupFromConsumeOptions(co))

	co = newConsumeOptions(WithQueueGroup("delivery"), WithParams(map[string]string{"queue_group": "override"}))
	assert.Equal(t, "override", queueGroupFromConsumeOptions(co))
}
