package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned for a feature the driver lacks, such as
// delayed delivery on NATS.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a connected broker client.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer blocks in Consume until ctx is done, calling handler per message.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. What an error means (requeue, drop) is up
// to the consume options, see WithAutoAck.
type Handler func(ctx context.Context, msg Message) error

type OutgoingMessage struct {
	Body []byte
	// Key names the entity the message is about; it travels as HeaderMessageKey.
	Key     []byte
	Headers []Header
	// Delay defers delivery on drivers that support it.
	Delay time.Duration
}

// Header allows binary values and repeated keys.
type Header struct {
	Key   string
	Value []byte
}

type PublishResult struct {
	Topic     string
	Timestamp time.Time
}

// Message is a received message. Drivers also implement Nackable,
// Extendable, MetadataCarrier and RawCarrier.
type Message interface {
	Body() []byte
	Key() []byte
	Headers() []Header
	// Attributes flattens headers to their first value.
	Attributes() map[string]string

	ID() string
	Topic() string
	Subject() string
	Timestamp() time.Time

	Ack(ctx context.Context) error
}

type Nackable interface {
	Nack(ctx context.Context) error
}

type Extendable interface {
	Extend(ctx context.Context, d time.Duration) error
}

type MetadataCarrier interface {
	Metadata() map[string]any
}

type RawCarrier interface {
	Raw() any
}

// HeaderMessageKey carries OutgoingMessage.Key on brokers without native keys.
const HeaderMessageKey = "Msg-Key"

// outgoingHeaders drops unnamed headers and appends the key header.
func outgoingHeaders(msg OutgoingMessage) []Header {
	headers := make([]Header, 0, len(msg.Headers)+1)
	for _, h := range msg.Headers {
		if h.Key != "" {
			headers = append(headers, h)
		}
	}
	if len(msg.Key) > 0 {
		headers = append(headers, Header{Key: HeaderMessageKey, Value: msg.Key})
	}
	return headers
}

func firstHeader(headers []Header, key string) []byte {
	for _, h := range headers {
		if h.Key == key {
			return h.Value
		}
	}
	return nil
}

func flattenHeaders(headers []Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for _, h := range headers {
		if _, ok := attrs[h.Key]; !ok {
			attrs[h.Key] = string(h.Value)
		}
	}
	return attrs
}

type fullMessage interface {
	Message
	Nackable
	Extendable
	MetadataCarrier
	RawCarrier
}

var (
	_ fullMessage = (*nsqMessage)(nil)
	_ fullMessage = (*natsMessage)(nil)
)
