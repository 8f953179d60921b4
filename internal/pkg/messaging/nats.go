package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	// ErrNATSSubjectRequired is returned when the subject is empty.
	ErrNATSSubjectRequired = errors.New("pkgmessage: nats subject is required")
	// ErrNATSURLRequired is returned when the NATS server URL is missing.
	ErrNATSURLRequired = errors.New("pkgmessage: nats url is required")
	// ErrNATSHandlerRequired is returned when Consume is called with a nil handler.
	ErrNATSHandlerRequired = errors.New("pkgmessage: nats handler is required")
)

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS publishes and consumes core NATS subjects. Queue groups give each
// consumer name one delivery per message.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains every subscription, then the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := n.subs
	n.subs = nil
	n.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		errs = append(errs, sub.Drain())
	}
	errs = append(errs, n.conn.Drain())
	n.conn.Close()

	return errors.Join(errs...)
}

// Publish sends msg to subject destination and flushes. Delay is unsupported.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrNATSSubjectRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	nmsg := nats.NewMsg(destination)
	nmsg.Data = msg.Body
	for _, h := range outgoingHeaders(msg) {
		nmsg.Header.Add(h.Key, string(h.Value))
	}

	if err := n.conn.PublishMsg(nmsg); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats flush: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Consume blocks until ctx is done, handing each message of source to
// handler on WithConcurrency workers.
func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNATSSubjectRequired
	}
	if handler == nil {
		return ErrNATSHandlerRequired
	}

	co := newConsumeOptions(opts...)
	w := newNATSWorkers(ctx, handler, co)

	sub, err := n.conn.QueueSubscribe(source, queueGroupFromConsumeOptions(co), w.enqueue)
	if err != nil {
		w.stop()
		return fmt.Errorf("pkgmessage: nats subscribe: %w", err)
	}

	if err := n.track(sub); err != nil {
		return errors.Join(err, sub.Drain(), w.stop())
	}
	if err := n.conn.Flush(); err != nil {
		return errors.Join(fmt.Errorf("pkgmessage: nats flush: %w", err), sub.Drain(), w.stop())
	}

	<-ctx.Done()
	return errors.Join(ctx.Err(), sub.Drain(), w.stop())
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.subs = append(n.subs, sub)
	return nil
}

// natsWorkers fans subscription callbacks out to a fixed set of goroutines.
type natsWorkers struct {
	ctx     context.Context
	mu      sync.RWMutex
	stopped bool
	msgs    chan *nats.Msg
	wg      sync.WaitGroup
	handler Handler
	autoAck bool
}

func newNATSWorkers(ctx context.Context, handler Handler, co consumeOptions) *natsWorkers {
	concurrency := concurrencyOrDefault(co.concurrency, 1)
	w := &natsWorkers{
		ctx:     ctx,
		msgs:    make(chan *nats.Msg, concurrency),
		handler: handler,
		autoAck: co.autoAck,
	}
	for range concurrency {
		w.wg.Go(w.loop)
	}
	return w
}

func (w *natsWorkers) enqueue(m *nats.Msg) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return
	}
	select {
	case w.msgs <- m:
	case <-w.ctx.Done():
	}
}

func (w *natsWorkers) loop() {
	for raw := range w.msgs {
		msg := newNATSMessage(raw, time.Now())
		herr := callHandlerWithRecover(w.ctx, "nats", func() error {
			return w.handler(w.ctx, msg)
		})
		if msg.hasResponded() || !w.autoAck {
			continue
		}
		//nolint:errcheck // core NATS has no redelivery to report to
		_ = ackByResult(w.ctx, msg, herr)
	}
}

// stop drops callbacks still arriving from a draining subscription and
// waits for in-flight handlers.
func (w *natsWorkers) stop() error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.msgs)
	}
	w.mu.Unlock()

	w.wg.Wait()
	return nil
}

func queueGroupFromConsumeOptions(opts consumeOptions) string {
	if v := opts.params["queue_group"]; v != "" {
		return v
	}
	return opts.queueGroup
}

func concurrencyOrDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// ackByResult acks a handled message and nacks a failed one.
func ackByResult(ctx context.Context, msg interface {
	Ack(context.Context) error
	Nack(context.Context) error
}, handlerErr error) error {
	if handlerErr == nil {
		return msg.Ack(ctx)
	}
	return msg.Nack(ctx)
}
