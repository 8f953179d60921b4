package messaging

import "strconv"

// consumeOptions is the union of what each driver understands; a driver
// ignores the fields it has no use for.
type consumeOptions struct {
	concurrency int
	autoAck     bool
	maxInFlight int

	// channel is the NSQ channel, queueGroup the NATS queue group. Both give
	// a consumer name its own copy of each message.
	channel    string
	queueGroup string

	// params overrides the typed options by name: "queue_group", "auto_ack".
	params map[string]string
}

// ConsumeOption configures a Consume call.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if v, err := strconv.ParseBool(co.params["auto_ack"]); err == nil {
		co.autoAck = v
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

func WithChannel(channel string) ConsumeOption {
	return func(o *consumeOptions) { o.channel = channel }
}

func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithAutoAck acks after a nil handler error and nacks otherwise, unless the
// handler already answered.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

func WithMaxInFlight(maxInFlight int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = maxInFlight }
}

// WithParams merges broker-specific parameters.
func WithParams(params map[string]string) ConsumeOption {
	return func(o *consumeOptions) {
		for k, v := range params {
			WithParam(k, v)(o)
		}
	}
}

// WithParam sets one broker-specific parameter. Empty keys are ignored.
func WithParam(key, value string) ConsumeOption {
	return func(o *consumeOptions) {
		if key == "" {
			return
		}
		if o.params == nil {
			o.params = make(map[string]string)
		}
		o.params[key] = value
	}
}
