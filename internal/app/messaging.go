package app

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
)

// nsqOptions maps config sub-keys to go-nsq option names. Zero values keep
// the go-nsq default.
var nsqOptions = []struct {
	key     string
	option  string
	seconds bool
}{
	{key: "max_in_flight", option: "max_in_flight"},
	{key: "max_attempts", option: "max_attempts"},
	{key: "dial_timeout_seconds", option: "dial_timeout", seconds: true},
	{key: "read_timeout_seconds", option: "read_timeout", seconds: true},
	{key: "write_timeout_seconds", option: "write_timeout", seconds: true},
	{key: "lookupd_poll_interval_seconds", option: "lookupd_poll_interval", seconds: true},
	{key: "default_requeue_delay_seconds", option: "default_requeue_delay", seconds: true},
	{key: "max_requeue_delay_seconds", option: "max_requeue_delay", seconds: true},
}

func nsqConfig(cfg config.Config, prefix string) (*nsq.Config, error) {
	out := nsq.NewConfig()
	for _, o := range nsqOptions {
		var value any
		if o.seconds {
			d := cfg.GetSecond(prefix + "." + o.key)
			if d <= 0 {
				continue
			}
			value = d
		} else {
			n := cfg.GetInt(prefix + "." + o.key)
			if n <= 0 {
				continue
			}
			value = n
		}
		if err := out.Set(o.option, value); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", prefix, o.key, err)
		}
	}
	return out, nil
}

func natsOptions(cfg config.Config) []nats.Option {
	opts := []nats.Option{
		nats.Name(cfg.GetString("messaging.nats.name")),
		nats.MaxReconnects(cfg.GetInt("messaging.nats.max_reconnects")),
		nats.MaxPingsOutstanding(cfg.GetInt("messaging.nats.max_pings_outstanding")),
		nats.RetryOnFailedConnect(cfg.GetBool("messaging.nats.retry_on_failed_connect")),
	}
	if d := cfg.GetSecond("messaging.nats.timeout_seconds"); d > 0 {
		opts = append(opts, nats.Timeout(d))
	}
	if d := cfg.GetSecond("messaging.nats.reconnect_wait_seconds"); d > 0 {
		opts = append(opts, nats.ReconnectWait(d))
	}
	if d := cfg.GetSecond("messaging.nats.ping_interval_seconds"); d > 0 {
		opts = append(opts, nats.PingInterval(d))
	}
	return opts
}

func messagingOptions(cfg config.Config) (messaging.FactoryOptions, error) {
	producer, err := nsqConfig(cfg, "messaging.nsq.producer_config")
	if err != nil {
		return messaging.FactoryOptions{}, err
	}
	consumer, err := nsqConfig(cfg, "messaging.nsq.consumer_config")
	if err != nil {
		return messaging.FactoryOptions{}, err
	}

	return messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr:         cfg.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:    cfg.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			ConsumerLookupdAddrs: cfg.GetArray("messaging.nsq.consumer_lookupd_addrs"),
			ProducerConfig:       producer,
			ConsumerConfig:       consumer,
		},
		NATS: messaging.NATSConfig{
			URL:     cfg.GetString("messaging.nats.url"),
			Options: natsOptions(cfg),
		},
	}, nil
}

// initMessaging connects the broker that carries resend requests. It stays
// nil when disabled and resends are simulated in process.
func (a *App) initMessaging() {
	if !a.config.GetBool("messaging.enabled") {
		slog.Info("messaging disabled, otp resend requests are simulated")
		return
	}

	driver := a.config.GetString("messaging.driver")
	opts, err := messagingOptions(a.config)
	if err != nil {
		fatal("invalid messaging config", err, "driver", driver)
	}

	client, err := messaging.NewFromDriver(driver, opts)
	if err != nil {
		fatal("failed to init messaging", err, "driver", driver)
	}
	a.messaging = client
}
