package app

import (
	"testing"
	"time"

	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/tmp/otpentry.yaml")
	assert.Equal(t, "/tmp/otpentry.yaml", configPath())

	t.Setenv("CONFIG_PATH", "")
	assert.Contains(t, []string{containerConfigPath, localConfigPath}, configPath())
}

func TestMessagingOptions(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
messaging:
  nsq:
    producer_addr: 127.0.0.1:4150
    consumer_nsqd_addrs: "127.0.0.1:4150, 127.0.0.2:4150"
    consumer_config:
      max_in_flight: 10
      read_timeout_seconds: 30
  nats:
    url: nats://127.0.0.1:4222
    name: otpentry
`))
	require.NoError(t, err)

	opts, err := messagingOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4150", opts.NSQ.ProducerAddr)
	assert.Equal(t, []string{"127.0.0.1:4150", "127.0.0.2:4150"}, opts.NSQ.ConsumerNSQDAddrs)
	assert.Empty(t, opts.NSQ.ConsumerLookupdAddrs)
	assert.Equal(t, 10, opts.NSQ.ConsumerConfig.MaxInFlight)
	assert.Equal(t, 30*time.Second, opts.NSQ.ConsumerConfig.ReadTimeout)
	assert.Equal(t, time.Second, opts.NSQ.ConsumerConfig.DialTimeout)
	assert.Equal(t, 1, opts.NSQ.ProducerConfig.MaxInFlight)
	assert.Equal(t, "nats://127.0.0.1:4222", opts.NATS.URL)
	assert.Len(t, opts.NATS.Options, 4)
}
