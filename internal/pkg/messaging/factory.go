package messaging

import (
	"errors"
	"fmt"
	"strings"
)

// Driver names accepted by NewFromDriver.
const (
	DriverNSQ  = "nsq"
	DriverNATS = "nats"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries the config of every driver; only the selected one is read.
type FactoryOptions struct {
	NSQ  NSQConfig
	NATS NATSConfig
}

// NewFromDriver builds the client for driver, matched case-insensitively.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverNATS:
		return NewNATS(opts.NATS)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
