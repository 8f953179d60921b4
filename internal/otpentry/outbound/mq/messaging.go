package mq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/otpentry/internal/otpentry/usecase"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/shandysiswandi/otpentry/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	keyOfCorrelationID string = "cID"

	defaultDedupeTTL  = 10 * time.Minute
	publishMaxRetries = 3
)

// Config configures Messaging. Idempotency may be nil to publish every request.
type Config struct {
	Client      messaging.Publisher
	Idempotency idempotency.Idempotency
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	DedupeTTL   time.Duration
	RetryBase   time.Duration
}

// Messaging sends resend requests to the broker.
type Messaging struct {
	client    messaging.Publisher
	idemp     idempotency.Idempotency
	clock     clock.Clocker
	ins       instrument.Instrumentation
	dedupeTTL time.Duration
	retryBase time.Duration
}

func NewMessaging(cfg Config) *Messaging {
	m := &Messaging{
		client:    cfg.Client,
		idemp:     cfg.Idempotency,
		clock:     cfg.Clock,
		ins:       cfg.Instrument,
		dedupeTTL: cfg.DedupeTTL,
		retryBase: cfg.RetryBase,
	}
	if m.dedupeTTL <= 0 {
		m.dedupeTTL = defaultDedupeTTL
	}
	if m.retryBase <= 0 {
		m.retryBase = 100 * time.Millisecond
	}
	return m
}

// SendCode publishes one resend request. A request already published for the
// same session round is skipped.
func (m *Messaging) SendCode(ctx context.Context, req usecase.ResendRequest) error {
	ctx, span := m.ins.Tracer("otpentry.outbound.mq").Start(ctx, "SendCode")
	defer span.End()

	span.SetAttributes(
		attribute.String("otp.session_id", req.SessionID),
		attribute.Int("otp.round", req.Round),
	)

	if m.idemp == nil {
		return m.publish(ctx, req)
	}

	key := "otp_resend:" + req.SessionID + ":" + strconv.Itoa(req.Round)
	err := m.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return m.publish(ctx, req)
	}, idempotency.WithStateTTL(m.dedupeTTL))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "duplicate otp resend skipped", "session_id", req.SessionID, "round", req.Round, "error", err)
		return nil
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) publish(ctx context.Context, req usecase.ResendRequest) error {
	body, err := json.Marshal(event.OTPResendMessage{
		SessionID:   req.SessionID,
		Round:       req.Round,
		Destination: req.Destination,
		RequestedAt: m.clock.Now().Unix(),
	})
	if err != nil {
		return err
	}

	msg := messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(req.SessionID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}

	b := retry.WithMaxRetries(publishMaxRetries, retry.NewExponential(m.retryBase))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if _, err := m.client.Publish(ctx, event.OTPResendDestination, msg); err != nil {
			slog.WarnContext(ctx, "failed to publish otp resend, retrying", "session_id", req.SessionID, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Simulated stands in for a broker when messaging is disabled: the request
// is only logged.
type Simulated struct{}

func (Simulated) SendCode(ctx context.Context, req usecase.ResendRequest) error {
	slog.InfoContext(ctx, "simulated otp resend", "session_id", req.SessionID, "round", req.Round, "destination", req.Destination)
	return nil
}
