package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

// CodeSource yields the code a delivery would carry. It is nil for drivers
// that have no code to hand out.
type CodeSource interface {
	CurrentCode() (string, error)
}

type MQHandler struct {
	codes CodeSource
	uuid  uid.StringID
	ins   instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OTPResendDelivery stands in for the SMS gateway: it logs the delivery of a
// resend request instead of sending anything.
func (h *MQHandler) OTPResendDelivery(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("otpentry.inbound.mq").Start(ctx, "OTPResendDelivery")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: otp resend delivery", "msg_body", string(body))

	var payload event.OTPResendMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp resend delivery", "msg_body", string(body), "error", err)
		return nil
	}

	if payload.SessionID == "" {
		slog.WarnContext(ctx, "otp resend delivery without session id", "msg_body", string(body))
		return nil
	}

	attrs := []any{
		"session_id", payload.SessionID,
		"round", payload.Round,
		"destination", payload.Destination,
		"requested_at", time.Unix(payload.RequestedAt, 0).UTC(),
	}

	if h.codes != nil {
		code, err := h.codes.CurrentCode()
		if err != nil {
			slog.ErrorContext(ctx, "failed to produce code for otp resend delivery", "session_id", payload.SessionID, "error", err)
			return err
		}
		attrs = append(attrs, "code", code)
	}

	slog.InfoContext(ctx, "otp code delivered", attrs...)

	return nil
}
