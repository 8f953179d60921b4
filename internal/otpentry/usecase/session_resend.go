package usecase

import (
	"context"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ResendInput struct {
	SessionID string `validate:"required"`
}

type ResendOutput struct {
	Accepted bool
	Snapshot entity.Snapshot
}

// Resend asks the session for a new code. A rejected request is not an error.
func (s *Usecase) Resend(ctx context.Context, in ResendInput) (*ResendOutput, error) {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.lookup(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	accepted := sess.ctrl.Resend(ctx)
	span.SetAttributes(attribute.Bool("otp.resend.accepted", accepted))
	if s.resends != nil {
		s.resends.Add(ctx, 1, metric.WithAttributes(attribute.Bool("accepted", accepted)))
	}

	return &ResendOutput{Accepted: accepted, Snapshot: sess.ctrl.Snapshot()}, nil
}
