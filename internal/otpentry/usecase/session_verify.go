package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type VerifyInput struct {
	SessionID string `validate:"required"`
}

// Verify checks the code held by the session.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*entity.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.lookup(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	err = sess.ctrl.Verify(ctx)
	s.countVerification(ctx, err)
	if err != nil {
		return nil, err
	}

	snap := sess.ctrl.Snapshot()
	return &snap, nil
}

func (s *Usecase) countVerification(ctx context.Context, err error) {
	if s.verifications == nil {
		return
	}

	outcome := "verified"
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrIncompleteCode):
		outcome = "incomplete"
	case errors.Is(err, entity.ErrInvalidCode):
		outcome = "invalid"
	default:
		outcome = "error"
	}

	s.verifications.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
