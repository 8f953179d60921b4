package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
	"go.uber.org/atomic"
)

type CreateSessionInput struct {
	DestinationHint string `validate:"omitempty,hint"`
}

type CreateSessionOutput struct {
	SessionID string
	Snapshot  entity.Snapshot
}

// CreateSession mounts a new entry screen and starts its cooldown.
func (s *Usecase) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	hint := in.DestinationHint
	if hint == "" {
		hint = s.cfg.GetString("otp.destination_hint")
	}

	id := s.uuid.Generate()
	h := newHub(id, s.uid, s.clock)

	ctrl, err := NewController(ControllerConfig{
		BaseContext:     s.ctx,
		SessionID:       id,
		DestinationHint: hint,
		CooldownSeconds: s.cfg.GetInt("otp.cooldown_seconds"),
		ResendLatency:   s.cfg.GetMillisecond("otp.resend_latency_ms"),
		Clock:           s.clock,
		Presenter:       h,
		Navigator:       h,
		Verifier:        s.verifier,
		Sender:          s.sender,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to build otp controller", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	sess := &session{id: id, ctrl: ctrl, hub: h, createdAt: now, lastSeen: atomic.NewTime(now)}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	ctrl.Start()
	if s.activeSessions != nil {
		s.activeSessions.Add(ctx, 1)
	}

	slog.InfoContext(ctx, "otp session created", "session_id", id, "destination_hint", hint)

	return &CreateSessionOutput{SessionID: id, Snapshot: ctrl.Snapshot()}, nil
}
