package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/clock"
	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultIdleTTL = 10 * time.Minute

type Usecase struct {
	ctx       context.Context
	cfg       config.Config
	ins       instrument.Instrumentation
	clock     clock.Clocker
	validator validator.Validator
	uuid      uid.StringID
	uid       uid.NumberID
	verifier  CodeVerifier
	sender    ResendSender

	mu       sync.RWMutex
	sessions map[string]*session

	activeSessions metric.Int64UpDownCounter
	verifications  metric.Int64Counter
	resends        metric.Int64Counter
}

type Dependency struct {
	// Ctx is the base context of timer callbacks; it lives as long as the app.
	Ctx        context.Context
	Config     config.Config
	Instrument instrument.Instrumentation
	Clock      clock.Clocker
	Validator  validator.Validator
	UUID       uid.StringID
	UID        uid.NumberID
	Verifier   CodeVerifier
	Sender     ResendSender
}

func NewOTPEntry(dep Dependency) *Usecase {
	s := &Usecase{
		ctx:       dep.Ctx,
		cfg:       dep.Config,
		ins:       dep.Instrument,
		clock:     dep.Clock,
		validator: dep.Validator,
		uuid:      dep.UUID,
		uid:       dep.UID,
		verifier:  dep.Verifier,
		sender:    dep.Sender,
		sessions:  make(map[string]*session),
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	meter := s.ins.Meter("otpentry.usecase")

	var err error
	s.activeSessions, err = meter.Int64UpDownCounter("otpentry.sessions.active", metric.WithDescription("Number of open entry sessions"))
	if err != nil {
		slog.Error("failed to create active sessions counter", "error", err)
	}
	s.verifications, err = meter.Int64Counter("otpentry.verifications", metric.WithDescription("Number of verify attempts by outcome"))
	if err != nil {
		slog.Error("failed to create verifications counter", "error", err)
	}
	s.resends, err = meter.Int64Counter("otpentry.resends", metric.WithDescription("Number of resend requests by acceptance"))
	if err != nil {
		slog.Error("failed to create resends counter", "error", err)
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otpentry.usecase").Start(ctx, name)
}

func (s *Usecase) idleTTL() time.Duration {
	if ttl := s.cfg.GetSecond("otp.session.idle_ttl_seconds"); ttl > 0 {
		return ttl
	}
	return defaultIdleTTL
}

// lookup returns the open session with id and marks it as seen.
func (s *Usecase) lookup(ctx context.Context, id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		slog.WarnContext(ctx, "otp session not found", "session_id", id)
		return nil, goerror.WrapBusiness(entity.ErrSessionNotFound, "Session not found", goerror.CodeNotFound)
	}

	sess.touch(s.clock.Now())
	return sess, nil
}

// remove detaches the session from the registry and shuts it down.
// It reports false when the session was already gone.
func (s *Usecase) remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return false
	}

	sess.close()
	if s.activeSessions != nil {
		s.activeSessions.Add(ctx, -1)
	}
	return true
}

// validate maps validator failures to a goerror validation error.
func (s *Usecase) validate(in any) error {
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}
	return nil
}
