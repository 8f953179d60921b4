package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
	"github.com/shandysiswandi/otpentry/internal/pkg/goroutine"
)

const defaultReapInterval = time.Minute

// Snapshot returns the current state of a session.
func (s *Usecase) Snapshot(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "Snapshot")
	defer span.End()

	sess, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := sess.ctrl.Snapshot()
	return &snap, nil
}

// CloseSession unmounts a session: its timers stop and its streams end.
func (s *Usecase) CloseSession(ctx context.Context, sessionID string) error {
	ctx, span := s.startSpan(ctx, "CloseSession")
	defer span.End()

	if !s.remove(ctx, sessionID) {
		return goerror.WrapBusiness(entity.ErrSessionNotFound, "Session not found", goerror.CodeNotFound)
	}

	slog.InfoContext(ctx, "otp session closed", "session_id", sessionID)
	return nil
}

// Stream subscribes to the events a session pushes to its client. The channel
// is closed when ctx is done or the session closes.
func (s *Usecase) Stream(ctx context.Context, sessionID string) (<-chan entity.Event, error) {
	sess, err := s.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return sess.hub.subscribe(ctx), nil
}

// ReapIdle closes every session with no activity within the idle TTL and
// returns how many were closed. A session with an open stream is kept.
func (s *Usecase) ReapIdle(ctx context.Context) int {
	now := s.clock.Now()
	ttl := s.idleTTL()

	var idle []string
	s.mu.RLock()
	for id, sess := range s.sessions {
		if sess.hub.subscribers() == 0 && sess.idleSince(now) >= ttl {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()

	reaped := 0
	for _, id := range idle {
		if s.remove(ctx, id) {
			reaped++
		}
	}

	if reaped > 0 {
		slog.InfoContext(ctx, "idle otp sessions reaped", "count", reaped)
	}
	return reaped
}

// CloseAll closes every open session.
func (s *Usecase) CloseAll(ctx context.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.remove(ctx, id)
	}
}

// RunReaper reaps idle sessions periodically until ctx is done, then closes
// the remaining sessions.
func (s *Usecase) RunReaper(ctx context.Context, routine *goroutine.Manager) {
	interval := s.cfg.GetSecond("otp.session.reap_interval_seconds")
	if interval <= 0 {
		interval = defaultReapInterval
	}

	started := routine.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		slog.InfoContext(ctx, "otp session reaper started", "interval", interval.String())
		for {
			select {
			case <-ctx.Done():
				s.CloseAll(context.WithoutCancel(ctx))
				return nil
			case <-ticker.C:
				s.ReapIdle(ctx)
			}
		}
	})
	if !started {
		slog.ErrorContext(ctx, "otp session reaper not started, idle sessions will not be reaped")
	}
}
