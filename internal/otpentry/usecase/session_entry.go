package usecase

import (
	"context"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
)

type InputInput struct {
	SessionID string `validate:"required"`
	Index     int
	// Text may carry any amount of noise around the digits; only the body
	// size limit of the router bounds it.
	Text string
}

// Input forwards the text a slot received.
func (s *Usecase) Input(ctx context.Context, in InputInput) (*entity.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "Input")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.lookup(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ctrl.HandleInput(ctx, in.Text, in.Index); err != nil {
		return nil, err
	}

	snap := sess.ctrl.Snapshot()
	return &snap, nil
}

type BackspaceInput struct {
	SessionID string `validate:"required"`
	Index     int
}

// Backspace forwards a delete key pressed on a slot.
func (s *Usecase) Backspace(ctx context.Context, in BackspaceInput) (*entity.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "Backspace")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.lookup(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ctrl.Backspace(ctx, in.Index); err != nil {
		return nil, err
	}

	snap := sess.ctrl.Snapshot()
	return &snap, nil
}

type PasteInput struct {
	SessionID string `validate:"required"`
	// Text is what the client read off its clipboard; empty when the
	// clipboard was empty or unreadable. Whole SMS bodies are expected.
	Text string
}

// Paste fills the whole code from clipboard text.
func (s *Usecase) Paste(ctx context.Context, in PasteInput) (*entity.Snapshot, error) {
	ctx, span := s.startSpan(ctx, "Paste")
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.lookup(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ctrl.PasteText(ctx, in.Text); err != nil {
		return nil, err
	}

	snap := sess.ctrl.Snapshot()
	return &snap, nil
}
