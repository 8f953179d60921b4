package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
)

// HandleInput applies the raw text a slot received.
//
// Non-digits are dropped. No digit clears the slot, one digit is stored and
// moves focus to the next slot, more than one digit is a bulk fill.
func (c *Controller) HandleInput(ctx context.Context, text string, index int) error {
	if !entity.ValidIndex(index) {
		return goerror.NewInvalidInput(entity.ErrInvalidSlot)
	}

	digits := entity.StripDigits(text)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}

	var fx effects
	switch len(digits) {
	case 0:
		c.code.Clear(index)
	case 1:
		c.code.Set(index, digits)
		if index < entity.CodeLength-1 {
			fx = c.focusLocked(ctx, index+1)
		}
	default:
		fx = c.bulkFillLocked(ctx, digits)
	}
	c.mu.Unlock()

	fx.run()
	return nil
}

// BulkFill writes digits from slot 0 as if they arrived in one event.
func (c *Controller) BulkFill(ctx context.Context, digits string) error {
	digits = entity.StripDigits(digits)
	if digits == "" {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	fx := c.bulkFillLocked(ctx, digits)
	c.mu.Unlock()

	fx.run()
	return nil
}

// bulkFillLocked keeps the slots past the written count untouched and moves
// focus one past the last written slot, stopping at the last slot.
func (c *Controller) bulkFillLocked(ctx context.Context, digits string) effects {
	n := c.code.Fill(digits)

	next := min(entity.CodeLength-1, n-1)
	if next+1 <= entity.CodeLength-1 {
		next++
	}

	return c.focusLocked(ctx, next)
}

// Backspace handles the delete key on an already empty slot: focus moves back
// and the previous slot is cleared. A filled slot or slot 0 is left alone.
func (c *Controller) Backspace(ctx context.Context, index int) error {
	if !entity.ValidIndex(index) {
		return goerror.NewInvalidInput(entity.ErrInvalidSlot)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}

	var fx effects
	if index > 0 && c.code.IsEmpty(index) {
		fx = c.focusLocked(ctx, index-1)
		c.code.Clear(index - 1)
	}
	c.mu.Unlock()

	fx.run()
	return nil
}

// Paste reads the clipboard and fills the whole code from it.
func (c *Controller) Paste(ctx context.Context) error {
	text, err := c.clipboard.ReadText(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read clipboard", "session_id", c.sessionID, "error", err)
		text = ""
	}

	return c.PasteText(ctx, text)
}

// PasteText fills the whole code from text already read off a clipboard.
// The buffer is only touched when text carries at least a full code.
func (c *Controller) PasteText(ctx context.Context, text string) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return errClosed()
	}

	if text == "" {
		return c.fail(ctx, entity.ErrEmptyClipboard)
	}

	digits := entity.StripDigits(text)
	if len(digits) < entity.CodeLength {
		return c.fail(ctx, entity.ErrInsufficientDigits)
	}

	return c.BulkFill(ctx, digits[:entity.CodeLength])
}
