package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
)

// Verify checks a complete code. A rejected code stays in the buffer so the
// user can correct it in place.
func (c *Controller) Verify(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	if !c.code.IsComplete() {
		c.mu.Unlock()
		return c.fail(ctx, entity.ErrIncompleteCode)
	}
	code := c.code.String()
	c.mu.Unlock()

	ok, err := c.verifier.VerifyCode(ctx, code)

	// the session may have been closed while the verifier ran
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	if err == nil && ok {
		c.verified = true
	}
	c.mu.Unlock()

	if err != nil {
		slog.ErrorContext(ctx, "failed to verify code", "session_id", c.sessionID, "error", err)
		c.presenter.ShowNotice(ctx, entity.Notice{Kind: entity.NoticeVerifyFailed, Title: "Verification failed"})
		return goerror.NewServer(err)
	}
	if !ok {
		return c.fail(ctx, entity.ErrInvalidCode)
	}

	c.presenter.ShowNotice(ctx, entity.Notice{Kind: entity.NoticeVerified, Title: "Verified", Message: "OTP verified."})
	c.navigator.ProceedAuthenticated(ctx)

	return nil
}
