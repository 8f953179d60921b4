package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpentry/internal/otpentry/entity"
)

// Resend asks for a new code. It is accepted only when the cooldown has run
// out and no resend is in flight; otherwise it changes nothing and returns
// false.
func (c *Controller) Resend(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.resending || !c.cooldown.Ready() {
		slog.DebugContext(ctx, "resend rejected", "session_id", c.sessionID,
			"cooldown", c.cooldown.Remaining(), "resending", c.resending)
		return false
	}

	c.resending = true
	c.round++
	c.info = infoResending

	round := c.round
	c.resendTimer = c.clock.AfterFunc(c.resendLatency, func() { c.completeResend(round) })

	return true
}

func (c *Controller) completeResend(round int) {
	c.mu.Lock()
	c.resendTimer = nil
	if c.closed {
		c.mu.Unlock()
		return
	}
	req := ResendRequest{SessionID: c.sessionID, Round: round, Destination: c.hint}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, sendCodeTimeout)
	err := c.sender.SendCode(ctx, req)
	cancel()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.resending = false
	if err != nil {
		n, _ := entity.NoticeFor(entity.ErrResendFailed)
		c.info = n.Message
		c.mu.Unlock()

		slog.ErrorContext(c.ctx, "failed to send new code", "session_id", c.sessionID, "round", round, "error", err)
		c.presenter.ShowNotice(c.ctx, n)
		return
	}

	c.info = "A new code was sent to " + c.hint
	c.cooldown.Reset(c.cooldownSecs)
	c.armTickLocked()
	c.mu.Unlock()
}
