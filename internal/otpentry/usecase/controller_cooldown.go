package usecase

import "time"

// armTickLocked schedules the next one-second tick unless one is pending.
func (c *Controller) armTickLocked() {
	if c.tick != nil || c.closed || c.cooldown.Ready() {
		return
	}
	c.tick = c.clock.AfterFunc(time.Second, c.onTick)
}

func (c *Controller) onTick() {
	c.mu.Lock()
	c.tick = nil
	if c.closed {
		c.mu.Unlock()
		return
	}

	expired := c.cooldown.Tick()
	c.armTickLocked()
	c.mu.Unlock()

	if expired {
		c.presenter.Announce(c.ctx, announceResendAvailable)
	}
}
