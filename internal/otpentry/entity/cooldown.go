package entity

// DefaultCooldownSeconds is the wait before another code may be requested.
const DefaultCooldownSeconds = 30

// Cooldown counts down the seconds left before a resend is allowed.
// It never goes below zero.
type Cooldown struct {
	remaining int
}

// NewCooldown returns a cooldown starting at seconds.
func NewCooldown(seconds int) Cooldown {
	c := Cooldown{}
	c.Reset(seconds)
	return c
}

// Reset restarts the countdown.
func (c *Cooldown) Reset(seconds int) {
	c.remaining = max(seconds, 0)
}

// Tick removes one second and reports whether this tick reached zero.
// Ticking an expired cooldown reports false.
func (c *Cooldown) Tick() bool {
	if c.remaining == 0 {
		return false
	}

	c.remaining--
	return c.remaining == 0
}

// Remaining returns the seconds left.
func (c Cooldown) Remaining() int {
	return c.remaining
}

// Ready reports whether the countdown has finished.
func (c Cooldown) Ready() bool {
	return c.remaining == 0
}
