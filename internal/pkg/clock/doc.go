// Package clock is the time source for session timers.
//
// Cooldown ticks and simulated resend latency are scheduled through
// Clocker.AfterFunc, so tests drive them with Fake: nothing fires until the
// test calls Advance, and due callbacks then run in deadline order.
package clock
