package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAdvanceRunsDueCallbacksInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := NewFake(start)

	var got []string
	fc.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	fc.AfterFunc(time.Second, func() { got = append(got, "a") })
	fc.AfterFunc(5*time.Second, func() { got = append(got, "c") })

	fc.Advance(2 * time.Second)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, start.Add(2*time.Second), fc.Now())
	assert.Equal(t, 1, fc.Pending())
}

func TestFakeAdvanceRunsTimersScheduledInsideWindow(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		fc.AfterFunc(time.Second, tick)
	}
	fc.AfterFunc(time.Second, tick)

	fc.Advance(3 * time.Second)

	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, fc.Pending())
}

func TestFakeTimerStop(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))

	ran := false
	timer := fc.AfterFunc(time.Second, func() { ran = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	fc.Advance(time.Minute)
	assert.False(t, ran)
	assert.Zero(t, fc.Pending())
}

func TestTimeClockerAfterFunc(t *testing.T) {
	done := make(chan struct{})
	New().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}
