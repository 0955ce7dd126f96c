package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownTicksUntilDone(t *testing.T) {
	s := newPhaseScheduler(10 * time.Millisecond)
	defer s.stop()

	var ticks atomic.Int32
	done := make(chan struct{})
	s.startCountdown(func() bool {
		if ticks.Add(1) >= 3 {
			close(done)
			return false
		}
		return true
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never completed")
	}
	// Give a stray extra tick a chance to surface.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), ticks.Load(), "ticker must stop once tick returns false")
}

func TestStartCountdownCancelsPreviousTicker(t *testing.T) {
	s := newPhaseScheduler(50 * time.Millisecond)
	defer s.stop()

	var old, fresh atomic.Int32
	s.startCountdown(func() bool { old.Add(1); return true })
	// Re-arm immediately: the first ticker has not fired yet and must
	// never fire now.
	s.startCountdown(func() bool { fresh.Add(1); return true })

	time.Sleep(180 * time.Millisecond)
	assert.Equal(t, int32(0), old.Load(), "cancelled countdown produced ticks")
	assert.GreaterOrEqual(t, fresh.Load(), int32(1))
}

func TestScheduleOnceCancelsBeforeReschedule(t *testing.T) {
	s := newPhaseScheduler(time.Hour)
	defer s.stop()

	var first, second atomic.Int32
	s.scheduleOnce(300*time.Millisecond, func() { first.Add(1) })
	s.scheduleOnce(30*time.Millisecond, func() { second.Add(1) })

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced timer must not fire")
	assert.Equal(t, int32(1), second.Load())
}

func TestStopCancelsEverything(t *testing.T) {
	s := newPhaseScheduler(20 * time.Millisecond)

	var ticks, fired atomic.Int32
	s.startCountdown(func() bool { ticks.Add(1); return true })
	s.scheduleOnce(40*time.Millisecond, func() { fired.Add(1) })
	s.stop()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(0), ticks.Load())
	assert.Equal(t, int32(0), fired.Load())
}
