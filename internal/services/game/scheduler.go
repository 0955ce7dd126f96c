package game

import (
	"sync"
	"time"
)

// phaseScheduler owns the round timers: one recurring countdown ticker and
// one one-shot reset timer. At most one timer of each kind is ever live;
// starting a new one cancels the previous instance first, so a re-entrant
// StartCountdown can never produce duplicate ticks.
type phaseScheduler struct {
	mu        sync.Mutex
	tickEvery time.Duration

	stopTick   chan struct{}
	resetTimer *time.Timer
}

func newPhaseScheduler(tickEvery time.Duration) *phaseScheduler {
	return &phaseScheduler{tickEvery: tickEvery}
}

// startCountdown fires tick once per interval until tick returns false or
// the countdown is cancelled.
func (s *phaseScheduler) startCountdown(tick func() bool) {
	s.mu.Lock()
	s.cancelCountdownLocked()
	stop := make(chan struct{})
	s.stopTick = stop
	s.mu.Unlock()

	ticker := time.NewTicker(s.tickEvery)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()
}

func (s *phaseScheduler) cancelCountdown() {
	s.mu.Lock()
	s.cancelCountdownLocked()
	s.mu.Unlock()
}

func (s *phaseScheduler) cancelCountdownLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

// scheduleOnce arms the one-shot timer, cancelling any pending one.
func (s *phaseScheduler) scheduleOnce(after time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.AfterFunc(after, fn)
}

// stop cancels everything; used on shutdown.
func (s *phaseScheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelCountdownLocked()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}
