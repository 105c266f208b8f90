package chat

import (
	"sync"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
)

// Summary trigger defaults
const (
	DefaultSummaryThreshold = 10
	DefaultIdleWindow       = 5 * time.Minute
)

// SummaryScheduler decides when the chat log should be summarized. Two
// triggers race: a count of qualifying messages since the last summary,
// and a single-shot idle timer that is re-armed by every qualifying
// append (a debounce: bursts keep deferring the timed summary until the
// count trigger fires or activity pauses). An idle room with no pending
// messages never time-fires. A strict fixed-interval timer was
// considered and rejected; the debounce matches the product behavior.
type SummaryScheduler struct {
	mu        sync.Mutex
	threshold int
	idle      time.Duration
	fire      func()
	pending   int
	timer     *time.Timer
	stopped   bool
}

// NewSummaryScheduler creates a scheduler invoking fire on each trigger.
// Non-positive threshold or idle fall back to the defaults.
func NewSummaryScheduler(threshold int, idle time.Duration, fire func()) *SummaryScheduler {
	if threshold <= 0 {
		threshold = DefaultSummaryThreshold
	}
	if idle <= 0 {
		idle = DefaultIdleWindow
	}
	return &SummaryScheduler{
		threshold: threshold,
		idle:      idle,
		fire:      fire,
	}
}

// OnMessageAppended reports one appended message. System and AI-authored
// messages do not qualify. Reaching the threshold fires immediately and
// resets both triggers; any other qualifying append re-arms the idle
// timer relative to this call.
func (s *SummaryScheduler) OnMessageAppended(msg *model.ChatMessage) {
	if msg == nil || !msg.CountsForSummary() {
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}

	s.pending++
	if s.pending >= s.threshold {
		s.resetLocked()
		s.mu.Unlock()
		s.fire()
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.idle, s.timeFire)
	s.mu.Unlock()
}

// timeFire runs from the idle timer
func (s *SummaryScheduler) timeFire() {
	s.mu.Lock()
	if s.stopped || s.pending == 0 {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()
	s.fire()
}

// Pending returns the count of qualifying messages since the last reset
func (s *SummaryScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Reset clears the pending counter and cancels any outstanding timer
func (s *SummaryScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Stop permanently disables the scheduler and cancels its timer
func (s *SummaryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.resetLocked()
}

func (s *SummaryScheduler) resetLocked() {
	s.pending = 0
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
