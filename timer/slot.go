package timer

import (
	"sync"
	"time"
)

// Executor runs fn serialized with the owner's other handlers.
type Executor func(fn func())

// Slot owns at most one pending delayed callback. Scheduling replaces the
// pending callback; a callback that was already in flight when it got
// replaced or cancelled is dropped instead of running late.
type Slot struct {
	name  string
	clock Clock
	exec  Executor

	mu   sync.Mutex
	gen  uint64
	stop Stopper
}

// NewSlot creates a slot. A nil exec runs callbacks directly on the clock's goroutine.
func NewSlot(name string, clock Clock, exec Executor) *Slot {
	if clock == nil {
		clock = System()
	}
	if exec == nil {
		exec = func(fn func()) { fn() }
	}
	return &Slot{name: name, clock: clock, exec: exec}
}

// Name returns the label the slot was created with.
func (s *Slot) Name() string {
	return s.name
}

// Schedule cancels any pending callback and arranges for fn to run after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	gen := s.gen
	s.stop = s.clock.AfterFunc(d, func() {
		s.exec(func() {
			if s.claim(gen) {
				fn()
			}
		})
	})
}

// Cancel drops the pending callback, reporting whether there was one.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked()
}

// Pending reports whether a callback is scheduled and has not run yet.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *Slot) cancelLocked() bool {
	if s.stop == nil {
		return false
	}
	s.stop.Stop()
	s.stop = nil
	s.gen++
	return true
}

func (s *Slot) claim(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.stop == nil {
		return false
	}
	s.stop = nil
	return true
}
