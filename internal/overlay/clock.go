package overlay

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default uses time.AfterFunc; tests
// substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// slot is a re-armable timer owned by the event loop. The generation
// counter makes a callback that already fired before Stop a no-op.
type slot struct {
	timer Timer
	gen   uint64
}

func (s *Session) arm(sl *slot, d time.Duration, fn func()) {
	s.disarm(sl)
	gen := sl.gen
	sl.timer = s.clock.AfterFunc(d, func() {
		s.post(func() {
			if sl.gen != gen {
				return
			}
			sl.timer = nil
			fn()
		})
	})
}

func (s *Session) disarm(sl *slot) {
	if sl.timer != nil {
		sl.timer.Stop()
		sl.timer = nil
	}
	sl.gen++
}
