package hierarchy

import (
	"time"

	"github.com/matzehuels/stackview/pkg/geom"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Scheduler runs callbacks after a delay. A zero delay means the next tick.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules callbacks with time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Measurer reports the current size of the hosting container.
type Measurer interface {
	// ContainerSize returns the size and false when the container has not
	// been measured yet.
	ContainerSize() (geom.Vector2, bool)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func() (geom.Vector2, bool)

// ContainerSize calls f.
func (f MeasurerFunc) ContainerSize() (geom.Vector2, bool) { return f() }

// ResizeNotifier delivers container resize notifications.
type ResizeNotifier interface {
	// Subscribe registers fn and returns a function releasing it.
	Subscribe(fn func()) (unsubscribe func())
}

// timerSlot holds one cancelable timer. The generation invalidates a callback
// that was already running when the timer was stopped or replaced.
type timerSlot struct {
	timer Timer
	gen   uint64
}

func (s *timerSlot) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *timerSlot) pending() bool {
	return s.timer != nil
}
