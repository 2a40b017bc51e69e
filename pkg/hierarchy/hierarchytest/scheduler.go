// Package hierarchytest provides deterministic collaborators for testing code
// built on the hierarchy package.
package hierarchytest

import (
	"sync"
	"time"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/hierarchy"
)

// Scheduler is a manual clock. Callbacks run only from Advance or Tick, on
// the calling goroutine, in due order.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	s       *Scheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

var _ hierarchy.Scheduler = (*Scheduler)(nil)

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) hierarchy.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, at: s.now + d, seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer.
func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, running every callback that falls
// due, including callbacks scheduled by earlier callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.compact()
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}

// Tick runs the callbacks due now.
func (s *Scheduler) Tick() {
	s.Advance(0)
}

// Now returns the time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have neither fired nor stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	var next *timer
	for _, t := range s.timers {
		if t.stopped || t.fired || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
}

// Container is a Measurer and ResizeNotifier with a settable size.
type Container struct {
	mu          sync.Mutex
	size        geom.Vector2
	measured    bool
	measures    int
	subscribers map[int]func()
	nextID      int
}

var (
	_ hierarchy.Measurer       = (*Container)(nil)
	_ hierarchy.ResizeNotifier = (*Container)(nil)
)

// NewContainer returns a measured container of the given size.
func NewContainer(width, height float64) *Container {
	return &Container{size: geom.Vec(width, height), measured: true, subscribers: map[int]func(){}}
}

// NewUnmeasuredContainer returns a container that reports no size.
func NewUnmeasuredContainer() *Container {
	return &Container{subscribers: map[int]func(){}}
}

// ContainerSize implements hierarchy.Measurer.
func (c *Container) ContainerSize() (geom.Vector2, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.measures++
	return c.size, c.measured
}

// Subscribe implements hierarchy.ResizeNotifier.
func (c *Container) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Resize changes the size and notifies subscribers.
func (c *Container) Resize(width, height float64) {
	c.mu.Lock()
	c.size = geom.Vec(width, height)
	c.measured = true
	subs := make([]func(), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Measures returns how often the size was read.
func (c *Container) Measures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.measures
}

// Subscribers returns the number of active subscriptions.
func (c *Container) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers)
}
