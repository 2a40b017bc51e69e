package hierarchy

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/layout"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/viewport"
)

const (
	// DefaultAnimationDuration is how long a push or pop animates.
	DefaultAnimationDuration = 2000 * time.Millisecond

	// DefaultResizeDebounce coalesces bursts of resize notifications.
	DefaultResizeDebounce = 20 * time.Millisecond
)

// Phase is the animation state of a controller.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	if p == Animating {
		return "animating"
	}
	return "idle"
}

// Options configures a Controller.
type Options struct {
	// AnimationDuration defaults to DefaultAnimationDuration.
	AnimationDuration time.Duration

	// ResizeDebounce defaults to DefaultResizeDebounce.
	ResizeDebounce time.Duration

	// WidthFunc and MinWidthFunc override the layout defaults.
	WidthFunc    layout.WidthFunc
	MinWidthFunc layout.MinWidthFunc

	// Resize delivers container resize notifications while mounted.
	Resize ResizeNotifier

	// Scheduler defaults to RealScheduler.
	Scheduler Scheduler

	// OnChange is called after every state change, outside the controller lock.
	OnChange func()

	// Logger defaults to log.Default().
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.AnimationDuration == 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.ResizeDebounce == 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// State is a copy of the controller state.
type State[T any] struct {
	Phase Phase

	// ContainerSize is nil until the container has been measured.
	ContainerSize *geom.Vector2

	// ViewportOffset is derived from ContainerSize and the active layout.
	ViewportOffset geom.Vector2

	// Snapshot holds the panel list from before a removal while it animates out.
	Snapshot []T

	RenderedCount int
}

// Controller owns the state of one hierarchy view. It is safe for use from
// multiple goroutines; timer callbacks and host calls are serialized.
type Controller[T any] struct {
	id       string
	opts     Options
	measurer Measurer
	logger   *log.Logger

	mu            sync.Mutex
	children      []T
	phase         Phase
	containerSize *geom.Vector2
	snapshot      []T
	renderedCount int
	targetCount   int
	mounted       bool
	closed        bool
	unsubscribe   func()

	debounce      timerSlot
	animation     timerSlot
	snapshotClear timerSlot
	countUpdate   timerSlot
}

// New creates an unmounted controller measuring its container through m.
func New[T any](m Measurer, opts Options) *Controller[T] {
	opts = opts.withDefaults()
	id := uuid.NewString()
	return &Controller[T]{
		id:       id,
		opts:     opts,
		measurer: m,
		logger:   opts.Logger.With("controller", id[:8]),
	}
}

// ID returns the controller's instance ID.
func (c *Controller[T]) ID() string { return c.id }

// Mount measures the container, renders the current children and subscribes
// to resize notifications. Calling Mount twice has no effect.
func (c *Controller[T]) Mount() {
	c.mu.Lock()
	if c.mounted || c.closed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.renderedCount = len(c.children)
	c.targetCount = c.renderedCount
	c.containerSize = c.measure()
	c.logger.Debug("mounted", "count", c.renderedCount, "size", sizeAttr(c.containerSize))
	c.mu.Unlock()

	if c.opts.Resize != nil {
		unsubscribe := c.opts.Resize.Subscribe(c.NotifyResize)
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			unsubscribe()
			return
		}
		c.unsubscribe = unsubscribe
		c.mu.Unlock()
	}
	c.changed()
}

// Unmount releases the resize subscription and cancels all pending timers.
// No state changes happen afterwards.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.debounce.stop()
	c.animation.stop()
	c.snapshotClear.stop()
	c.countUpdate.stop()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.logger.Debug("unmounted")
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// NotifyResize reports a container resize. Bursts are debounced; when the
// debounce fires the controller stops animating and remeasures.
func (c *Controller[T]) NotifyResize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.schedule(&c.debounce, c.opts.ResizeDebounce, func() {
		c.animation.stop()
		c.setPhase(Idle)
		c.containerSize = c.measure()
		if c.containerSize != nil {
			observability.Controller().OnResize(c.id, c.containerSize.X, c.containerSize.Y)
		}
		c.logger.Debug("resized", "size", sizeAttr(c.containerSize))
	})
}

// SetChildren replaces the panel list. Before Mount it only records the
// list. Afterwards a change in length starts an animation: the new count is
// rendered on the next scheduler tick, and removed panels stay in a snapshot
// until the animation duration has passed.
func (c *Controller[T]) SetChildren(children []T) {
	c.mu.Lock()
	previous := c.children
	c.children = slices.Clone(children)

	if !c.mounted || c.closed || len(children) == len(previous) {
		notify := c.mounted && !c.closed
		c.mu.Unlock()
		if notify {
			c.changed()
		}
		return
	}

	if len(children) < len(previous) {
		c.snapshot = previous
		c.schedule(&c.snapshotClear, c.opts.AnimationDuration, func() {
			c.snapshot = nil
		})
	}

	c.targetCount = len(children)
	c.schedule(&c.countUpdate, 0, func() {
		c.renderedCount = c.targetCount
	})
	c.triggerAnimation()
	c.logger.Debug("children changed", "from", len(previous), "to", len(children))
	c.mu.Unlock()

	c.changed()
}

// triggerAnimation enters Animating and restarts the revert timer.
func (c *Controller[T]) triggerAnimation() {
	c.setPhase(Animating)
	c.schedule(&c.animation, c.opts.AnimationDuration, func() {
		c.setPhase(Idle)
	})
}

// schedule replaces the timer in slot with one running fn under the lock
// after d, followed by OnChange. The caller must hold c.mu.
func (c *Controller[T]) schedule(slot *timerSlot, d time.Duration, fn func()) {
	slot.stop()
	gen := slot.gen
	slot.timer = c.opts.Scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if c.closed || slot.gen != gen {
			c.mu.Unlock()
			return
		}
		slot.timer = nil
		fn()
		c.mu.Unlock()
		c.changed()
	})
}

func (c *Controller[T]) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	observability.Controller().OnPhaseChange(c.id, c.phase.String(), p.String())
	c.phase = p
}

func (c *Controller[T]) measure() *geom.Vector2 {
	if c.measurer == nil {
		return nil
	}
	size, ok := c.measurer.ContainerSize()
	if !ok {
		return nil
	}
	return &size
}

func sizeAttr(size *geom.Vector2) any {
	if size == nil {
		return "unmeasured"
	}
	return *size
}

func (c *Controller[T]) changed() {
	if c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

// Phase returns the current animation phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// State returns a copy of the current state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State[T]{
		Phase:         c.phase,
		Snapshot:      slices.Clone(c.snapshot),
		RenderedCount: c.renderedCount,
	}
	if c.containerSize != nil {
		size := *c.containerSize
		s.ContainerSize = &size
		if c.renderedCount > 0 {
			layouts := c.layouts(size)
			s.ViewportOffset = viewport.Offset(layouts, c.renderedCount-1, size)
		}
	}
	return s
}

func (c *Controller[T]) layouts(size geom.Vector2) []layout.Layout {
	return layout.Compute(layout.Params{
		ElementCount:  c.renderedCount,
		ContainerSize: size,
		WidthFunc:     c.opts.WidthFunc,
		MinWidthFunc:  c.opts.MinWidthFunc,
	})
}
