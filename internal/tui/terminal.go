package tui

import (
	"sync"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/hierarchy"
)

// terminal is the container the controller measures: the panel area of the
// window in columns and rows. It is unmeasured until the first window size
// message arrives.
type terminal struct {
	mu       sync.Mutex
	cols     int
	rows     int
	measured bool
	subs     map[int]func()
	next     int
}

var (
	_ hierarchy.Measurer       = (*terminal)(nil)
	_ hierarchy.ResizeNotifier = (*terminal)(nil)
)

func newTerminal() *terminal {
	return &terminal{subs: make(map[int]func())}
}

func (t *terminal) ContainerSize() (geom.Vector2, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return geom.Vec(float64(t.cols), float64(t.rows)), t.measured
}

func (t *terminal) Subscribe(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// resize records the new size and notifies subscribers if it changed.
func (t *terminal) resize(cols, rows int) {
	t.mu.Lock()
	if t.measured && t.cols == cols && t.rows == rows {
		t.mu.Unlock()
		return
	}
	t.cols, t.rows, t.measured = cols, rows, true
	subs := make([]func(), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
