package tui

import (
	"math"
	"time"

	"github.com/matzehuels/stackview/pkg/hierarchy"
)

// span is the horizontal extent of a panel in columns.
type span struct {
	X, W float64
}

func (s span) lerp(to span, t float64) span {
	return span{X: s.X + (to.X-s.X)*t, W: s.W + (to.W-s.W)*t}
}

// scene is what is on screen: the viewport offset and each panel's span.
type scene struct {
	offset    float64
	panels    map[*Panel]span
	lookahead *span
}

func sceneOf(f hierarchy.Frame[*Panel]) scene {
	s := scene{offset: f.Viewport.Offset.X, panels: make(map[*Panel]span, len(f.Items))}
	for _, it := range f.Items {
		s.panels[it.Child] = span{X: it.Layout.Offset.X, W: it.Layout.Size.X}
	}
	if n := len(f.Items); n < len(f.Layouts) {
		l := f.Layouts[n]
		s.lookahead = &span{X: l.Offset.X, W: l.Size.X}
	}
	return s
}

// tween eases from one scene to another. Panels that only exist in the
// target start from the old lookahead slot, where they were predicted.
type tween struct {
	from, to scene
	start    time.Time
	duration time.Duration
}

func (tw *tween) progress(now time.Time) float64 {
	if tw.duration <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, float64(now.Sub(tw.start))/float64(tw.duration)))
}

func (tw *tween) done(now time.Time) bool {
	return tw.progress(now) >= 1
}

func (tw *tween) at(now time.Time) scene {
	t := easeOut(tw.progress(now))
	s := scene{
		offset:    tw.from.offset + (tw.to.offset-tw.from.offset)*t,
		panels:    make(map[*Panel]span, len(tw.to.panels)),
		lookahead: tw.to.lookahead,
	}
	for p, to := range tw.to.panels {
		from, ok := tw.from.panels[p]
		if !ok {
			from = to
			if tw.from.lookahead != nil {
				from = *tw.from.lookahead
			}
		}
		s.panels[p] = from.lerp(to, t)
	}
	return s
}

// easeOut approximates the CSS ease-out curve with a cubic.
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
