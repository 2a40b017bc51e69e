package layout

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/stackview/pkg/geom"
)

// Opacity values applied to panels.
const (
	OpacityVisible = 1.0
	OpacityDimmed  = 0.5
)

// Layout is the computed rectangle of one panel.
type Layout struct {
	Offset  geom.Vector2 `json:"offset"`
	Size    geom.Vector2 `json:"size"`
	Visible bool         `json:"visible"`
	Style   Style        `json:"style"`
}

// Right returns the x-coordinate of the trailing edge.
func (l Layout) Right() float64 {
	return l.Offset.X + l.Size.X
}

// Style is the presentation a renderer applies to a panel.
// Its exact use is up to the renderer.
type Style struct {
	Position  string       `json:"position"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Opacity   float64      `json:"opacity"`
	Translate geom.Vector2 `json:"translate"`
}

func newLayout(offset, size geom.Vector2, visible bool) Layout {
	opacity := OpacityVisible
	if !visible {
		opacity = OpacityDimmed
	}
	return Layout{
		Offset:  offset,
		Size:    size,
		Visible: visible,
		Style: Style{
			Position:  "absolute",
			Width:     size.X,
			Height:    size.Y,
			Opacity:   opacity,
			Translate: offset,
		},
	}
}

// Declarations renders the style as CSS-like property declarations.
func (s Style) Declarations() map[string]string {
	return map[string]string{
		"position":  s.Position,
		"top":       "0",
		"left":      "0",
		"width":     px(s.Width),
		"height":    px(s.Height),
		"opacity":   strconv.FormatFloat(s.Opacity, 'f', -1, 64),
		"transform": fmt.Sprintf("translate3d(%s, %s, 0)", px(s.Translate.X), px(s.Translate.Y)),
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
