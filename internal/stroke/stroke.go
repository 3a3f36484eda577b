// Package stroke turns pointer gestures into continuous strokes on a surface.
package stroke

import (
	"image"

	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/toolstate"
)

// Stroke is the ordered point list of one press-to-release gesture.
type Stroke struct {
	Points []surface.Point
}

// Last returns the most recent point of the stroke.
func (s *Stroke) Last() surface.Point { return s.Points[len(s.Points)-1] }

// Renderer draws the active stroke onto its surface one segment at a time.
type Renderer struct {
	surf   *surface.Surface
	active *Stroke
}

// NewRenderer returns a renderer drawing onto surf.
func NewRenderer(surf *surface.Surface) *Renderer {
	return &Renderer{surf: surf}
}

// Active reports whether a stroke is in progress.
func (r *Renderer) Active() bool { return r.active != nil }

// Begin starts a new stroke at p when st permits drawing. It reports whether
// a stroke was started.
func (r *Renderer) Begin(p surface.Point, st toolstate.State) bool {
	if !st.CanDraw() {
		return false
	}
	r.active = &Stroke{Points: []surface.Point{p}}
	return true
}

// Extend appends p to the active stroke and immediately renders the segment
// from the previous point using style, which the caller samples from the tool
// state at this instant. It returns the changed rectangle.
func (r *Renderer) Extend(p surface.Point, style toolstate.Style) image.Rectangle {
	if r.active == nil {
		return image.Rectangle{}
	}
	from := r.active.Last()
	r.active.Points = append(r.active.Points, p)
	return r.surf.StrokeSegment(from, p, style)
}

// End closes the active stroke and returns it. ok is false when no stroke
// was in progress.
func (r *Renderer) End() (s *Stroke, ok bool) {
	if r.active == nil {
		return nil, false
	}
	s = r.active
	r.active = nil
	return s, true
}
