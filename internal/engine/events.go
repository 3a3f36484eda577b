package engine

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/markyfy/internal/annotate"
	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/toolstate"
)

// PointerPhase is the stage of a pointer gesture.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// PointerEvent is a pointer sample in viewport coordinates. Hosts that do not
// speak mouse.Event, such as the headless draw command, send these directly.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  float64
}

// BlurEvent reports that the open text field lost focus.
type BlurEvent struct{}

// ScrollEvent carries the absolute scroll offset of the page under the
// overlay.
type ScrollEvent struct {
	X, Y float64
}

// LoadedEvent is delivered by hosts once Task is done.
type LoadedEvent struct {
	Task *LoadTask
}

// input is a raster-mutating event together with the context it arrived in.
type input struct {
	ev any
	at surface.Point
	st toolstate.State
}

// Handle routes one event. Unknown event types are ignored.
func (e *Engine) Handle(ev any) {
	switch ev := ev.(type) {
	case mouse.Event:
		if p, ok := pointerFromMouse(ev); ok {
			e.accept(p, e.mapPoint(p.X, p.Y))
		}
	case PointerEvent:
		e.accept(ev, e.mapPoint(ev.X, ev.Y))
	case key.Event:
		if ev.Direction != key.DirRelease {
			e.accept(ev, surface.Point{})
		}
	case BlurEvent:
		e.accept(ev, surface.Point{})
	case ScrollEvent:
		e.scroll = ev
	case LoadedEvent:
		e.FinishLoad(ev.Task)
	}
}

func pointerFromMouse(ev mouse.Event) (PointerEvent, bool) {
	p := PointerEvent{X: float64(ev.X), Y: float64(ev.Y)}
	switch ev.Direction {
	case mouse.DirPress:
		if ev.Button != mouse.ButtonLeft {
			return p, false
		}
		p.Phase = PointerDown
	case mouse.DirRelease:
		if ev.Button != mouse.ButtonLeft {
			return p, false
		}
		p.Phase = PointerUp
	case mouse.DirNone:
		p.Phase = PointerMove
	default:
		return p, false
	}
	return p, true
}

// mapPoint converts viewport coordinates to surface coordinates. Only the
// vertical scroll offset is applied.
func (e *Engine) mapPoint(x, y float64) surface.Point {
	return surface.Pt(x, y+e.scroll.Y)
}

// accept dispatches ev now, or queues it with the current state while a load
// is pending.
func (e *Engine) accept(ev any, at surface.Point) {
	in := input{ev: ev, at: at, st: e.machine.State()}
	if e.pending != nil {
		e.queue = append(e.queue, in)
		return
	}
	e.dispatch(in)
}

func (e *Engine) dispatch(in input) {
	switch ev := in.ev.(type) {
	case PointerEvent:
		switch ev.Phase {
		case PointerDown:
			e.handlePointerDown(in.at, in.st)
		case PointerMove:
			e.handlePointerMove(in.at, in.st)
		case PointerUp:
			e.handlePointerUp(in.st)
		}
	case key.Event:
		e.handleKey(ev, in.st)
	case BlurEvent:
		e.handleBlur(in.st)
	}
}

func (e *Engine) handlePointerDown(at surface.Point, st toolstate.State) {
	// Only one field may be open; a press anywhere closes it.
	if _, open := e.text.Field(); open {
		e.handleBlur(st)
	}
	if st.CanType() {
		e.text.Open(at)
		e.log.Debug("text field opened", "x", at.X, "y", at.Y)
		return
	}
	if e.strokes.Begin(at, st) {
		e.log.Debug("stroke started", "tool", st.Active, "x", at.X, "y", at.Y)
	}
}

func (e *Engine) handlePointerMove(at surface.Point, st toolstate.State) {
	if !e.strokes.Active() || !st.Enabled {
		return
	}
	style, ok := toolstate.QueryStyle(st.Active)
	if !ok {
		return
	}
	if dirty := e.strokes.Extend(at, style); !dirty.Empty() {
		e.metrics.SegmentDrawn()
	}
}

func (e *Engine) handlePointerUp(st toolstate.State) {
	s, ok := e.strokes.End()
	if !ok {
		return
	}
	e.metrics.StrokeDone()
	e.log.Debug("stroke finished", "points", len(s.Points), "tool", st.Active)
	e.save()
}

func (e *Engine) handleKey(ev key.Event, st toolstate.State) {
	if _, open := e.text.Field(); !open {
		return
	}
	switch ev.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		out, _, err := e.text.Confirm()
		e.committed(out, err)
	case key.CodeEscape:
		e.handleBlur(st)
	case key.CodeDeleteBackspace:
		e.text.Backspace()
	default:
		if ev.Rune > 0 {
			e.text.Insert(ev.Rune)
		}
	}
}

func (e *Engine) handleBlur(st toolstate.State) {
	out, ok, err := e.text.Blur()
	if !ok {
		return
	}
	e.committed(out, err)
}

func (e *Engine) committed(out annotate.Outcome, err error) {
	if err != nil {
		e.log.Error("text render failed", "error", err)
	}
	e.metrics.TextCommitted(out.Rendered)
	e.log.Debug("text committed", "text", out.Commit.Text, "rendered", out.Rendered)
	e.save()
}
