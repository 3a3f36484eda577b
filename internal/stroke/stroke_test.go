package stroke

import (
	"testing"

	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/toolstate"
)

func drawingState(tool toolstate.Tool) toolstate.State {
	m := toolstate.NewMachine()
	return m.SetActiveTool(tool)
}

func TestBeginRequiresDrawingMode(t *testing.T) {
	r := NewRenderer(surface.New(10, 10))
	if r.Begin(surface.Pt(1, 1), toolstate.State{}) {
		t.Fatal("idle state must not start a stroke")
	}
	if r.Begin(surface.Pt(1, 1), drawingState(toolstate.Text)) {
		t.Fatal("text mode must not start a stroke")
	}
	if r.Active() {
		t.Fatal("no stroke expected")
	}
	if !r.Begin(surface.Pt(1, 1), drawingState(toolstate.Pen)) {
		t.Fatal("pen should start a stroke")
	}
}

func TestExtendWithoutStrokeIsNoop(t *testing.T) {
	surf := surface.New(20, 20)
	r := NewRenderer(surf)
	st, _ := toolstate.QueryStyle(toolstate.Pen)
	if dirty := r.Extend(surface.Pt(5, 5), st); !dirty.Empty() {
		t.Fatalf("unexpected dirty rect %v", dirty)
	}
	if _, ok := r.End(); ok {
		t.Fatal("End without a stroke must report false")
	}
	if !surf.Blank() {
		t.Fatal("surface changed")
	}
}

func TestStrokeCollectsPoints(t *testing.T) {
	surf := surface.New(50, 50)
	r := NewRenderer(surf)
	r.Begin(surface.Pt(5, 5), drawingState(toolstate.Pen))
	pen, _ := toolstate.QueryStyle(toolstate.Pen)
	r.Extend(surface.Pt(20, 5), pen)
	r.Extend(surface.Pt(20, 30), pen)
	s, ok := r.End()
	if !ok {
		t.Fatal("expected a finished stroke")
	}
	if len(s.Points) != 3 {
		t.Fatalf("got %d points", len(s.Points))
	}
	if r.Active() {
		t.Fatal("stroke should be closed")
	}
	if surf.At(12, 5).A == 0 || surf.At(20, 20).A == 0 {
		t.Fatal("segments were not rendered")
	}
}

func TestStyleSampledPerSegment(t *testing.T) {
	surf := surface.New(60, 20)
	r := NewRenderer(surf)
	r.Begin(surface.Pt(5, 10), drawingState(toolstate.Pen))
	pen, _ := toolstate.QueryStyle(toolstate.Pen)
	hl, _ := toolstate.QueryStyle(toolstate.Highlighter)
	r.Extend(surface.Pt(25, 10), pen)
	r.Extend(surface.Pt(55, 10), hl)
	if got := surf.At(15, 10); got != pen.Color {
		t.Fatalf("first segment colour %+v", got)
	}
	if got := surf.At(40, 10); got != hl.Color {
		t.Fatalf("second segment colour %+v", got)
	}
}
