package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/markyfy/internal/toolstate"
)

func style(t *testing.T, tool toolstate.Tool) toolstate.Style {
	t.Helper()
	st, ok := toolstate.QueryStyle(tool)
	if !ok {
		t.Fatalf("no style for %v", tool)
	}
	return st
}

func TestNewIsBlank(t *testing.T) {
	s := New(64, 32)
	if got := s.Bounds(); got != image.Rect(0, 0, 64, 32) {
		t.Fatalf("bounds %v", got)
	}
	if !s.Blank() {
		t.Fatal("new surface should be blank")
	}
}

func TestPenThenEraser(t *testing.T) {
	s := New(120, 40)
	s.StrokeSegment(Pt(10, 10), Pt(100, 10), style(t, toolstate.Pen))
	black := color.RGBA{A: 255}
	for _, x := range []int{20, 50, 90} {
		if got := s.At(x, 9); got != black {
			t.Fatalf("pen pixel (%d,9) = %+v", x, got)
		}
		if got := s.At(x, 10); got != black {
			t.Fatalf("pen pixel (%d,10) = %+v", x, got)
		}
		if got := s.At(x, 13); got.A != 0 {
			t.Fatalf("pixel (%d,13) should be untouched, got %+v", x, got)
		}
	}

	s.StrokeSegment(Pt(50, 0), Pt(50, 30), style(t, toolstate.Eraser))
	for _, x := range []int{46, 50, 53} {
		if got := s.At(x, 10); got.A != 0 {
			t.Fatalf("erased pixel (%d,10) = %+v", x, got)
		}
	}
	for _, x := range []int{40, 60} {
		if got := s.At(x, 10); got != black {
			t.Fatalf("pixel (%d,10) outside the eraser changed: %+v", x, got)
		}
	}
}

func TestClear(t *testing.T) {
	s := New(30, 30)
	s.StrokeSegment(Pt(0, 0), Pt(29, 29), style(t, toolstate.Highlighter))
	if s.Blank() {
		t.Fatal("expected highlighter pixels")
	}
	s.Clear()
	if !s.Blank() {
		t.Fatal("clear must leave a blank surface")
	}
}

func TestDrawTextBelowAnchor(t *testing.T) {
	s := New(200, 120)
	dirty, err := s.DrawText("hi", Pt(50, 50))
	if err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if dirty.Empty() {
		t.Fatal("expected text pixels")
	}
	if dirty.Max.Y > 50+TextBaselineOffset+6 || dirty.Min.Y < 50 {
		t.Fatalf("text rect %v not anchored below the click point", dirty)
	}
	if dirty.Min.X < 49 {
		t.Fatalf("text starts left of the anchor: %v", dirty)
	}
	inked := false
	for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
		for x := dirty.Min.X; x < dirty.Max.X; x++ {
			if s.At(x, y).A > 0 {
				inked = true
			}
		}
	}
	if !inked {
		t.Fatal("no ink inside the text rectangle")
	}
}

func TestDrawTextEmptyIsNoop(t *testing.T) {
	s := New(20, 20)
	if _, err := s.DrawText("", Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	if !s.Blank() {
		t.Fatal("empty text must not draw")
	}
}

func TestDrawImageAtOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 15, 15))
	red := color.RGBA{R: 255, A: 255}
	src.SetRGBA(5, 5, red)
	s := New(20, 20)
	s.DrawImage(src)
	if got := s.At(0, 0); got != red {
		t.Fatalf("snapshot origin pixel %+v", got)
	}
}
