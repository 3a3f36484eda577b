package toolstate

import (
	"errors"
	"testing"

	"golang.org/x/image/colornames"
)

func TestParseTool(t *testing.T) {
	tests := []struct {
		in   string
		want Tool
	}{
		{"pen", Pen},
		{"Pencil", Pencil},
		{" HIGHLIGHTER ", Highlighter},
		{"eraser", Eraser},
		{"text", Text},
	}
	for _, tt := range tests {
		got, err := ParseTool(tt.in)
		if err != nil {
			t.Fatalf("ParseTool(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "none", "clear", "brush"} {
		if _, err := ParseTool(bad); !errors.Is(err, ErrUnknownTool) {
			t.Errorf("ParseTool(%q) err = %v, want ErrUnknownTool", bad, err)
		}
	}
}

func TestQueryStyle(t *testing.T) {
	tests := []struct {
		tool  Tool
		width float64
		comp  Composite
	}{
		{Pen, 2, CompositeSourceOver},
		{Pencil, 1, CompositeSourceOver},
		{Highlighter, 5, CompositeSourceOver},
		{Eraser, 10, CompositeDestinationOut},
	}
	for _, tt := range tests {
		st, ok := QueryStyle(tt.tool)
		if !ok {
			t.Fatalf("no style for %v", tt.tool)
		}
		if st.Width != tt.width || st.Composite != tt.comp {
			t.Errorf("%v: got %+v", tt.tool, st)
		}
	}
	if st, _ := QueryStyle(Pen); st.Color != colornames.Black {
		t.Errorf("pen colour %v", st.Color)
	}
	if st, _ := QueryStyle(Highlighter); st.Color != colornames.Yellow {
		t.Errorf("highlighter colour %v", st.Color)
	}
	if _, ok := QueryStyle(Text); ok {
		t.Error("text has no stroke style")
	}
	if _, ok := QueryStyle(None); ok {
		t.Error("none has no stroke style")
	}
}

func TestMachineInitialIdle(t *testing.T) {
	m := NewMachine()
	st := m.State()
	if st.Mode != Idle || st.Enabled || st.Active != None {
		t.Fatalf("unexpected initial state %+v", st)
	}
	if st.CanDraw() || st.CanType() {
		t.Fatal("idle machine must not accept input")
	}
}

func TestMachineModeInvariant(t *testing.T) {
	m := NewMachine()
	check := func(label string) {
		t.Helper()
		st := m.State()
		wantTexting := st.Active == Text
		wantDrawing := st.Enabled && st.Active != Text && st.Active != None
		if (st.Mode == Texting) != wantTexting {
			t.Fatalf("%s: texting mismatch %+v", label, st)
		}
		if (st.Mode == Drawing) != wantDrawing {
			t.Fatalf("%s: drawing mismatch %+v", label, st)
		}
	}
	m.SetActiveTool(Pen)
	check("pen")
	m.ToggleEnabled()
	check("pen disabled")
	if m.State().Mode != Idle {
		t.Fatalf("disabled pen should be idle, got %v", m.State().Mode)
	}
	m.SetActiveTool(Text)
	check("text")
	if !m.State().Enabled {
		t.Fatal("selecting text must enable")
	}
	m.ToggleEnabled()
	check("text disabled")
	if m.State().CanType() {
		t.Fatal("disabled text mode must not open fields")
	}
	m.SetActiveTool(Eraser)
	check("eraser")
	if !m.State().CanDraw() {
		t.Fatal("eraser should draw")
	}
}
