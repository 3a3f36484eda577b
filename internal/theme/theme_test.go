package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader(`
// comment
Name: Custom
toolbarbackground: #102030
Caret: #11223344
Unknown: #FFFFFF
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("name %q", th.Name)
	}
	if th.ToolbarBackground != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("toolbar %+v", th.ToolbarBackground)
	}
	if th.Caret != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("caret %+v", th.Caret)
	}
	if th.ButtonText != Default().ButtonText {
		t.Error("unset fields should keep defaults")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Caret: red")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatal("expected length error")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {0xAA, 0xBB, 0xCC, 0x80}} {
		got, err := ParseColor(FormatColor(c))
		if err != nil || got != c {
			t.Errorf("round trip %+v -> %+v (%v)", c, got, err)
		}
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Defined: map[string]*Theme{"inline": {Name: "Inline"}}}

	cases := map[string]string{
		"":       "Default",
		"inline": "Inline",
		"dark":   "Dark",
		"Light":  "Light",
		"mine":   "Mine",
		filepath.Join(dir, "mine.theme"): "Mine",
	}
	for name, want := range cases {
		th, err := l.Load(name)
		if err != nil {
			t.Errorf("Load(%q): %v", name, err)
			continue
		}
		if th.Name != want {
			t.Errorf("Load(%q) = %q, want %q", name, th.Name, want)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("expected error for a missing theme")
	}
}
