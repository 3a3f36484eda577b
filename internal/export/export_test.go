package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func annotated() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.SetRGBA(5, 5, color.RGBA{A: 255})
	return img
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, ".PDF": FormatPDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := FormatFromPath("notes.gif"); err == nil {
		t.Error("gif should be rejected")
	}
}

func TestFlatten(t *testing.T) {
	bg := image.NewUniform(color.RGBA{255, 255, 255, 255})
	out := Flatten(annotated(), bg)
	if got := out.RGBAAt(5, 5); got != (color.RGBA{A: 255}) {
		t.Fatalf("annotation pixel %+v", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("backdrop pixel %+v", got)
	}
	if got := Flatten(annotated(), nil).RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("nil backdrop should stay transparent, got %+v", got)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, annotated()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 {
		t.Fatalf("width %d", img.Bounds().Dx())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, annotated(), "notes"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("missing PDF header: %q", buf.Bytes()[:8])
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatPNG, FormatPDF} {
		path := filepath.Join(dir, "out."+string(f))
		if err := WriteFile(path, annotated(), f); err != nil {
			t.Fatalf("WriteFile %s: %v", f, err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Fatalf("%s not written: %v", path, err)
		}
	}
	if err := WriteFile(filepath.Join(dir, "missing", "x.png"), annotated(), FormatPNG); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}
