package backdrop

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		in   string
		want Source
	}{
		{"", Source{Kind: KindNone}},
		{"none", Source{Kind: KindNone}},
		{"Portal", Source{Kind: KindPortal}},
		{"clipboard", Source{Kind: KindClipboard}},
		{"x11", Source{Kind: KindX11}},
		{"x11:10,20,300x200", Source{Kind: KindX11, Rect: image.Rect(10, 20, 310, 220)}},
		{"file:page.png", Source{Kind: KindFile, Path: "page.png"}},
		{"/tmp/page.png", Source{Kind: KindFile, Path: "/tmp/page.png"}},
	}
	for _, c := range cases {
		got, err := ParseSource(c.in)
		if err != nil {
			t.Errorf("ParseSource(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSource(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"file:", "x11:1,2", "x11:0,0,0x10"} {
		if _, err := ParseSource(bad); err == nil {
			t.Errorf("ParseSource(%q) should fail", bad)
		}
	}
}

func TestLoadFile(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.Set(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(context.Background(), Source{Kind: KindFile, Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{200, 100, 50, 255}) {
		t.Fatalf("pixel %+v", got)
	}

	if _, err := Load(context.Background(), Source{Kind: KindFile, Path: filepath.Join(t.TempDir(), "nope.png")}); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadNone(t *testing.T) {
	img, err := Load(context.Background(), Source{Kind: KindNone})
	if err != nil || img != nil {
		t.Fatalf("expected nil image, got %v %v", img, err)
	}
}

func TestCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.SetRGBA(5, 6, color.RGBA{A: 255})
	out, err := Crop(src, image.Rect(4, 4, 20, 8))
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if out.RGBAAt(1, 2).A != 255 {
		t.Fatal("cropped pixel moved")
	}
	if _, err := Crop(src, image.Rect(20, 20, 30, 30)); err == nil {
		t.Fatal("expected error for an outside region")
	}
}
