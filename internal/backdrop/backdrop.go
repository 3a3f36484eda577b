// Package backdrop provides the page image the overlay host shows beneath
// the annotation surface.
package backdrop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // jpeg backdrops
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/example/markyfy/internal/clipboard"
)

// Kind selects where a backdrop comes from.
type Kind string

const (
	KindNone      Kind = "none"
	KindFile      Kind = "file"
	KindPortal    Kind = "portal"
	KindX11       Kind = "x11"
	KindClipboard Kind = "clipboard"
)

// ErrUnsupported is returned for sources this platform cannot provide.
var ErrUnsupported = errors.New("backdrop source not supported on this platform")

// Source describes one backdrop.
type Source struct {
	Kind Kind
	// Path is the image file for KindFile.
	Path string
	// Rect crops a screen capture. Empty means the whole screen.
	Rect image.Rectangle
}

// ParseSource reads "none", "portal", "x11", "x11:X,Y,WxH", "clipboard",
// "file:PATH" or a bare path.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Source{Kind: KindNone}, nil
	}
	head, rest, hasRest := strings.Cut(s, ":")
	switch Kind(strings.ToLower(head)) {
	case KindNone:
		return Source{Kind: KindNone}, nil
	case KindPortal:
		return Source{Kind: KindPortal}, nil
	case KindClipboard:
		return Source{Kind: KindClipboard}, nil
	case KindX11:
		src := Source{Kind: KindX11}
		if hasRest {
			r, err := parseRect(rest)
			if err != nil {
				return Source{}, err
			}
			src.Rect = r
		}
		return src, nil
	case KindFile:
		if rest == "" {
			return Source{}, fmt.Errorf("backdrop file: missing path")
		}
		return Source{Kind: KindFile, Path: rest}, nil
	}
	return Source{Kind: KindFile, Path: s}, nil
}

// parseRect reads "X,Y,WxH".
func parseRect(s string) (image.Rectangle, error) {
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, "%d,%d,%dx%d", &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("backdrop region %q: want X,Y,WxH", s)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("backdrop region %q is empty", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// Load fetches the backdrop. KindNone yields a nil image.
func Load(ctx context.Context, src Source) (*image.RGBA, error) {
	var (
		img *image.RGBA
		err error
	)
	switch src.Kind {
	case KindNone, "":
		return nil, nil
	case KindFile:
		img, err = loadFile(src.Path)
	case KindPortal:
		img, err = portalScreenshot(ctx)
	case KindX11:
		img, err = rootWindow(ctx)
	case KindClipboard:
		var clip image.Image
		clip, err = clipboard.ReadImage()
		if err == nil {
			img = toRGBA(clip)
		}
	default:
		return nil, fmt.Errorf("unknown backdrop kind %q", src.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s backdrop: %w", src.Kind, err)
	}
	if !src.Rect.Empty() {
		return Crop(img, src.Rect)
	}
	return img, nil
}

func loadFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Crop copies rect out of src into a new image at the origin.
func Crop(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
