// Package surface holds the single mutable annotation raster.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/markyfy/internal/render"
	"github.com/example/markyfy/internal/toolstate"
)

// Point is a position in surface (page) coordinates.
type Point = render.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return render.Pt(x, y) }

// Surface is a fixed-size transparent RGBA raster. It is created once and
// never resized.
type Surface struct {
	img *image.RGBA
}

// New creates a blank surface of the given viewport size.
func New(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Bounds returns the surface rectangle, always anchored at the origin.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the raster for read-only use by encoders and hosts.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns an independent copy of the raster.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Clear resets every pixel to fully transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Blank reports whether every pixel is fully transparent.
func (s *Surface) Blank() bool {
	for i := 3; i < len(s.img.Pix); i += 4 {
		if s.img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// StrokeSegment renders one stroke segment with the given style and returns
// the rectangle that changed.
func (s *Surface) StrokeSegment(from, to Point, st toolstate.Style) image.Rectangle {
	seg := render.Segment{From: from, To: to, Width: st.Width}
	return render.Composite(s.img, seg, st.Color, st.Composite == toolstate.CompositeDestinationOut)
}

// DrawImage composites src at the origin with source-over, clipped to the
// surface. It is used to restore a persisted snapshot.
func (s *Surface) DrawImage(src image.Image) {
	if src == nil {
		return
	}
	b := src.Bounds()
	dst := image.Rect(0, 0, b.Dx(), b.Dy()).Intersect(s.img.Bounds())
	draw.Draw(s.img, dst, src, b.Min, draw.Over)
}

// At returns the colour of one pixel.
func (s *Surface) At(x, y int) color.RGBA { return s.img.RGBAAt(x, y) }
