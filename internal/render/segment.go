package render

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Point is a position in surface coordinates. Integer coordinates lie on pixel
// edges, so the pixel (x, y) covers [x, x+1) x [y, y+1).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Segment is a straight piece of stroke with round caps at both ends.
type Segment struct {
	From  Point
	To    Point
	Width float64
}

// capSteps is the number of polygon edges used for each half-circle cap.
const capSteps = 16

// Bounds returns the integer rectangle that can receive coverage from s.
func (s Segment) Bounds() image.Rectangle {
	r := s.Width / 2
	minX := math.Floor(math.Min(s.From.X, s.To.X) - r)
	minY := math.Floor(math.Min(s.From.Y, s.To.Y) - r)
	maxX := math.Ceil(math.Max(s.From.X, s.To.X) + r)
	maxY := math.Ceil(math.Max(s.From.Y, s.To.Y) + r)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// Mask rasterizes s into an alpha coverage mask clipped to clip. It returns
// false when nothing of the segment falls inside clip.
func (s Segment) Mask(clip image.Rectangle) (*image.Alpha, bool) {
	if s.Width <= 0 || !finite(s.From) || !finite(s.To) {
		return nil, false
	}
	r := s.Bounds().Intersect(clip)
	if r.Empty() {
		return nil, false
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	origin := Point{X: float64(r.Min.X), Y: float64(r.Min.Y)}
	for i, p := range s.outline() {
		x := float32(p.X - origin.X)
		y := float32(p.Y - origin.Y)
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	mask := image.NewAlpha(r)
	z.Draw(mask, r, image.Opaque, image.Point{})
	return mask, true
}

// outline returns the convex capsule polygon around the segment.
func (s Segment) outline() []Point {
	radius := s.Width / 2
	dx := s.To.X - s.From.X
	dy := s.To.Y - s.From.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		pts := make([]Point, 0, 2*capSteps)
		for i := 0; i < 2*capSteps; i++ {
			a := math.Pi * float64(i) / capSteps
			pts = append(pts, Point{X: s.From.X + radius*math.Cos(a), Y: s.From.Y + radius*math.Sin(a)})
		}
		return pts
	}
	// Start on the left normal of the direction and sweep through the back of
	// From, then through the front of To.
	base := math.Atan2(dx/length, -dy/length)
	pts := make([]Point, 0, 2*(capSteps+1))
	for i := 0; i <= capSteps; i++ {
		a := base + math.Pi*float64(i)/capSteps
		pts = append(pts, Point{X: s.From.X + radius*math.Cos(a), Y: s.From.Y + radius*math.Sin(a)})
	}
	for i := 0; i <= capSteps; i++ {
		a := base + math.Pi + math.Pi*float64(i)/capSteps
		pts = append(pts, Point{X: s.To.X + radius*math.Cos(a), Y: s.To.Y + radius*math.Sin(a)})
	}
	return pts
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
