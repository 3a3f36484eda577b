package surface

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/markyfy/internal/toolstate"
)

// TextBaselineOffset is how far below the anchor point the text baseline sits,
// so committed text appears under the cursor rather than through it.
const TextBaselineOffset = 16

var (
	fontOnce  sync.Once
	fontErr   error
	goRegular *opentype.Font

	faces sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = toolstate.TextSize
	}
	fontOnce.Do(func() {
		goRegular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse text font: %w", fontErr)
	}
	size = math.Round(size*100) / 100
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(goRegular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("text face %.2fpt: %w", size, err)
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// Face returns the face used for text annotations.
func Face() (font.Face, error) {
	return faceForSize(toolstate.TextSize)
}

// MeasureText returns the advance width and line height of text at the
// annotation text size.
func MeasureText(text string) (width, height int, err error) {
	face, err := faceForSize(toolstate.TextSize)
	if err != nil {
		return 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil(), nil
}

// DrawText rasterizes text anchored at at, with the baseline
// TextBaselineOffset pixels below the anchor. It returns the changed area.
func (s *Surface) DrawText(text string, at Point) (image.Rectangle, error) {
	if text == "" {
		return image.Rectangle{}, nil
	}
	face, err := faceForSize(toolstate.TextSize)
	if err != nil {
		return image.Rectangle{}, err
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(toolstate.TextColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(at.X * 64)),
			Y: fixed.Int26_6(math.Round((at.Y + TextBaselineOffset) * 64)),
		},
	}
	bounds, _ := d.BoundString(text)
	d.DrawString(text)
	dirty := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil())
	return dirty.Intersect(s.img.Bounds()), nil
}
