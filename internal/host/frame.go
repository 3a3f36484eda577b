package host

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/markyfy/internal/annotate"
	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/theme"
	"github.com/example/markyfy/internal/toolstate"
)

// fieldHeight is the height of the open text field box.
const fieldHeight = 20

// paintState is everything one frame needs, captured on the event goroutine.
type paintState struct {
	size     image.Point
	scrollY  int
	backdrop image.Image
	surface  *image.RGBA
	state    toolstate.State
	field    annotate.Field
	hasField bool
	chrome   bool
	message  string
}

// render composes one frame into dst: backdrop, annotations, the open field
// and the toolbar.
func render(dst *image.RGBA, tb *toolbar, th *theme.Theme, st paintState) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Backdrop), image.Point{}, draw.Src)
	off := image.Pt(0, st.scrollY)
	if st.backdrop != nil {
		draw.Draw(dst, dst.Bounds(), st.backdrop, st.backdrop.Bounds().Min.Add(off), draw.Src)
	}
	if st.surface != nil {
		draw.Draw(dst, dst.Bounds(), st.surface, off, draw.Over)
	}
	if st.hasField {
		drawField(dst, th, st.field, st.scrollY)
	}
	if st.chrome {
		tb.draw(dst, th, st.state)
	}
	drawChromeToggle(dst, th, st.size, st.chrome)
	if st.message != "" {
		drawMessage(dst, th, st.message)
	}
}

// drawField draws the editable box for f with a trailing caret.
func drawField(dst *image.RGBA, th *theme.Theme, f annotate.Field, scrollY int) {
	face, err := surface.Face()
	if err != nil {
		return
	}
	x := int(math.Round(f.At.X))
	y := int(math.Round(f.At.Y)) - scrollY
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.FieldText), Face: face}
	w := d.MeasureString(f.Text).Ceil()
	box := image.Rect(x, y, x+w+8, y+fieldHeight)
	draw.Draw(dst, box, image.NewUniform(th.FieldBackground), image.Point{}, draw.Over)
	drawRect(dst, box, th.FieldBorder)

	d.Dot = fixed.P(x, y+surface.TextBaselineOffset)
	d.DrawString(f.Text)
	cx := d.Dot.X.Ceil() + 1
	draw.Draw(dst, image.Rect(cx, y+3, cx+1, y+fieldHeight-3), image.NewUniform(th.Caret), image.Point{}, draw.Src)
}

func drawMessage(dst *image.RGBA, th *theme.Theme, msg string) {
	b := dst.Bounds()
	r := image.Rect(b.Min.X, b.Max.Y-buttonHeight, b.Max.X, b.Max.Y)
	drawButton(dst, r, msg, th, StateDefault)
}
