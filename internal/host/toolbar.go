package host

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/markyfy/internal/theme"
	"github.com/example/markyfy/internal/toolstate"
)

const (
	buttonHeight  = 24
	buttonPadding = 8
	toolbarMargin = 8
)

// ButtonState describes the visual state of a toolbar button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// buttonKind separates tool selectors from the two action buttons.
type buttonKind int

const (
	kindTool buttonKind = iota
	kindClear
	kindToggle
)

type button struct {
	label string
	kind  buttonKind
	tool  toolstate.Tool
	rect  image.Rectangle
}

// toolbar is the floating button column in the top-left corner.
type toolbar struct {
	buttons []*button
	hover   int
	width   int
}

func newToolbar() *toolbar {
	tb := &toolbar{hover: -1}
	for _, t := range toolstate.Tools() {
		tb.buttons = append(tb.buttons, &button{label: toolLabel(t), kind: kindTool, tool: t})
	}
	tb.buttons = append(tb.buttons,
		&button{label: "Clear", kind: kindClear},
		&button{label: "Toggle", kind: kindToggle},
	)

	d := &font.Drawer{Face: basicfont.Face7x13}
	for _, b := range tb.buttons {
		if w := d.MeasureString(b.label+" off").Ceil() + 2*buttonPadding; w > tb.width {
			tb.width = w
		}
	}
	y := toolbarMargin
	for _, b := range tb.buttons {
		b.rect = image.Rect(toolbarMargin, y, toolbarMargin+tb.width, y+buttonHeight)
		y += buttonHeight
	}
	return tb
}

func toolLabel(t toolstate.Tool) string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Bounds is the area covered by the toolbar including its frame.
func (tb *toolbar) Bounds() image.Rectangle {
	r := tb.buttons[0].rect
	for _, b := range tb.buttons[1:] {
		r = r.Union(b.rect)
	}
	return r.Inset(-2)
}

// hit returns the index of the button under p, or -1.
func (tb *toolbar) hit(p image.Point) int {
	for i, b := range tb.buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

func (tb *toolbar) draw(dst *image.RGBA, th *theme.Theme, st toolstate.State) {
	draw.Draw(dst, tb.Bounds(), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	for i, b := range tb.buttons {
		state := StateDefault
		switch {
		case b.kind == kindTool && b.tool == st.Active:
			state = StatePressed
		case b.kind == kindToggle && !st.Enabled:
			state = StatePressed
		case i == tb.hover:
			state = StateHover
		}
		label := b.label
		if b.kind == kindToggle {
			label = "On"
			if !st.Enabled {
				label = "Off"
			}
		}
		drawButton(dst, b.rect, label, th, state)
	}
	if !st.Enabled {
		draw.Draw(dst, tb.Bounds(), image.NewUniform(th.DisabledTint), image.Point{}, draw.Over)
	}
}

// chromeToggleRect is the small button in the top-right corner of a window
// of the given size. It shows or hides the toolbar and stays on screen while
// the toolbar is hidden.
func chromeToggleRect(size image.Point) image.Rectangle {
	return image.Rect(size.X-toolbarMargin-buttonHeight, toolbarMargin, size.X-toolbarMargin, toolbarMargin+buttonHeight)
}

func drawChromeToggle(dst *image.RGBA, th *theme.Theme, size image.Point, chrome bool) {
	label, state := "+", StateDefault
	if chrome {
		label, state = "-", StatePressed
	}
	drawButton(dst, chromeToggleRect(size), label, th, state)
}

func drawButton(dst *image.RGBA, r image.Rectangle, label string, th *theme.Theme, state ButtonState) {
	c := th.ButtonBackground
	switch state {
	case StateHover:
		c = th.ButtonBackgroundHover
	case StatePressed:
		c = th.ButtonActive
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
	drawRect(dst, r, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+buttonPadding, r.Min.Y+16)}
	d.DrawString(label)
}

// drawRect outlines r with a one pixel border.
func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
