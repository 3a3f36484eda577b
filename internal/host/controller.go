package host

import (
	"image"
	"log/slog"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"

	"github.com/example/markyfy/internal/engine"
	"github.com/example/markyfy/internal/theme"
)

// wheelStep is the scroll distance of one wheel notch.
const wheelStep = 40

// messageTTL is how long a status message stays on screen.
const messageTTL = 3 * time.Second

// controller routes window events between the toolbar and the engine. It
// runs on the window's event goroutine.
type controller struct {
	eng      *engine.Engine
	tb       *toolbar
	th       *theme.Theme
	log      *slog.Logger
	backdrop image.Image

	size    image.Point
	scrollY int
	chrome  bool

	// pressed is set while a press that began on the canvas is held, so the
	// release reaches the engine even when it lands on the toolbar.
	pressed bool

	saveErr      error
	message      string
	messageUntil time.Time
	now          func() time.Time
}

func newController(eng *engine.Engine, th *theme.Theme, backdrop image.Image, log *slog.Logger) *controller {
	c := &controller{
		eng:      eng,
		tb:       newToolbar(),
		th:       th,
		log:      log,
		backdrop: backdrop,
		size:     eng.Surface().Bounds().Size(),
		chrome:   true,
		now:      time.Now,
	}
	c.scrollY = int(eng.Scroll().Y)
	return c
}

// handle applies one event. It reports whether the window needs a repaint
// and whether the overlay should close.
func (c *controller) handle(e any) (repaint, quit bool) {
	repaint, quit = c.dispatch(e)
	if err := c.eng.LastSaveErr(); err != nil && err != c.saveErr {
		c.flash("Save failed: " + err.Error())
		repaint = true
	}
	c.saveErr = c.eng.LastSaveErr()
	return repaint, quit
}

func (c *controller) dispatch(e any) (repaint, quit bool) {
	switch e := e.(type) {
	case lifecycle.Event:
		if e.To == lifecycle.StageDead {
			c.eng.Handle(engine.BlurEvent{})
			return false, true
		}
		if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
			c.eng.Handle(engine.BlurEvent{})
			return true, false
		}
	case size.Event:
		c.size = image.Pt(e.WidthPx, e.HeightPx)
		c.scrollTo(c.scrollY)
		return true, false
	case mouse.Event:
		return c.mouse(e), false
	case key.Event:
		return c.key(e)
	case engine.LoadedEvent:
		c.eng.Handle(e)
		return true, false
	}
	return false, false
}

func (c *controller) mouse(e mouse.Event) bool {
	if e.Direction == mouse.DirStep {
		switch e.Button {
		case mouse.ButtonWheelUp:
			return c.scrollTo(c.scrollY - wheelStep)
		case mouse.ButtonWheelDown:
			return c.scrollTo(c.scrollY + wheelStep)
		}
		return false
	}

	p := image.Pt(int(e.X), int(e.Y))
	if !c.pressed && p.In(chromeToggleRect(c.size)) {
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			c.eng.Handle(engine.BlurEvent{})
			c.chrome = !c.chrome
			return true
		}
		return false
	}
	if c.chrome && !c.pressed && p.In(c.tb.Bounds()) {
		i := c.tb.hit(p)
		repaint := i != c.tb.hover
		c.tb.hover = i
		if i >= 0 && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			// The open field is committed before the button acts.
			c.eng.Handle(engine.BlurEvent{})
			c.activate(c.tb.buttons[i])
			repaint = true
		}
		return repaint
	}
	if c.tb.hover != -1 {
		c.tb.hover = -1
	}

	if e.Button == mouse.ButtonLeft {
		switch e.Direction {
		case mouse.DirPress:
			c.pressed = true
		case mouse.DirRelease:
			c.pressed = false
		}
	}
	c.eng.Handle(e)
	return true
}

func (c *controller) activate(b *button) {
	switch b.kind {
	case kindTool:
		if err := c.eng.SetActiveTool(b.tool.String()); err != nil {
			c.log.Warn("select tool", "tool", b.tool, "error", err)
		}
	case kindClear:
		if err := c.eng.SetActiveTool("clear"); err != nil {
			c.flash("Clear failed: " + err.Error())
		}
	case kindToggle:
		c.eng.ToggleEnabled()
	}
}

// key handles overlay shortcuts and forwards everything else. Ctrl+H hides
// or shows the toolbar like the corner button, Ctrl+E toggles annotation
// and Ctrl+Q quits.
func (c *controller) key(e key.Event) (repaint, quit bool) {
	if e.Modifiers&key.ModControl != 0 {
		if e.Direction != key.DirPress {
			return false, false
		}
		switch e.Code {
		case key.CodeH:
			c.chrome = !c.chrome
			return true, false
		case key.CodeE:
			c.eng.ToggleEnabled()
			return true, false
		case key.CodeQ:
			c.eng.Handle(engine.BlurEvent{})
			return false, true
		}
		return false, false
	}
	c.eng.Handle(e)
	return true, false
}

// scrollTo clamps y to the scrollable range and tells the engine.
func (c *controller) scrollTo(y int) bool {
	limit := c.eng.Surface().Bounds().Dy() - c.size.Y
	if c.backdrop != nil {
		if h := c.backdrop.Bounds().Dy() - c.size.Y; h > limit {
			limit = h
		}
	}
	y = min(y, max(limit, 0))
	y = max(y, 0)
	if y == c.scrollY {
		return false
	}
	c.scrollY = y
	c.eng.Handle(engine.ScrollEvent{Y: float64(y)})
	return true
}

func (c *controller) flash(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageTTL)
}

func (c *controller) paintState() paintState {
	f, open := c.eng.Field()
	st := paintState{
		size:     c.size,
		scrollY:  c.scrollY,
		backdrop: c.backdrop,
		surface:  c.eng.Surface().Snapshot(),
		state:    c.eng.State(),
		field:    f,
		hasField: open,
		chrome:   c.chrome,
	}
	if c.message != "" && c.now().Before(c.messageUntil) {
		st.message = c.message
	}
	return st
}
