// Package host runs the annotation engine inside a desktop window: the
// backdrop fills the window, the annotation surface sits on top, and a small
// toolbar selects tools.
package host

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/paint"

	"github.com/example/markyfy/internal/engine"
	"github.com/example/markyfy/internal/logging"
	"github.com/example/markyfy/internal/theme"
)

// Overlay is a window hosting one engine.
type Overlay struct {
	eng      *engine.Engine
	backdrop image.Image
	theme    *theme.Theme
	title    string
	log      *slog.Logger
	ctx      context.Context

	err error
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithBackdrop shows img under the annotations.
func WithBackdrop(img image.Image) Option { return func(o *Overlay) { o.backdrop = img } }

// WithTheme sets the chrome colours.
func WithTheme(th *theme.Theme) Option { return func(o *Overlay) { o.theme = th } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(o *Overlay) { o.title = title } }

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option { return func(o *Overlay) { o.log = log } }

// WithContext bounds the initial snapshot load.
func WithContext(ctx context.Context) Option { return func(o *Overlay) { o.ctx = ctx } }

// New returns an overlay for eng. The overlay becomes the engine's only
// caller until Run returns.
func New(eng *engine.Engine, opts ...Option) *Overlay {
	o := &Overlay{eng: eng, title: "Markyfy", ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}
	if o.theme == nil {
		o.theme = theme.Default()
	}
	if o.log == nil {
		o.log = logging.NewNop()
	}
	return o
}

// Run opens the window and blocks until it is closed.
func (o *Overlay) Run() error {
	driver.Main(o.Main)
	return o.err
}

// Main is the shiny entry point.
func (o *Overlay) Main(s screen.Screen) {
	sz := o.eng.Surface().Bounds().Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: o.title})
	if err != nil {
		o.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	c := newController(o.eng, o.theme, o.backdrop, o.log)

	task := o.eng.Load(o.ctx)
	go func() {
		<-task.Done()
		w.Send(engine.LoadedEvent{Task: task})
	}()

	for {
		e := w.NextEvent()
		if _, ok := e.(paint.Event); ok {
			o.drawFrame(s, w, c.tb, c.paintState())
			continue
		}
		repaint, quit := c.handle(e)
		if quit {
			// Flush edits queued behind a load that is still running.
			if err := o.eng.AwaitLoad(o.ctx); err != nil {
				o.log.Warn("closing before snapshot load finished", "error", err)
			}
			o.log.Debug("overlay closed")
			return
		}
		if repaint {
			w.Send(paint.Event{})
		}
	}
}

func (o *Overlay) drawFrame(s screen.Screen, w screen.Window, tb *toolbar, st paintState) {
	if st.size.X <= 0 || st.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.size)
	if err != nil {
		o.log.Error("new buffer", "error", err)
		return
	}
	defer b.Release()
	render(b.RGBA(), tb, o.theme, st)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
