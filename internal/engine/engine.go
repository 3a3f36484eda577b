// Package engine ties the tool state, the stroke renderer, the text annotator
// and the snapshot store together behind a small event-driven API.
//
// An Engine is not safe for concurrent use. Hosts call it from a single
// goroutine; the only background work is the decode started by Load.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/markyfy/internal/annotate"
	"github.com/example/markyfy/internal/logging"
	"github.com/example/markyfy/internal/metrics"
	"github.com/example/markyfy/internal/persist"
	"github.com/example/markyfy/internal/stroke"
	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/toolstate"
)

// DefaultViewport is used when no viewport size is configured.
var DefaultViewport = image.Pt(1280, 800)

// Engine owns one surface and the single tool state that drives it.
type Engine struct {
	id      uuid.UUID
	ctx     context.Context
	log     *slog.Logger
	metrics *metrics.Metrics
	onSave  func(error)

	machine *toolstate.Machine
	surf    *surface.Surface
	strokes *stroke.Renderer
	text    *annotate.Annotator
	store   *persist.Store

	scroll  ScrollEvent
	pending *LoadTask
	queue   []input

	lastSaveErr error
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	viewport image.Point
	ctx      context.Context
	log      *slog.Logger
	metrics  *metrics.Metrics
	onSave   func(error)
	scroll   ScrollEvent
}

// WithViewport sizes the surface. The size is fixed for the engine's life.
func WithViewport(width, height int) Option {
	return func(c *config) {
		c.viewport = image.Pt(width, height)
	}
}

// WithContext sets the context used for storage calls made by handlers.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithMetrics records engine activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithSaveErrorHandler registers fn to be called after every failed save.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onSave = fn
	}
}

// WithScroll sets the initial scroll offset.
func WithScroll(x, y float64) Option {
	return func(c *config) {
		c.scroll = ScrollEvent{X: x, Y: y}
	}
}

// New creates an engine in the Idle state with a blank surface that saves to
// store.
func New(store *persist.Store, opts ...Option) *Engine {
	c := config{viewport: DefaultViewport, ctx: context.Background()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	id := uuid.New()
	surf := surface.New(c.viewport.X, c.viewport.Y)
	e := &Engine{
		id:      id,
		ctx:     c.ctx,
		log:     c.log.With("engine", id.String()),
		metrics: c.metrics,
		onSave:  c.onSave,
		machine: toolstate.NewMachine(),
		surf:    surf,
		strokes: stroke.NewRenderer(surf),
		text:    annotate.New(surf),
		store:   store,
		scroll:  c.scroll,
	}
	e.log.Debug("engine created", "width", surf.Bounds().Dx(), "height", surf.Bounds().Dy(), "key", store.Key())
	return e
}

// ID identifies the engine in logs.
func (e *Engine) ID() uuid.UUID { return e.id }

// State returns the current tool state.
func (e *Engine) State() toolstate.State { return e.machine.State() }

// Surface returns the drawing surface.
func (e *Engine) Surface() *surface.Surface { return e.surf }

// Field returns the open text field, if any.
func (e *Engine) Field() (annotate.Field, bool) { return e.text.Field() }

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool { return e.strokes.Active() }

// Scroll returns the current scroll offset.
func (e *Engine) Scroll() ScrollEvent { return e.scroll }

// LastSaveErr returns the error of the most recent save, or nil when it
// succeeded.
func (e *Engine) LastSaveErr() error { return e.lastSaveErr }

// SetActiveTool selects a tool by name. The pseudo-tool "clear" runs
// ClearAll and keeps the current tool.
func (e *Engine) SetActiveTool(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), toolstate.ClearName) {
		return e.ClearAll()
	}
	t, err := toolstate.ParseTool(name)
	if err != nil {
		return err
	}
	st := e.machine.SetActiveTool(t)
	e.log.Debug("tool selected", "tool", st.Active, "mode", st.Mode)
	return nil
}

// ToggleEnabled flips the enabled flag and returns the new value. A stroke
// already in progress stays open but receives no further segments while
// disabled.
func (e *Engine) ToggleEnabled() bool {
	on := e.machine.ToggleEnabled()
	e.log.Debug("enabled toggled", "enabled", on)
	return on
}

// ClearAll blanks the surface and deletes the stored snapshot. A pending
// load is cancelled first and queued edits are replayed before clearing.
func (e *Engine) ClearAll() error {
	if t := e.pending; t != nil {
		t.Cancel()
		e.FinishLoad(t)
	}
	e.surf.Clear()
	e.metrics.Cleared()
	if err := e.store.Clear(e.ctx); err != nil {
		e.log.Warn("clear failed", "error", err)
		return fmt.Errorf("clear all: %w", err)
	}
	e.log.Info("annotations cleared")
	return nil
}

// save writes the whole surface to the store. Failures are recorded, never
// returned to the input handlers.
func (e *Engine) save() {
	n, err := e.store.Save(e.ctx, e.surf.Image())
	e.lastSaveErr = err
	if err == nil {
		e.metrics.Saved(n)
		e.log.Debug("snapshot saved", "bytes", n)
		return
	}
	kind := metrics.FailureOther
	if errors.Is(err, persist.ErrQuotaExceeded) {
		kind = metrics.FailureQuota
	}
	e.metrics.SaveFailed(kind)
	e.log.Warn("snapshot save failed", "kind", kind, "bytes", n, "error", err)
	if e.onSave != nil {
		e.onSave(err)
	}
}
