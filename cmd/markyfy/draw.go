package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/markyfy/internal/engine"
	"github.com/example/markyfy/internal/surface"
	"github.com/example/markyfy/internal/toolstate"
)

// drawCmd replays one stroke or one text note through the engine, exactly as
// the overlay would, and saves the result.
type drawCmd struct {
	*root
	fs     *flag.FlagSet
	scroll float64
	action string
	tool   string
	points []surface.Point
	text   string
}

func (d *drawCmd) Program() string        { return d.subcommand("draw") }
func (d *drawCmd) Template() string       { return "draw.txt" }
func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := newFlagSet("draw")
	d := &drawCmd{root: r, fs: fs}
	fs.Float64Var(&d.scroll, "scroll", 0, "vertical scroll offset applied to the coordinates")
	if err := parseFlags(fs, d, args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return nil, &UsageError{of: d}
	}
	d.action = rest[0]
	rest = rest[1:]
	switch d.action {
	case "stroke":
		if len(rest) < 5 || (len(rest)-1)%2 != 0 {
			return nil, usageErrorf(d, "stroke needs a tool and at least two X Y pairs")
		}
		t, err := toolstate.ParseTool(rest[0])
		if err != nil || t == toolstate.Text {
			return nil, usageErrorf(d, fmt.Sprintf("stroke tool must be pen, pencil, highlighter or eraser, got %q", rest[0]))
		}
		d.tool = t.String()
		pts, err := parsePoints(rest[1:])
		if err != nil {
			return nil, usageErrorf(d, err.Error())
		}
		d.points = pts
	case "text":
		if len(rest) < 3 {
			return nil, usageErrorf(d, "text needs X Y and the text")
		}
		pts, err := parsePoints(rest[:2])
		if err != nil {
			return nil, usageErrorf(d, err.Error())
		}
		d.tool = "text"
		d.points = pts
		d.text = strings.Join(rest[2:], " ")
	default:
		return nil, usageErrorf(d, fmt.Sprintf("unknown draw action %q", d.action))
	}
	return d, nil
}

func parsePoints(args []string) ([]surface.Point, error) {
	pts := make([]surface.Point, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate %q", args[i])
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate %q", args[i+1])
		}
		pts = append(pts, surface.Pt(x, y))
	}
	return pts, nil
}

func (d *drawCmd) Run() error {
	ctx := context.Background()
	store, closeStore, err := d.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	eng, err := d.loadedEngine(ctx, store, nil, engine.WithScroll(0, d.scroll))
	if err != nil {
		return err
	}
	if err := eng.SetActiveTool(d.tool); err != nil {
		return err
	}

	first := d.points[0]
	eng.Handle(engine.PointerEvent{Phase: engine.PointerDown, X: first.X, Y: first.Y})
	if d.action == "text" {
		eng.Handle(engine.PointerEvent{Phase: engine.PointerUp, X: first.X, Y: first.Y})
		for _, r := range d.text {
			eng.Handle(key.Event{Rune: r, Direction: key.DirPress})
		}
		eng.Handle(key.Event{Rune: -1, Code: key.CodeReturnEnter, Direction: key.DirPress})
	} else {
		for _, p := range d.points[1:] {
			eng.Handle(engine.PointerEvent{Phase: engine.PointerMove, X: p.X, Y: p.Y})
		}
		last := d.points[len(d.points)-1]
		eng.Handle(engine.PointerEvent{Phase: engine.PointerUp, X: last.X, Y: last.Y})
	}

	if err := eng.LastSaveErr(); err != nil {
		return fmt.Errorf("save annotations: %w", err)
	}
	info, err := store.Info(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.stdout, "saved %s %s to %q (%d bytes)\n", d.action, d.tool, store.Key(), info.Encoded)
	return nil
}
