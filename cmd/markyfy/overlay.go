package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/markyfy/internal/backdrop"
	"github.com/example/markyfy/internal/config"
	"github.com/example/markyfy/internal/host"
)

type overlayCmd struct {
	*root
	fs       *flag.FlagSet
	backdrop string
	viewport string
	title    string
}

func (o *overlayCmd) Program() string        { return o.subcommand("overlay") }
func (o *overlayCmd) Template() string       { return "overlay.txt" }
func (o *overlayCmd) FlagSet() *flag.FlagSet { return o.fs }

func parseOverlayCmd(args []string, r *root) (*overlayCmd, error) {
	fs := newFlagSet("overlay")
	o := &overlayCmd{root: r, fs: fs}
	fs.StringVar(&o.backdrop, "backdrop", "none", "backdrop: none, portal, x11, x11:X,Y,WxH, clipboard or an image path")
	fs.StringVar(&o.viewport, "viewport", "", "overlay size as WxH (default from config, or the backdrop size)")
	fs.StringVar(&o.title, "title", "Markyfy", "window title")
	if err := parseFlags(fs, o, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf(o, fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}
	return o, nil
}

func (o *overlayCmd) Run() error {
	ctx := context.Background()
	src, err := backdrop.ParseSource(o.backdrop)
	if err != nil {
		return err
	}
	bg, err := backdrop.Load(ctx, src)
	if err != nil {
		return err
	}
	switch {
	case o.viewport != "":
		vp, err := config.ParseViewport(o.viewport)
		if err != nil {
			return err
		}
		o.config.Viewport = vp
	case bg != nil:
		o.config.Viewport = bg.Bounds().Size()
	}

	store, closeStore, err := o.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	eng := o.newEngine(ctx, store, nil)
	o.log.Info("overlay starting", "engine", eng.ID().String(), "backdrop", src.Kind,
		"width", o.config.Viewport.X, "height", o.config.Viewport.Y)
	ov := host.New(eng,
		host.WithBackdrop(bg),
		host.WithTheme(o.theme()),
		host.WithTitle(o.title),
		host.WithLogger(o.log),
		host.WithContext(ctx),
	)
	return ov.Run()
}
