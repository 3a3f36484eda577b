package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/markyfy/internal/backdrop"
	"github.com/example/markyfy/internal/export"
)

type exportCmd struct {
	*root
	fs       *flag.FlagSet
	format   string
	backdrop string
	output   string
}

func (e *exportCmd) Program() string        { return e.subcommand("export") }
func (e *exportCmd) Template() string       { return "export.txt" }
func (e *exportCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := newFlagSet("export")
	e := &exportCmd{root: r, fs: fs}
	fs.StringVar(&e.format, "format", "", "png or pdf (default from the file extension)")
	fs.StringVar(&e.backdrop, "backdrop", "none", "flatten onto a backdrop: none, portal, x11, clipboard or an image path")
	if err := parseFlags(fs, e, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, usageErrorf(e, "export needs exactly one output file")
	}
	e.output = fs.Arg(0)
	return e, nil
}

func (e *exportCmd) Run() error {
	ctx := context.Background()
	format, err := e.resolveFormat()
	if err != nil {
		return err
	}
	src, err := backdrop.ParseSource(e.backdrop)
	if err != nil {
		return err
	}

	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	img, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot %q: %w", store.Key(), err)
	}
	bg, err := backdrop.Load(ctx, src)
	if err != nil {
		return err
	}
	flat := export.Flatten(img, bg)
	if err := export.WriteFile(e.output, flat, format); err != nil {
		return err
	}
	e.log.Info("snapshot exported", "path", e.output, "format", format)
	e.notifier.Export(e.output)
	fmt.Fprintln(e.stdout, e.output)
	return nil
}

func (e *exportCmd) resolveFormat() (export.Format, error) {
	if e.format != "" {
		return export.ParseFormat(e.format)
	}
	return export.FormatFromPath(e.output)
}
