package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/markyfy/internal/clipboard"
	"github.com/example/markyfy/internal/export"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.Write

type copyCmd struct {
	*root
	fs   *flag.FlagSet
	text bool
	hold time.Duration
}

func (c *copyCmd) Program() string        { return c.subcommand("copy") }
func (c *copyCmd) Template() string       { return "copy.txt" }
func (c *copyCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCopyCmd(args []string, r *root) (*copyCmd, error) {
	fs := newFlagSet("copy")
	c := &copyCmd{root: r, fs: fs}
	fs.BoolVar(&c.text, "data-url", false, "copy the stored data URL as text instead of the image")
	fs.DurationVar(&c.hold, "hold", 0, "keep serving the clipboard for at most this long (0 waits until replaced)")
	if err := parseFlags(fs, c, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf(c, fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}
	return c, nil
}

func (c *copyCmd) Run() error {
	ctx := context.Background()
	store, closeStore, err := c.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	var content clipboard.Content
	what := "image"
	if c.text {
		data, err := store.Raw(ctx)
		if err != nil {
			return fmt.Errorf("read snapshot %q: %w", store.Key(), err)
		}
		content.Text = data
		what = "data URL"
	} else {
		img, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot %q: %w", store.Key(), err)
		}
		var buf bytes.Buffer
		if err := export.WritePNG(&buf, img); err != nil {
			return err
		}
		content.PNG = buf.Bytes()
	}

	lost, err := writeClipboard(content)
	if err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	c.log.Info("copied to clipboard", "format", what)
	c.notifier.Copy(what)
	c.wait(lost)
	return nil
}

// wait keeps the process alive while it owns the selection.
func (c *copyCmd) wait(lost <-chan struct{}) {
	if lost == nil {
		return
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	var timeout <-chan time.Time
	if c.hold > 0 {
		timer := time.NewTimer(c.hold)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case <-lost:
		c.log.Debug("clipboard taken by another application")
	case <-sig:
	case <-timeout:
	}
}
