package main

import (
	"context"
	"flag"
	"fmt"
)

type clearCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *clearCmd) Program() string        { return c.subcommand("clear") }
func (c *clearCmd) Template() string       { return "clear.txt" }
func (c *clearCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseClearCmd(args []string, r *root) (*clearCmd, error) {
	fs := newFlagSet("clear")
	c := &clearCmd{root: r, fs: fs}
	if err := parseFlags(fs, c, args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *clearCmd) Run() error {
	ctx := context.Background()
	store, closeStore, err := c.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	eng := c.newEngine(ctx, store, nil)
	if err := eng.ClearAll(); err != nil {
		return err
	}
	c.notifier.Clear(store.Key())
	fmt.Fprintf(c.stdout, "cleared %q\n", store.Key())
	return nil
}
