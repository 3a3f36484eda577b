package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"github.com/example/markyfy/internal/persist"
)

type infoCmd struct {
	*root
	fs   *flag.FlagSet
	json bool
}

func (i *infoCmd) Program() string        { return i.subcommand("info") }
func (i *infoCmd) Template() string       { return "info.txt" }
func (i *infoCmd) FlagSet() *flag.FlagSet { return i.fs }

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := newFlagSet("info")
	i := &infoCmd{root: r, fs: fs}
	fs.BoolVar(&i.json, "json", false, "print JSON")
	if err := parseFlags(fs, i, args); err != nil {
		return nil, err
	}
	return i, nil
}

type snapshotInfo struct {
	Store   string `json:"store"`
	Key     string `json:"key"`
	Present bool   `json:"present"`
	MIME    string `json:"mime,omitempty"`
	Encoded int    `json:"encoded_bytes,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

func (i *infoCmd) Run() error {
	ctx := context.Background()
	store, closeStore, err := i.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	out := snapshotInfo{Store: i.config.Store, Key: store.Key()}
	h, err := store.Info(ctx)
	switch {
	case err == nil:
		out.Present = true
		out.MIME, out.Encoded, out.Width, out.Height = h.MIME, h.Encoded, h.Width, h.Height
	case errors.Is(err, persist.ErrNotFound):
	default:
		return fmt.Errorf("inspect snapshot %q: %w", store.Key(), err)
	}

	if i.json {
		enc := json.NewEncoder(i.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if !out.Present {
		fmt.Fprintf(i.stdout, "%s: no snapshot stored in %s\n", out.Key, out.Store)
		return nil
	}
	fmt.Fprintf(i.stdout, "%s: %s %dx%d, %d bytes encoded (%s store)\n",
		out.Key, out.MIME, out.Width, out.Height, out.Encoded, out.Store)
	return nil
}
