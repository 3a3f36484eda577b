package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/markyfy/internal/config"
	"github.com/example/markyfy/internal/logging"
	"github.com/example/markyfy/internal/notify"
	"github.com/example/markyfy/internal/persist"
	"github.com/example/markyfy/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	log      *slog.Logger
	notifier *notify.Notifier
	stdout   io.Writer
	stderr   io.Writer
	getenv   func(string) string
	slot     persist.Slot

	store       string
	key         string
	dataDir     string
	logLevel    string
	themeName   string
	exportAlert bool
	copyAlert   bool
	clearAlert  bool
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func (r *root) Template() string { return "root.txt" }

func newRoot(cfg *config.Config) *root {
	r := &root{
		fs:      flag.NewFlagSet("markyfy", flag.ContinueOnError),
		program: "markyfy",
		config:  cfg,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
	}
	r.fs.SetOutput(io.Discard)
	r.fs.StringVar(&r.store, "store", "", "snapshot backend: file, memory or redis (default from config)")
	r.fs.StringVar(&r.key, "key", "", "storage key of the snapshot")
	r.fs.StringVar(&r.dataDir, "data-dir", "", "directory of the file store")
	r.fs.StringVar(&r.logLevel, "log-level", "", "debug, info, warn or error")
	r.fs.StringVar(&r.themeName, "theme", "", "overlay colour theme (default, light, dark or a path)")
	r.fs.BoolVar(&r.exportAlert, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting")
	r.fs.BoolVar(&r.copyAlert, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.clearAlert, "notify-clear", cfg.Notify.Clear, "show a desktop notification after clearing")
	return r
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(r.program + " " + name)
}

// setup applies flags over environment over config and builds the logger
// and the notifier.
func (r *root) setup() error {
	cfg := r.config
	cfg.ApplyEnv(r.getenv)
	if r.store != "" {
		cfg.Store = r.store
	}
	if r.key != "" {
		cfg.Key = r.key
	}
	if r.dataDir != "" {
		cfg.DataDir = r.dataDir
	}
	if r.logLevel != "" {
		cfg.LogLevel = r.logLevel
	}
	if r.themeName != "" {
		cfg.Theme = r.themeName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if r.log == nil {
		r.log = logging.NewWriter(r.stderr, level)
	}
	if r.notifier == nil {
		r.notifier = notify.New(notify.LoadPreferences(r.getenv), r.log)
	}
	r.notifier.Enable(notify.EventExport, r.exportAlert)
	r.notifier.Enable(notify.EventCopy, r.copyAlert)
	r.notifier.Enable(notify.EventClear, r.clearAlert)
	return nil
}

func (r *root) theme() *theme.Theme {
	loader := theme.NewLoader()
	loader.Defined = r.config.Themes
	t, err := loader.Load(r.config.Theme)
	if err != nil {
		r.log.Warn("theme not loaded, using default", "theme", r.config.Theme, "error", err)
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "overlay":
		cmd, err = parseOverlayCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "copy":
		cmd, err = parseCopyCmd(subArgs, r)
	case "clear":
		cmd, err = parseClearCmd(subArgs, r)
	case "info":
		cmd, err = parseInfoCmd(subArgs, r)
	case "serve":
		cmd, err = parseServeCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func loadConfig() *config.Config {
	cfg, err := config.NewLoader(version, configPathOverride).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	return cfg
}

func main() {
	r := newRoot(loadConfig())
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
