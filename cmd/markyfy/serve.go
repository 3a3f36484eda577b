package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/markyfy/internal/httpapi"
	"github.com/example/markyfy/internal/metrics"
)

type serveCmd struct {
	*root
	fs   *flag.FlagSet
	addr string
}

func (s *serveCmd) Program() string        { return s.subcommand("serve") }
func (s *serveCmd) Template() string       { return "serve.txt" }
func (s *serveCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := newFlagSet("serve")
	s := &serveCmd{root: r, fs: fs}
	fs.StringVar(&s.addr, "addr", "127.0.0.1:8080", "listen address")
	if err := parseFlags(fs, s, args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *serveCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := s.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	m, reg := metrics.NewRegistry()
	eng := s.newEngine(ctx, store, m)
	eng.Load(ctx)

	api := httpapi.New(eng, store,
		httpapi.WithGatherer(reg),
		httpapi.WithLogger(s.log),
		httpapi.WithVersion(version),
	)
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving snapshot", "addr", s.addr, "store", s.config.Store, "key", store.Key())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
