package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/markyfy/internal/config"
	"github.com/example/markyfy/internal/engine"
	"github.com/example/markyfy/internal/metrics"
	"github.com/example/markyfy/internal/persist"
)

// defaultDataDir is where the file store lives when no data dir is set.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "markyfy", "data")
	}
	return ".markyfy"
}

// openSlot builds the configured backend. close releases its connections.
// A slot set on the root, as tests do, wins over the configuration.
func (r *root) openSlot() (slot persist.Slot, close func() error, err error) {
	nop := func() error { return nil }
	if r.slot != nil {
		return r.slot, nop, nil
	}
	cfg := r.config
	switch cfg.Store {
	case config.StoreMemory:
		return persist.NewMemorySlot(cfg.Quota), nop, nil
	case config.StoreRedis:
		rs := persist.NewRedisSlot(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			persist.WithPrefix(cfg.Redis.Prefix), persist.WithMaxBytes(cfg.Quota))
		return rs, rs.Close, nil
	case config.StoreFile:
		dir := cfg.DataDir
		if dir == "" {
			dir = defaultDataDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return persist.NewFileSlot(dir, cfg.Quota), nop, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// openStore returns the snapshot store for the configured key.
func (r *root) openStore() (*persist.Store, func() error, error) {
	slot, closeFn, err := r.openSlot()
	if err != nil {
		return nil, nil, err
	}
	r.log.Debug("store opened", "backend", r.config.Store, "key", r.config.Key)
	return persist.NewStore(slot, persist.WithKey(r.config.Key)), closeFn, nil
}

// newEngine returns an engine sized to the configured viewport.
func (r *root) newEngine(ctx context.Context, store *persist.Store, m *metrics.Metrics, opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithViewport(r.config.Viewport.X, r.config.Viewport.Y),
		engine.WithContext(ctx),
		engine.WithLogger(r.log),
		engine.WithMetrics(m),
	}
	return engine.New(store, append(base, opts...)...)
}

// loadedEngine is newEngine followed by a completed snapshot load.
func (r *root) loadedEngine(ctx context.Context, store *persist.Store, m *metrics.Metrics, opts ...engine.Option) (*engine.Engine, error) {
	eng := r.newEngine(ctx, store, m, opts...)
	eng.Load(ctx)
	if err := eng.AwaitLoad(ctx); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return eng, nil
}
