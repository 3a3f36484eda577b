package config

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
store = redis
key = page-notes
data_dir = /tmp/marks
quota = 2MiB
viewport = 1024x768
log_level = debug
theme = my_custom_theme

[redis]
addr = cache:6379
password = "s3cret"
db = 2

[notify]
export = true
copy = false
clear = true

[theme.my_custom_theme]
ToolbarBackground = #111111
Caret = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Store != StoreRedis || cfg.Key != "page-notes" || cfg.DataDir != "/tmp/marks" {
		t.Errorf("unexpected root fields %+v", cfg)
	}
	if cfg.Quota != 2<<20 {
		t.Errorf("quota = %d", cfg.Quota)
	}
	if cfg.Viewport != image.Pt(1024, 768) {
		t.Errorf("viewport = %v", cfg.Viewport)
	}
	if cfg.LogLevel != "debug" || cfg.Theme != "my_custom_theme" {
		t.Errorf("log level %q theme %q", cfg.LogLevel, cfg.Theme)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.Password != "s3cret" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Redis.Prefix != "markyfy:" {
		t.Errorf("redis prefix default lost: %q", cfg.Redis.Prefix)
	}
	if !cfg.Notify.Export || cfg.Notify.Copy || !cfg.Notify.Clear {
		t.Errorf("notify = %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.ToolbarBackground.R != 0x11 || th.Caret.R != 0xFF {
		t.Errorf("unexpected theme colours %+v", th)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"viewport": "viewport = wide",
		"quota":    "quota = lots",
		"notify":   "[notify]\nexport = maybe",
		"redis db": "[redis]\ndb = two",
		"colour":   "[theme.x]\nCaret = blue",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	cfg.Store = "sqlite"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown store error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	env := map[string]string{"MARKYFY_THEME": "dark", "MARKYFY_STORE": "Memory"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Theme != "dark" || cfg.Store != StoreMemory {
		t.Fatalf("env not applied: theme=%q store=%q", cfg.Theme, cfg.Store)
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]int64{"0": 0, "512": 512, "4k": 4096, "5MiB": 5 << 20, "1g": 1 << 30, "10 kb": 10240}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil || got != want {
			t.Errorf("ParseSize(%q) = %d, %v", in, got, err)
		}
	}
	if _, err := ParseSize("-1"); err == nil {
		t.Error("negative size accepted")
	}
}

func TestCircular(t *testing.T) {
	input := `store = memory
key = notes
quota = 1024
viewport = 640x480
theme = dark

[redis]
addr = 10.0.0.1:6380
password = "p w"
db = 3

[notify]
export = true
copy = true
clear = false

[theme.custom]
Name = custom
Backdrop = #000000
FieldText = #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Store != cfg2.Store || cfg.Key != cfg2.Key || cfg.Quota != cfg2.Quota {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Viewport != cfg2.Viewport || cfg.Theme != cfg2.Theme {
		t.Errorf("viewport/theme mismatch")
	}
	if cfg.Redis != cfg2.Redis {
		t.Errorf("Redis mismatch: %+v vs %+v", cfg.Redis, cfg2.Redis)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("store = memory\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("v1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreMemory {
		t.Fatalf("store = %q", cfg.Store)
	}

	if err := os.WriteFile(path, []byte("viewport = 0x0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader("v1.0.0", path).Load(); err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}
