package config

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/example/markyfy/internal/theme"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
	Clear  bool
}

// Redis holds connection settings for the redis store.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Config holds the application configuration.
type Config struct {
	Store    string
	Key      string
	DataDir  string
	Quota    int64
	Viewport image.Point
	LogLevel string
	Theme    string
	Redis    Redis
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Store:    StoreFile,
		Key:      "annotations",
		Quota:    5 << 20,
		Viewport: image.Pt(1280, 800),
		LogLevel: "info",
		Theme:    "", // empty falls back to the environment, then Default
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "markyfy:",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides settings from MARKYFY_THEME and MARKYFY_STORE.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("MARKYFY_THEME"); v != "" {
		c.Theme = v
	}
	if v := getenv("MARKYFY_STORE"); v != "" {
		c.Store = strings.ToLower(v)
	}
}

// Validate checks values that the parser cannot check on its own.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want file, memory or redis)", c.Store)
	}
	if c.Key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if c.Viewport.X <= 0 || c.Viewport.Y <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.X, c.Viewport.Y)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "store = %s\n", c.Store)
	fmt.Fprintf(&sb, "key = %s\n", c.Key)
	if c.DataDir != "" {
		fmt.Fprintf(&sb, "data_dir = %s\n", c.DataDir)
	}
	fmt.Fprintf(&sb, "quota = %d\n", c.Quota)
	fmt.Fprintf(&sb, "viewport = %dx%d\n", c.Viewport.X, c.Viewport.Y)
	fmt.Fprintf(&sb, "log_level = %s\n", c.LogLevel)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[redis]\n")
	fmt.Fprintf(&sb, "addr = %s\n", c.Redis.Addr)
	if c.Redis.Password != "" {
		fmt.Fprintf(&sb, "password = %q\n", c.Redis.Password)
	}
	fmt.Fprintf(&sb, "db = %d\n", c.Redis.DB)
	fmt.Fprintf(&sb, "prefix = %s\n", c.Redis.Prefix)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "clear = %v\n", c.Notify.Clear)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.FormatColor(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
