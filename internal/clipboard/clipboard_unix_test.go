//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"sync"
	"testing"
)

func TestWriteWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil

	_, err := Write(Content{Text: "data:image/png;base64,AAAA"})
	if !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay, got %v", err)
	}
}

func TestWriteEmpty(t *testing.T) {
	if _, err := Write(Content{}); !errors.Is(err, errEmpty) {
		t.Fatalf("expected errEmpty, got %v", err)
	}
}
