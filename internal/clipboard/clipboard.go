// Package clipboard publishes annotation snapshots to the desktop clipboard
// and reads images back from it.
package clipboard

import (
	"errors"
	_ "image/png" // decoder for ReadImage
	"os"
)

// Content is offered to other applications. PNG is served for image/png
// requests and Text for text requests; either may be empty.
type Content struct {
	PNG  []byte
	Text string
}

// Empty reports whether there is nothing to publish.
func (c Content) Empty() bool { return len(c.PNG) == 0 && c.Text == "" }

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errEmpty       = errors.New("nothing to copy")
	errUnsupported = errors.New("clipboard operations are not supported on this platform")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
