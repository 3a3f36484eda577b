//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// Write publishes c. The selection can hold one format at a time here, so an
// image wins over text. The returned channel is closed once another
// application takes the clipboard.
func Write(c Content) (<-chan struct{}, error) {
	if c.Empty() {
		return nil, errEmpty
	}
	if err := ensureInit(); err != nil {
		return nil, err
	}
	if len(c.PNG) > 0 {
		return clipboard.Write(clipboard.FmtImage, c.PNG), nil
	}
	return clipboard.Write(clipboard.FmtText, []byte(c.Text)), nil
}

// ReadImage decodes the image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
