//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package backdrop

import (
	"context"
	"image"
)

func portalScreenshot(context.Context) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func rootWindow(context.Context) (*image.RGBA, error) {
	return nil, ErrUnsupported
}
