//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "image"

// Write is unsupported on this platform.
func Write(Content) (<-chan struct{}, error) {
	return nil, errUnsupported
}

// ReadImage is unsupported on this platform.
func ReadImage() (image.Image, error) {
	return nil, errUnsupported
}
