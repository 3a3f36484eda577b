// Package persist stores the annotation surface as a single self-describing
// data URL in a durable key-value slot.
package persist

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decode legacy snapshots
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"  // decode bmp snapshots
	_ "golang.org/x/image/webp" // decode webp snapshots
)

// Sentinel errors returned at the storage boundary.
var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrDecode        = errors.New("snapshot decode failed")
	ErrQuotaExceeded = errors.New("snapshot exceeds storage quota")
)

// MIMEType is the media type used for encoded snapshots.
const MIMEType = "image/png"

const dataURLPrefix = "data:"

// EncodeDataURL PNG-encodes img and wraps it in a base64 data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	var sb strings.Builder
	sb.Grow(len(dataURLPrefix) + len(MIMEType) + len(";base64,") + base64.StdEncoding.EncodedLen(buf.Len()))
	sb.WriteString(dataURLPrefix)
	sb.WriteString(MIMEType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(buf.Bytes()))
	return sb.String(), nil
}

// Header describes a data URL without decoding its pixels.
type Header struct {
	MIME    string
	Encoded int
	Width   int
	Height  int
}

// parseDataURL splits a base64 data URL into its media type and payload.
func parseDataURL(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrDecode)
	}
	meta, payload, ok := strings.Cut(s[len(dataURLPrefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrDecode)
	}
	parts := strings.Split(meta, ";")
	mime := strings.ToLower(strings.TrimSpace(parts[0]))
	if !strings.HasPrefix(mime, "image/") {
		return "", nil, fmt.Errorf("%w: unsupported media type %q", ErrDecode, parts[0])
	}
	isBase64 := false
	for _, p := range parts[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrDecode)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return mime, data, nil
}

// DefaultMaxPixels bounds the decoded size of a snapshot. A compressed
// payload can claim far more pixels than memory holds.
const DefaultMaxPixels = 1 << 26

// DecodeDataURL decodes an image data URL of at most DefaultMaxPixels
// pixels. Any malformed or oversized input yields an error wrapping ErrDecode.
func DecodeDataURL(s string) (image.Image, error) {
	return DecodeDataURLLimit(s, DefaultMaxPixels)
}

// DecodeDataURLLimit is DecodeDataURL with an explicit pixel cap. The image
// header is checked against maxPixels before any pixel data is decoded.
func DecodeDataURLLimit(s string, maxPixels int) (image.Image, error) {
	mime, data, err := parseDataURL(s)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, mime, err)
	}
	if err := checkSize(cfg.Width, cfg.Height, maxPixels); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, mime, err)
	}
	if !strings.HasSuffix(mime, format) {
		return nil, fmt.Errorf("%w: media type %s holds %s data", ErrDecode, mime, format)
	}
	return img, nil
}

func checkSize(width, height, maxPixels int) error {
	if maxPixels > 0 && int64(width)*int64(height) > int64(maxPixels) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, width, height, maxPixels)
	}
	return nil
}

// DecodeHeader reads the media type and pixel size of a data URL. It does
// not apply a pixel cap; see Header.Check.
func DecodeHeader(s string) (Header, error) {
	mime, data, err := parseDataURL(s)
	if err != nil {
		return Header{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Header{MIME: mime, Encoded: len(s), Width: cfg.Width, Height: cfg.Height}, nil
}

// Check reports an error wrapping ErrDecode when the header describes an
// image larger than maxPixels. A maxPixels of zero or less
// disables the cap.
func (h Header) Check(maxPixels int) error {
	return checkSize(h.Width, h.Height, maxPixels)
}
