package persist

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Store keeps the whole surface as one data URL under a single key.
type Store struct {
	slot      Slot
	key       string
	maxPixels int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithMaxPixels caps the pixel count of snapshots Load will decode.
// Non-positive values keep DefaultMaxPixels.
func WithMaxPixels(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxPixels = n
		}
	}
}

// NewStore returns a store writing to slot under DefaultKey.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{slot: slot, key: DefaultKey, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key in use.
func (s *Store) Key() string { return s.key }

// MaxPixels returns the decode cap in use.
func (s *Store) MaxPixels() int { return s.maxPixels }

// Save encodes img and overwrites the slot. It returns the encoded length.
func (s *Store) Save(ctx context.Context, img image.Image) (int, error) {
	data, err := EncodeDataURL(img)
	if err != nil {
		return 0, err
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return len(data), err
		}
		return len(data), fmt.Errorf("save snapshot: %w", err)
	}
	return len(data), nil
}

// Raw returns the stored data URL.
func (s *Store) Raw(ctx context.Context) (string, error) {
	return s.slot.Get(ctx, s.key)
}

// Load reads and decodes the stored snapshot. Snapshots whose header claims
// more than MaxPixels pixels fail with ErrDecode before any pixel is decoded.
func (s *Store) Load(ctx context.Context) (image.Image, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeDataURLLimit(data, s.maxPixels)
}

// Info describes the stored snapshot without decoding its pixels. An
// oversized snapshot returns its header together with an ErrDecode error.
func (s *Store) Info(ctx context.Context) (Header, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return Header{}, err
	}
	h, err := DecodeHeader(data)
	if err != nil {
		return Header{}, err
	}
	if err := h.Check(s.maxPixels); err != nil {
		return h, err
	}
	return h, nil
}

// Clear removes the stored snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slot.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
