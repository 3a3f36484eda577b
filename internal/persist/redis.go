package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisSlot stores values as plain Redis strings.
type RedisSlot struct {
	client   *backend.Client
	prefix   string
	ttl      time.Duration
	maxBytes int64
}

// RedisOption configures a RedisSlot.
type RedisOption func(*RedisSlot)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisSlot) {
		s.prefix = prefix
	}
}

// WithTTL expires stored snapshots after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisSlot) {
		s.ttl = ttl
	}
}

// WithMaxBytes refuses values larger than n bytes with ErrQuotaExceeded.
func WithMaxBytes(n int64) RedisOption {
	return func(s *RedisSlot) {
		s.maxBytes = n
	}
}

// NewRedisSlot dials addr lazily and returns a slot backed by it.
func NewRedisSlot(addr, password string, db int, opts ...RedisOption) *RedisSlot {
	rdb := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisSlotFromClient(rdb, opts...)
}

// NewRedisSlotFromClient wraps an existing client.
func NewRedisSlotFromClient(client *backend.Client, opts ...RedisOption) *RedisSlot {
	s := &RedisSlot{
		client: client,
		prefix: "markyfy:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSlot) key(k string) string {
	return s.prefix + k
}

// Get returns the value stored under key.
func (s *RedisSlot) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set overwrites key. Redis out-of-memory replies map to ErrQuotaExceeded.
func (s *RedisSlot) Set(ctx context.Context, key, value string) error {
	if s.maxBytes > 0 && int64(len(value)) > s.maxBytes {
		return ErrQuotaExceeded
	}
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		if isOOM(err) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *RedisSlot) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisSlot) Close() error {
	return s.client.Close()
}

func isOOM(err error) bool {
	var rerr backend.Error
	if errors.As(err, &rerr) {
		return strings.HasPrefix(rerr.Error(), "OOM")
	}
	return false
}
