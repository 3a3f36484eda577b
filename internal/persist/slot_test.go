package persist

import (
	"context"
	"image"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSlotContract checks the behaviour every Slot backend shares.
func runSlotContract(t *testing.T, slot Slot) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	t.Run("Get Missing", func(t *testing.T) {
		_, err := slot.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, slot.Set(ctx, key, "first"))
		got, err := slot.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "first", got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, slot.Set(ctx, key, "second"))
		got, err := slot.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, slot.Delete(ctx, key))
		_, err := slot.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, slot.Delete(ctx, key), "deleting twice is not an error")
	})
}

// runStoreContract checks Store on top of a backend.
func runStoreContract(t *testing.T, slot Slot) {
	ctx := context.Background()
	store := NewStore(slot)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Pix[3] = 255
	n, err := store.Save(ctx, img)
	require.NoError(t, err)
	assert.Positive(t, n)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), loaded.Bounds())
	_, _, _, a := loaded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)

	info, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, info.Encoded)
	assert.Equal(t, 4, info.Width)

	require.NoError(t, slot.Set(ctx, store.Key(), "data:image/png;base64,AAAA"))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrDecode)

	require.NoError(t, slot.Set(ctx, store.Key(), bombDataURL(t, 200000, 200000)))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrDecode)
	info, err = store.Info(ctx)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, 200000, info.Width)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySlot_Contract(t *testing.T) {
	runSlotContract(t, NewMemorySlot(DefaultQuota))
	runStoreContract(t, NewMemorySlot(DefaultQuota))
}

func TestStore_MaxPixels(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemorySlot(DefaultQuota), WithMaxPixels(100))
	assert.Equal(t, 100, store.MaxPixels())
	assert.Equal(t, DefaultMaxPixels, NewStore(NewMemorySlot(0), WithMaxPixels(0)).MaxPixels())

	_, err := store.Save(ctx, image.NewRGBA(image.Rect(0, 0, 10, 10)))
	require.NoError(t, err)
	_, err = store.Load(ctx)
	require.NoError(t, err)

	_, err = store.Save(ctx, image.NewRGBA(image.Rect(0, 0, 11, 10)))
	require.NoError(t, err)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrDecode)
	_, err = store.Info(ctx)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestMemorySlot_Quota(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot(int64(len("k") + 4))
	require.NoError(t, slot.Set(ctx, "k", "abcd"))
	assert.ErrorIs(t, slot.Set(ctx, "k", "abcde"), ErrQuotaExceeded)

	got, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abcd", got, "refused write keeps the previous value")
	assert.Equal(t, int64(5), slot.Used())

	require.NoError(t, slot.Delete(ctx, "k"))
	assert.Zero(t, slot.Used())
}

func TestFileSlot_Contract(t *testing.T) {
	runSlotContract(t, NewFileSlot(t.TempDir(), 0))
	runStoreContract(t, NewFileSlot(t.TempDir(), 0))
}

func TestFileSlot_QuotaAndKeys(t *testing.T) {
	ctx := context.Background()
	slot := NewFileSlot(t.TempDir(), 3)
	assert.ErrorIs(t, slot.Set(ctx, "k", strings.Repeat("x", 4)), ErrQuotaExceeded)
	_, err := slot.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, slot.Set(ctx, "../escape", "x"))
	assert.Error(t, slot.Set(ctx, "", "x"))
}

func TestFileSlot_OverwriteIsNeverMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows replaces by remove then rename")
	}
	ctx := context.Background()
	dir := t.TempDir()
	slot := NewFileSlot(dir, 0)
	require.NoError(t, slot.Set(ctx, "k", "first"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = slot.Set(ctx, "k", strings.Repeat("v", i%7+1))
		}
	}()
	for reading := true; reading; {
		select {
		case <-done:
			reading = false
		default:
		}
		_, err := slot.Get(ctx, "k")
		require.NoError(t, err, "readers must always see a previous or new value")
	}

	got, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("v", 199%7+1), got)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "k.dataurl", entries[0].Name())
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSlot_Contract(t *testing.T) {
	_, client := newMiniredis(t)
	runSlotContract(t, NewRedisSlotFromClient(client))
	runStoreContract(t, NewRedisSlotFromClient(client, WithPrefix("store:")))
}

func TestRedisSlot_PrefixTTLAndLimit(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	slot := NewRedisSlotFromClient(client, WithPrefix("test:"), WithTTL(time.Minute), WithMaxBytes(4))

	require.NoError(t, slot.Set(ctx, DefaultKey, "abcd"))
	got, err := mr.Get("test:" + DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "abcd", got)
	assert.Equal(t, time.Minute, mr.TTL("test:"+DefaultKey))

	assert.ErrorIs(t, slot.Set(ctx, DefaultKey, "abcde"), ErrQuotaExceeded)

	mr.FastForward(2 * time.Minute)
	_, err = slot.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)
}
