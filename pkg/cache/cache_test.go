package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sketchpad/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png bytes" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v, want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entries should be gone after Clear")
	}
}

func TestNewFileCacheEmptyDir(t *testing.T) {
	if _, err := NewFileCache(""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should have been evicted")
	}
	if data, hit, _ := c.Get(ctx, "c"); !hit || string(data) != "3" {
		t.Errorf("Get(c) = %q, %v", data, hit)
	}

	// Overwriting an existing key does not evict.
	_ = c.Set(ctx, "b", []byte("22"), 0)
	if c.Len() != 2 {
		t.Errorf("Len() after overwrite = %d, want 2", c.Len())
	}

	_ = c.Set(ctx, "ttl", []byte("x"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "ttl"); hit {
		t.Error("expired entry should miss")
	}
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	_ = c.Set(ctx, "session:a:1", nil, 0)
	_ = c.Set(ctx, "session:a:2", nil, 0)
	_ = c.Set(ctx, "session:b:1", nil, 0)

	if n := c.DeletePrefix(ctx, "session:a:"); n != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	png := k.ExportKey("abc", ExportKeyOpts{Format: "png", Width: 1024, Height: 1024})
	svg := k.ExportKey("abc", ExportKeyOpts{Format: "svg", Width: 1024, Height: 1024})
	if png == svg {
		t.Error("Different formats should produce different keys")
	}
	if !strings.HasPrefix(png, "export:png:") {
		t.Errorf("ExportKey unexpected: %s", png)
	}

	big := k.ExportKey("abc", ExportKeyOpts{Format: "png", Width: 2048, Height: 2048})
	if png == big {
		t.Error("Different sizes should produce different keys")
	}
	if png == k.ExportKey("abd", ExportKeyOpts{Format: "png", Width: 1024, Height: 1024}) {
		t.Error("Different fingerprints should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "session:123:")
	key := scoped.ExportKey("abc", ExportKeyOpts{Format: "png"})
	if !strings.HasPrefix(key, "session:123:export:png:") {
		t.Errorf("ScopedKeyer ExportKey should be prefixed: %s", key)
	}
	if scoped.(*ScopedKeyer).Prefix() != "session:123:" {
		t.Errorf("Prefix() = %q", scoped.(*ScopedKeyer).Prefix())
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ExportKey("abc", ExportKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "prefix:export:svg:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
