package cache

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/casegraph/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
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
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "artifact:abc"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "artifact:abc", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v; want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:abc"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("data-"+k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, size, err := c.Stats()
	if err != nil || n != 3 || size == 0 {
		t.Errorf("Stats() = %d, %d, %v; want 3 entries", n, size, err)
	}

	removed, err := c.Clear()
	if err != nil || removed != 3 {
		t.Errorf("Clear() = %d, %v; want 3", removed, err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats() after Clear = %d entries", n)
	}
	if err := c.Set(ctx, "again", []byte("x"), 0); err != nil {
		t.Errorf("cache unusable after Clear: %v", err)
	}
}

type recordingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets []string
}

func (r *recordingHooks) OnCacheHit(_ context.Context, kt string)  { r.hits = append(r.hits, kt) }
func (r *recordingHooks) OnCacheMiss(_ context.Context, kt string) { r.misses = append(r.misses, kt) }
func (r *recordingHooks) OnCacheSet(_ context.Context, kt string, _ int) {
	r.sets = append(r.sets, kt)
}

func TestFileCacheHooks(t *testing.T) {
	defer observability.Reset()
	rec := &recordingHooks{}
	observability.SetCacheHooks(rec)

	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	key := ArtifactKey("graph", ArtifactKeyOpts{Kind: "timeline", Format: "svg"})

	c.Get(ctx, key)
	c.Set(ctx, key, []byte("x"), 0)
	c.Get(ctx, key)

	if len(rec.misses) != 1 || len(rec.sets) != 1 || len(rec.hits) != 1 {
		t.Fatalf("hooks = misses %v, sets %v, hits %v", rec.misses, rec.sets, rec.hits)
	}
	if rec.hits[0] != "artifact" {
		t.Errorf("key type = %q, want artifact", rec.hits[0])
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

func TestArtifactKey(t *testing.T) {
	base := ArtifactKeyOpts{Kind: "timeline", Format: "svg", Width: 1200, Height: 600}
	k1 := ArtifactKey("hash123", base)

	if k1 != ArtifactKey("hash123", base) {
		t.Error("ArtifactKey should be deterministic")
	}
	variants := []ArtifactKeyOpts{
		{Kind: "nodelink", Format: "svg", Width: 1200, Height: 600},
		{Kind: "timeline", Format: "png", Width: 1200, Height: 600},
		{Kind: "timeline", Format: "svg", Width: 1200, Height: 600, Language: "ro"},
		{Kind: "timeline", Format: "svg", Width: 1200, Height: 600, From: "2020-03-01"},
	}
	for _, v := range variants {
		if ArtifactKey("hash123", v) == k1 {
			t.Errorf("options %+v should change the key", v)
		}
	}
	if ArtifactKey("other", base) == k1 {
		t.Error("graph hash should change the key")
	}
	if keyType(k1) != "artifact" {
		t.Errorf("keyType(%q) = %q", k1, keyType(k1))
	}
}

func TestArtifactKeyNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	keys := map[string]string{}
	for _, tc := range []struct {
		graphHash string
		opts      ArtifactKeyOpts
	}{
		{"graphA", ArtifactKeyOpts{Kind: "timeline", Format: "svg", Width: nan}},
		{"graphB", ArtifactKeyOpts{Kind: "nodelink", Format: "dot", Width: inf}},
		{"graphA", ArtifactKeyOpts{Kind: "timeline", Format: "svg", Width: -inf}},
		{"graphA", ArtifactKeyOpts{Kind: "timeline", Format: "svg", Margin: [4]float64{nan}}},
		{"graphA", ArtifactKeyOpts{Kind: "timeline", Format: "png", PNGScale: inf}},
		{"graphA", ArtifactKeyOpts{Kind: "timeline", Format: "svg"}},
	} {
		k := ArtifactKey(tc.graphHash, tc.opts)
		if prev, dup := keys[k]; dup {
			t.Errorf("%s %+v shares key %s with %s", tc.graphHash, tc.opts, k, prev)
		}
		keys[k] = fmt.Sprintf("%s %+v", tc.graphHash, tc.opts)
	}
}
