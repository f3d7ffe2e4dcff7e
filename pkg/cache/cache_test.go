package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := SweepKey("fp", "energy", 0, 1, 100, 0, 1, nil)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get before Set = ok %v, err %v; want miss", ok, err)
	}

	want := []byte(`{"x":[0,1],"t":[1,2]}`)
	if err := c.Set(ctx, key, want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after Set = ok %v, err %v", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "fresh", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "fresh"); !ok {
		t.Error("entry with ttl=0 expired")
	}

	if err := c.Set(ctx, "stale", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "stale"); ok {
		t.Error("expired entry still served")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("deleted entry still served")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}

func TestFileCacheOverwrite(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := BandsKey("fp", 101, nil)
	if err := c.Set(ctx, key, []byte("first"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, key, []byte("second"), 0); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}
}

func TestFileCacheLayoutByKind(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, SweepKey("fp", "energy", 0, 1, 100, 0, 1, nil), []byte("v"), 0); err != nil {
		t.Fatalf("Set sweep: %v", err)
	}
	if err := c.Set(ctx, BandsKey("fp", 101, nil), []byte("v"), 0); err != nil {
		t.Fatalf("Set bands: %v", err)
	}
	if err := c.Set(ctx, "plain-key", []byte("v"), 0); err != nil {
		t.Fatalf("Set plain: %v", err)
	}

	for _, kind := range []string{"sweep", "bands", "misc"} {
		if _, err := os.Stat(filepath.Join(dir, kind)); err != nil {
			t.Errorf("no %s shard on disk: %v", kind, err)
		}
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestSweepKeyDistinguishesInputs(t *testing.T) {
	base := SweepKey("fp", "energy", 0, 1, 100, 0, 1, nil)

	tests := []struct {
		name string
		key  string
	}{
		{"Fingerprint", SweepKey("other", "energy", 0, 1, 100, 0, 1, nil)},
		{"Quantity", SweepKey("fp", "flux", 0, 1, 100, 0, 1, nil)},
		{"Range", SweepKey("fp", "energy", 0, 2, 100, 0, 1, nil)},
		{"Samples", SweepKey("fp", "energy", 0, 1, 200, 0, 1, nil)},
		{"Leads", SweepKey("fp", "energy", 0, 1, 100, 1, 0, nil)},
		{"Extra", SweepKey("fp", "energy", 0, 1, 100, 0, 1, map[string]float64{"phi": 0.5})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == base {
				t.Error("distinct sweep inputs produced the same key")
			}
		})
	}

	if again := SweepKey("fp", "energy", 0, 1, 100, 0, 1, nil); again != base {
		t.Error("identical sweep inputs produced different keys")
	}
}
