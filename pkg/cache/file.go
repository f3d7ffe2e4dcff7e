package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache persists computed results as JSON files under a root directory.
// Keys produced by SweepKey and BandsKey carry a "kind:digest" shape, which
// maps to kind/hh/rest.json on disk so sweep curves and band structures stay
// inspectable side by side and no single directory accumulates thousands of
// files.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache root %s: %w", dir, err)
	}
	return &FileCache{root: dir}, nil
}

// envelope is the on-disk wrapper around a cached result. Key and StoredAt
// exist for inspecting the cache directory by hand; only Data and ExpiresAt
// drive behavior.
type envelope struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a stored result. Unreadable or expired entries are removed
// and reported as a miss, so a damaged file never poisons a sweep.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !env.ExpiresAt.IsZero() && time.Now().After(env.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return env.Data, true, nil
}

// Set stores a result. The entry is written to a temporary file and renamed
// into place, so an interrupted run cannot leave a truncated entry behind.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{
		Key:      key,
		Data:     data,
		StoredAt: time.Now(),
	}
	if ttl > 0 {
		env.ExpiresAt = env.StoredAt.Add(ttl)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a stored result; deleting an absent key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation leaves the directory consistent.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to root/kind/hh/rest.json. Keys from SweepKey and
// BandsKey already carry a kind prefix and a hex digest; anything else is
// hashed into a "misc" shard.
func (c *FileCache) path(key string) string {
	kind, digest, ok := strings.Cut(key, ":")
	if !ok || kind == "" || !hexDigest(digest) || strings.ContainsAny(kind, `/\.`) {
		kind, digest = "misc", Hash([]byte(key))
	}
	return filepath.Join(c.root, kind, digest[:2], digest[2:]+".json")
}

// hexDigest reports whether s is a full lowercase sha256 hex string.
func hexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
