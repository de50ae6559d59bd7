package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but is older
// than the cache TTL. The stale file stays on disk until it is overwritten.
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON-encoded values as files named by the SHA-256 of the key.
//
// A Cache is not safe for concurrent use. Freshness is judged from the file
// modification time; a TTL of 0 disables expiry.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache in dir, creating the directory if needed.
// An empty dir selects ~/.cache/geoquick/.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// DefaultDir returns the default cache directory, honoring XDG_CACHE_HOME.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "geoquick"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "geoquick"), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry time-to-live. Zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get loads the value stored under key into v.
//
// It reports (true, nil) on a fresh hit, (false, nil) on a miss and
// (false, ErrExpired) for a stale entry. Other errors come from the
// filesystem or from json.Unmarshal.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v under key, replacing any previous entry and restarting its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache whose keys are prefixed with prefix.
// Views share the directory and TTL of their parent and can be chained.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

// Clear removes every entry file in the cache directory and reports how many
// were removed. Subdirectories and their contents are left alone.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
			n++
		}
	}
	return n, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
