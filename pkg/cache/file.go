package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores each entry as a JSON file holding the data and its
// expiry. Files are grouped by key type so layouts and artifacts can be
// inspected and cleared separately. It is the CLI's default cache.
type FileCache struct {
	dir string
}

// DefaultDir returns the CLI cache directory: $XDG_CACHE_HOME/timespiral
// (or the platform equivalent reported by os.UserCacheDir).
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "timespiral"), nil
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// cacheEntry wraps cached data with metadata.
type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid cache entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{
		Data: data,
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write through a temp file so concurrent readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(entryData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Usage counts the entries and bytes stored for one key type.
type Usage struct {
	Entries int
	Bytes   int64
}

// Usage reports disk usage per key type (layout, artifact). Expired entries
// are counted until the next Get removes them.
func (c *FileCache) Usage() (map[string]Usage, error) {
	usage := make(map[string]Usage)
	for _, kind := range []string{KeyTypeLayout, KeyTypeArtifact, keyTypeOther} {
		files, err := c.files(kind)
		if err != nil {
			return nil, err
		}
		var u Usage
		for _, f := range files {
			info, err := os.Stat(f)
			if err != nil {
				continue
			}
			u.Entries++
			u.Bytes += info.Size()
		}
		if u.Entries > 0 {
			usage[kind] = u
		}
	}
	return usage, nil
}

// Clear removes the entries of the given key types, or every entry when
// none are given, and returns how many were deleted.
func (c *FileCache) Clear(kinds ...string) (int, error) {
	if len(kinds) == 0 {
		kinds = []string{KeyTypeLayout, KeyTypeArtifact, keyTypeOther}
	}
	n := 0
	for _, kind := range kinds {
		files, err := c.files(kind)
		if err != nil {
			return n, err
		}
		for _, f := range files {
			if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (c *FileCache) files(kind string) ([]string, error) {
	return filepath.Glob(filepath.Join(c.dir, kind, "*", "*.json"))
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// keyTypeOther holds entries whose key carries no known key type.
const keyTypeOther = "other"

// path converts a cache key to <dir>/<key type>/<h[:2]>/<h[2:]>.json.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, keyType(key), hash[:2], hash[2:]+".json")
}

// keyType finds the key type segment of a possibly scoped key such as
// "team:42:layout:v1:<hash>".
func keyType(key string) string {
	for _, seg := range strings.Split(key, ":") {
		if seg == KeyTypeLayout || seg == KeyTypeArtifact {
			return seg
		}
	}
	return keyTypeOther
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
