// Package cache tracks content hashes of written build artifacts so
// incremental builds and dev reloads only touch what changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// IndexFile is the name of the index stored in the cache directory
const IndexFile = ".scc-cache.json"

const indexVersion = "1"

// Cache is an artifact hash index persisted as JSON
type Cache struct {
	mu    sync.RWMutex
	dir   string
	index *Index
	stats Stats
}

// Index tracks all recorded artifacts
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry is the last recorded state of one artifact
type Entry struct {
	Key          string    `json:"key"`
	Hash         string    `json:"hash"`
	Size         int64     `json:"size"`
	Written      time.Time `json:"written"`
	Dependencies []string  `json:"dependencies,omitempty"`
}

// Stats counts lookups since the cache was opened
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Open loads the index from dir. A missing or corrupt index starts empty.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{dir: dir, index: newIndex()}
	if err := c.load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable cache index: %v\n", err)
		c.index = newIndex()
	}
	return c, nil
}

// Memory returns a cache that is never persisted
func Memory() *Cache {
	return &Cache{index: newIndex()}
}

func newIndex() *Index {
	return &Index{
		Version: indexVersion,
		Entries: make(map[string]*Entry),
		Updated: time.Now(),
	}
}

// Unchanged reports whether data matches the recorded hash for key
func (c *Cache) Unchanged(key string, data []byte) bool {
	hash := Hash(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.index.Entries[key]; ok && e.Hash == hash {
		c.stats.Hits++
		return true
	}
	c.stats.Misses++
	return false
}

// Record stores the hash of data under key
func (c *Cache) Record(key string, data []byte, deps ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index.Entries[key] = &Entry{
		Key:          key,
		Hash:         Hash(data),
		Size:         int64(len(data)),
		Written:      time.Now(),
		Dependencies: deps,
	}
	c.index.Updated = time.Now()
}

// Get returns the entry recorded for key
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.index.Entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Delete forgets key
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.index.Entries, key)
	c.index.Updated = time.Now()
}

// Keys returns the recorded keys in sorted order
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.index.Entries))
	for k := range c.index.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InvalidateByDependency forgets every entry that depends on dep and
// returns how many were removed.
func (c *Cache) InvalidateByDependency(dep string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.index.Entries {
		for _, d := range e.Dependencies {
			if d == dep {
				delete(c.index.Entries, key)
				count++
				break
			}
		}
	}
	if count > 0 {
		c.index.Updated = time.Now()
	}
	return count
}

// Clear forgets every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = newIndex()
	c.stats = Stats{}
}

// GetStats returns cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Save writes the index. In-memory caches are not persisted.
func (c *Cache) Save() error {
	if c.dir == "" {
		return nil
	}

	c.mu.RLock()
	data, err := json.MarshalIndent(c.index, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, IndexFile), data, 0644)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(filepath.Join(c.dir, IndexFile))
	if err != nil {
		return err
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return err
	}
	if index.Version != indexVersion {
		return fmt.Errorf("index version %q, want %q", index.Version, indexVersion)
	}
	if index.Entries == nil {
		index.Entries = make(map[string]*Entry)
	}
	c.index = &index
	return nil
}

// Hash returns the hex SHA-256 of data
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// KeyFromFiles generates a key from file contents. Missing files
// contribute their name only so deletions change the key.
func KeyFromFiles(files ...string) (string, error) {
	h := sha256.New()
	for _, file := range files {
		h.Write([]byte(file))
		data, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
