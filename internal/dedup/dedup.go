// File-backed cache of posting URLs already pushed through the persistence
// gate. Purely an optimization: the database uniqueness constraint is the
// real dedup authority, the cache just saves a round trip for URLs this
// machine has handled recently. Entries expire so the file stays bounded.

package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const cacheFileName = "seen_jobs.json"

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

type SeenCache struct {
	mu       sync.Mutex
	filePath string
	maxAge   time.Duration
	seen     map[string]int64
}

// NewSeenCache creates or loads the cache under cacheDir. Entries older
// than maxAgeDays are dropped on load.
func NewSeenCache(cacheDir string, maxAgeDays int) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, cacheFileName),
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

func (c *SeenCache) IsSeen(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[url]
	return ok
}

// Mark records a URL as handled. The cache is flushed to disk on each new
// mark so a crashed run loses nothing.
func (c *SeenCache) Mark(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[url]; ok {
		return
	}
	c.seen[url] = time.Now().UnixMilli()
	c.save()
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", cacheFileName, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", cacheFileName, err)
		return
	}

	oldest := time.Now().Add(-c.maxAge).UnixMilli()
	kept := 0
	for _, e := range entries {
		if e.Timestamp > oldest {
			c.seen[e.URL] = e.Timestamp
			kept++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired)", kept, len(entries)-kept)
}

func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for url, ts := range c.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", cacheFileName, err)
	}
}
