package scan

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cache persists a single ScanResult as a JSON blob. It is an explicit
// handle: callers decide where it lives and when it is consulted. The only
// validity check is the cached repository path; there is no content-hash
// or modification-time invalidation. Concurrent writers race with
// last-writer-wins semantics, which is acceptable for a single-user CLI.
type Cache struct {
	path string
}

// NewCache creates a cache handle at the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Load returns the cached ScanResult if it exists and was produced for the
// given absolute repository path. Any read or decode failure is treated as
// a miss.
func (c *Cache) Load(absRoot string) (*ScanResult, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}
	var res ScanResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	if res.RepositoryPath != absRoot {
		return nil, false
	}
	return &res, true
}

// Save persists the ScanResult, replacing any previous cache contents.
func (c *Cache) Save(res *ScanResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode scan cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write scan cache: %w", err)
	}
	return nil
}
