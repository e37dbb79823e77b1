package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewCache(path)

	res := &ScanResult{
		RepositoryPath: "/abs/repo",
		TotalFiles:     1,
		TotalSizeBytes: 42,
		Files:          []FileRecord{{RelativePath: "a.py", Filename: "a.py", SizeBytes: 42}},
		DirectoryStructure: map[string][]string{
			".": {"a.py"},
		},
	}
	require.NoError(t, c.Save(res))

	got, ok := c.Load("/abs/repo")
	require.True(t, ok)
	assert.Equal(t, res.TotalFiles, got.TotalFiles)
	assert.Equal(t, res.TotalSizeBytes, got.TotalSizeBytes)
	assert.Equal(t, res.Files, got.Files)
}

func TestCache_KeyMismatchIsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewCache(path)
	require.NoError(t, c.Save(&ScanResult{RepositoryPath: "/abs/repo"}))

	_, ok := c.Load("/other/repo")
	assert.False(t, ok)
}

func TestCache_MissingFileIsMiss(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nope.json"))
	_, ok := c.Load("/abs/repo")
	assert.False(t, ok)
}

func TestCache_CorruptFileIsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, ok := NewCache(path).Load("/abs/repo")
	assert.False(t, ok)
}
