// Package walker discovers candidate files beneath a scan root, pruning
// ignored directories before they are descended into.
package walker

import (
	"io/fs"
	"path/filepath"

	"repoatlas/internal/ignore"
)

// Discover walks the tree rooted at root and returns the absolute paths of
// all candidate files. Directories the matcher rejects are skipped without
// being read, so excluded subtrees are never materialized. The returned
// order is the filesystem walk order and carries no guarantee.
func Discover(root string, m *ignore.Matcher) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var candidates []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				return nil
			}
			if m.Matches(filepath.ToSlash(rel), true) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
