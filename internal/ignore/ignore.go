// Package ignore compiles gitignore-style patterns into a single
// path predicate used to filter files and prune directories during a scan.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type rule struct {
	pattern  string
	dirOnly  bool
	negated  bool
	anchored bool
}

// Matcher is a compiled set of ignore rules. Matching is relative to the
// scan root and directory-aware: a rule that matches a directory excludes
// everything beneath it.
type Matcher struct {
	rules []rule
	seen  map[string]bool
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{seen: make(map[string]bool)}
}

// AddPatterns compiles the given gitignore-style patterns into the matcher.
// Blank lines, comments, and duplicates are discarded.
func (m *Matcher) AddPatterns(patterns ...string) {
	for _, p := range patterns {
		line := strings.TrimSpace(p)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m.seen[line] {
			continue
		}
		m.seen[line] = true

		r := rule{pattern: line}
		if strings.HasPrefix(r.pattern, "!") {
			r.negated = true
			r.pattern = strings.TrimPrefix(r.pattern, "!")
		}
		if strings.HasSuffix(r.pattern, "/") {
			r.dirOnly = true
			r.pattern = strings.TrimSuffix(r.pattern, "/")
		}
		if strings.HasPrefix(r.pattern, "/") {
			r.anchored = true
			r.pattern = strings.TrimPrefix(r.pattern, "/")
		}
		// An interior slash anchors the pattern to the root, as in
		// gitignore; only slash-free patterns float to any depth.
		if strings.Contains(r.pattern, "/") {
			r.anchored = true
		}
		m.rules = append(m.rules, r)
	}
}

// LoadFile reads patterns from a gitignore-style file. A missing file is
// not an error.
func (m *Matcher) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m.AddPatterns(scanner.Text())
	}
	return scanner.Err()
}

// Matches reports whether the relative path is excluded. Later rules
// override earlier ones, so negated patterns can re-include a path.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	path := filepath.ToSlash(relPath)

	excluded := false
	for _, r := range m.rules {
		var matched bool
		if r.dirOnly && !isDir {
			// A directory-only pattern applies to a file only when it
			// lies beneath a matched directory, never to a file that
			// merely shares the name.
			matched = matchesBeneath(r, path)
		} else {
			matched = matchesRule(r, path)
		}
		if !matched {
			continue
		}
		excluded = !r.negated
	}
	return excluded
}

func matchesRule(r rule, path string) bool {
	if r.anchored {
		if ok, _ := doublestar.Match(r.pattern, path); ok {
			return true
		}
		ok, _ := doublestar.Match(r.pattern+"/**", path)
		return ok
	}
	if ok, _ := doublestar.Match(r.pattern, path); ok {
		return true
	}
	if ok, _ := doublestar.Match("**/"+r.pattern, path); ok {
		return true
	}
	ok, _ := doublestar.Match("**/"+r.pattern+"/**", path)
	return ok
}

// matchesBeneath reports whether path lies strictly beneath a directory
// matched by the rule. The matched directory itself is not included.
func matchesBeneath(r rule, path string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.pattern+"/**", path)
		return ok
	}
	ok, _ := doublestar.Match("**/"+r.pattern+"/**", path)
	return ok
}

// ForRoot builds the combined matcher for a scan root: the root's
// .gitignore (if present), the built-in defaults, and any extra patterns.
func ForRoot(root string, extra ...string) (*Matcher, error) {
	m := NewMatcher()
	if err := m.LoadFile(filepath.Join(root, ".gitignore")); err != nil {
		return nil, err
	}
	m.AddPatterns(DefaultPatterns...)
	m.AddPatterns(extra...)
	return m, nil
}
