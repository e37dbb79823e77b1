package report

import (
	"sort"
	"strings"
)

// Tree renders a directory structure as a formatted tree string. Keys and
// filenames are sorted so the rendering is stable regardless of scan
// completion order.
func Tree(directoryStructure map[string][]string, basePath string) string {
	dirs := make([]string, 0, len(directoryStructure))
	for dir := range directoryStructure {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var lines []string
	for _, dir := range dirs {
		if dir == "." {
			lines = append(lines, basePath)
		} else {
			lines = append(lines, dir)
		}
		names := append([]string(nil), directoryStructure[dir]...)
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, "├── "+name)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
