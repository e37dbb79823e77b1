// Package project classifies a repository into a coarse project type that
// selects extraction behavior for the scan.
package project

import "os"

// Type is a coarse project-type label.
type Type string

const (
	PythonBackend Type = "python_backend"
	Frontend      Type = "frontend"
	JavaScript    Type = "javascript"
	TypeScript    Type = "typescript"
	Generic       Type = "generic"
)

// Detect inspects a directory's immediate file listing and returns a
// project type. First match wins: a Python packaging manifest marks a
// backend, a JS package manifest marks a frontend, anything else is
// generic. No recursive inspection is done.
func Detect(dir string) Type {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Generic
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	if names["requirements.txt"] || names["setup.py"] || names["pyproject.toml"] {
		return PythonBackend
	}
	if names["package.json"] {
		return Frontend
	}
	return Generic
}

// IgnoredExtensions returns the extensions excluded from scanning for
// this project type, beyond the general ignore rules.
func (t Type) IgnoredExtensions() map[string]bool {
	switch t {
	case PythonBackend:
		return map[string]bool{".pyc": true, ".pyo": true, ".pyd": true, ".so": true}
	case TypeScript:
		return map[string]bool{".d.ts": true}
	default:
		return nil
	}
}

var jsExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
}

// AnalysisLanguage returns the language symbol extraction should use for a
// file with the given (lowercased) extension, or "" when the project type
// and extension do not jointly qualify for extraction.
func (t Type) AnalysisLanguage(ext string) string {
	switch t {
	case PythonBackend:
		if ext == ".py" {
			return "python"
		}
	case Frontend, JavaScript, TypeScript:
		if jsExtensions[ext] {
			return "javascript"
		}
	}
	return ""
}
