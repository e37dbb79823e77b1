package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  Type
	}{
		{"python via requirements", []string{"requirements.txt", "app.py"}, PythonBackend},
		{"python via pyproject", []string{"pyproject.toml"}, PythonBackend},
		{"frontend via package.json", []string{"package.json", "index.js"}, Frontend},
		{"python wins over frontend", []string{"setup.py", "package.json"}, PythonBackend},
		{"generic fallback", []string{"README.md", "main.rs"}, Generic},
		{"empty dir", nil, Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)
			assert.Equal(t, tt.want, Detect(dir))
		})
	}
}

func TestDetect_MissingDir(t *testing.T) {
	assert.Equal(t, Generic, Detect(filepath.Join(t.TempDir(), "nope")))
}

func TestDetect_NoRecursiveInspection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFiles(t, filepath.Join(dir, "sub"), "package.json")
	assert.Equal(t, Generic, Detect(dir))
}

func TestIgnoredExtensions(t *testing.T) {
	assert.True(t, PythonBackend.IgnoredExtensions()[".pyc"])
	assert.True(t, TypeScript.IgnoredExtensions()[".d.ts"])
	assert.Empty(t, Frontend.IgnoredExtensions())
	assert.Empty(t, Generic.IgnoredExtensions())
}

func TestAnalysisLanguage(t *testing.T) {
	assert.Equal(t, "python", PythonBackend.AnalysisLanguage(".py"))
	assert.Equal(t, "", PythonBackend.AnalysisLanguage(".js"))
	assert.Equal(t, "javascript", Frontend.AnalysisLanguage(".jsx"))
	assert.Equal(t, "javascript", TypeScript.AnalysisLanguage(".tsx"))
	assert.Equal(t, "", Generic.AnalysisLanguage(".rs"))
	assert.Equal(t, "", Generic.AnalysisLanguage(".py"))
}
