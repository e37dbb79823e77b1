package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoatlas/internal/scan"
	"repoatlas/internal/symbols"
)

func pyRecord() scan.FileRecord {
	return scan.FileRecord{
		RelativePath: "src/a.py",
		Filename:     "a.py",
		FullContent:  "def foo():\n    pass\n",
		Symbols: &symbols.Analysis{
			Functions: []symbols.Symbol{{Name: "foo"}},
			Classes:   []symbols.Symbol{{Name: "Bar"}},
		},
	}
}

func TestAssemble_SymbolsPlusFileFallback(t *testing.T) {
	chunks := Assemble([]scan.FileRecord{pyRecord()})

	// N symbols produce N+1 chunks: functions, then classes, then the file.
	require.Len(t, chunks, 3)
	assert.Equal(t, TypeFunction, chunks[0].Metadata.Type)
	assert.Equal(t, "foo", chunks[0].Metadata.Name)
	assert.Equal(t, "Function foo in a.py", chunks[0].Source)

	assert.Equal(t, TypeClass, chunks[1].Metadata.Type)
	assert.Equal(t, "Bar", chunks[1].Metadata.Name)
	assert.Equal(t, "Class Bar in a.py", chunks[1].Source)

	assert.Equal(t, TypeFile, chunks[2].Metadata.Type)
	assert.Empty(t, chunks[2].Metadata.Name)
	assert.Equal(t, "def foo():\n    pass\n", chunks[2].Source)

	for _, c := range chunks {
		assert.Equal(t, "a.py", c.Metadata.File)
		assert.Equal(t, "src/a.py", c.Metadata.Path)
	}
}

func TestAssemble_HintsPreferred(t *testing.T) {
	rec := pyRecord()
	rec.Hint = "file hint"
	rec.Symbols.Functions[0].Hint = "function hint"
	rec.Symbols.Classes[0].Hint = "class hint"

	chunks := Assemble([]scan.FileRecord{rec})
	require.Len(t, chunks, 3)
	assert.Equal(t, "function hint", chunks[0].Source)
	assert.Equal(t, "class hint", chunks[1].Source)
	assert.Equal(t, "file hint", chunks[2].Source)
}

func TestAssemble_NoSymbolsStillEmitsFileChunk(t *testing.T) {
	rec := scan.FileRecord{
		RelativePath: "lib.rs",
		Filename:     "lib.rs",
		FullContent:  "fn main() {}\n",
	}
	chunks := Assemble([]scan.FileRecord{rec})
	require.Len(t, chunks, 1)
	assert.Equal(t, TypeFile, chunks[0].Metadata.Type)
	assert.Equal(t, "fn main() {}\n", chunks[0].Source)
}

func TestAssemble_FailedAnalysisEmitsOnlyFileChunk(t *testing.T) {
	rec := pyRecord()
	rec.Symbols = &symbols.Analysis{Error: "parse error: bad input"}

	chunks := Assemble([]scan.FileRecord{rec})
	require.Len(t, chunks, 1)
	assert.Equal(t, TypeFile, chunks[0].Metadata.Type)
}

func TestAssemble_EmptyFileProducesEmptyChunk(t *testing.T) {
	rec := scan.FileRecord{RelativePath: "empty.txt", Filename: "empty.txt"}
	chunks := Assemble([]scan.FileRecord{rec})
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Source)
}

func TestAssemble_OrderFollowsFileOrder(t *testing.T) {
	a := scan.FileRecord{RelativePath: "a.txt", Filename: "a.txt", FullContent: "a"}
	b := scan.FileRecord{RelativePath: "b.txt", Filename: "b.txt", FullContent: "b"}

	chunks := Assemble([]scan.FileRecord{b, a})
	require.Len(t, chunks, 2)
	assert.Equal(t, "b.txt", chunks[0].Metadata.Path)
	assert.Equal(t, "a.txt", chunks[1].Metadata.Path)
}
