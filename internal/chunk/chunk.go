// Package chunk flattens scanned file records into an ordered list of
// embeddable text chunks with provenance metadata.
package chunk

import (
	"fmt"

	"repoatlas/internal/scan"
)

// Chunk types.
const (
	TypeFunction = "function"
	TypeClass    = "class"
	TypeFile     = "file"
)

// Metadata carries enough provenance to map an embedding or cluster result
// back to its source location.
type Metadata struct {
	File string `json:"file" yaml:"file"`
	Path string `json:"path" yaml:"path"`
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Chunk is one unit of text submitted for embedding.
type Chunk struct {
	Source   string   `json:"source" yaml:"source"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Assemble turns file records into chunks. For each file it emits one
// chunk per function, then one per class, in symbol order, followed by
// exactly one file-level fallback chunk. Symbol chunks use the symbol's
// hint when present, otherwise a synthesized description; the file chunk
// uses the file's hint when present, otherwise its full content.
func Assemble(files []scan.FileRecord) []Chunk {
	var chunks []Chunk
	for _, file := range files {
		base := Metadata{File: file.Filename, Path: file.RelativePath}

		if file.Symbols != nil {
			for _, fn := range file.Symbols.Functions {
				text := fn.Hint
				if text == "" {
					text = fmt.Sprintf("Function %s in %s", fn.Name, file.Filename)
				}
				meta := base
				meta.Type = TypeFunction
				meta.Name = fn.Name
				chunks = append(chunks, Chunk{Source: text, Metadata: meta})
			}
			for _, cls := range file.Symbols.Classes {
				text := cls.Hint
				if text == "" {
					text = fmt.Sprintf("Class %s in %s", cls.Name, file.Filename)
				}
				meta := base
				meta.Type = TypeClass
				meta.Name = cls.Name
				chunks = append(chunks, Chunk{Source: text, Metadata: meta})
			}
		}

		text := file.Hint
		if text == "" {
			text = file.FullContent
		}
		meta := base
		meta.Type = TypeFile
		chunks = append(chunks, Chunk{Source: text, Metadata: meta})
	}
	return chunks
}
