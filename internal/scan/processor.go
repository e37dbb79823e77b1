package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"repoatlas/internal/project"
	"repoatlas/internal/symbols"
	"repoatlas/internal/tokenizer"
)

// Processor assembles one FileRecord per file. It mutates nothing outside
// its return value, which is what makes the coordinator's fan-out safe.
type Processor struct {
	Tokenizer tokenizer.Tokenizer
	Extractor *symbols.Extractor
}

// NewProcessor creates a Processor over the given capabilities.
func NewProcessor(tok tokenizer.Tokenizer, ext *symbols.Extractor) *Processor {
	return &Processor{Tokenizer: tok, Extractor: ext}
}

// Process reads one file and returns its record. Per-file failures (read,
// decode, tokenize, parse) are captured inside the record; the returned
// error is reserved for conditions that make a record impossible, such as
// a path outside the scan root.
func (p *Processor) Process(ctx context.Context, path, root string, ptype project.Type, hints bool) (FileRecord, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("relative path of %s: %w", path, err)
	}

	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = "none"
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	content := readContent(path)

	rec := FileRecord{
		RelativePath: filepath.ToSlash(rel),
		Filename:     filename,
		Extension:    ext,
		SizeBytes:    size,
		FullContent:  content,
		Tokenization: p.tokenize(content),
	}

	if hints {
		rec.Hint = fileHint(filename, ext, ptype)
	}

	if lang := ptype.AnalysisLanguage(ext); lang != "" {
		analysis := p.Extractor.Extract(ctx, []byte(content), lang, hints)
		rec.Symbols = &analysis
	}

	return rec, nil
}

// readContent reads the file as UTF-8 with best-effort decoding:
// undecodable bytes are replaced, never fatal. A read failure leaves an
// error sentinel as the content so the file still appears in the output.
func readContent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("<<Error reading file: %v>>", err)
	}
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

func (p *Processor) tokenize(content string) Tokenization {
	ids, err := p.Tokenizer.Encode(content)
	if err != nil {
		return Tokenization{Error: err.Error()}
	}
	text, err := p.Tokenizer.Decode(ids)
	if err != nil {
		return Tokenization{Error: err.Error()}
	}
	return Tokenization{Tokens: ids, TokenCount: len(ids), TokenizedText: text}
}

func fileHint(filename, ext string, ptype project.Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This file '%s' of type '%s' contains source code.", filename, ext)
	switch {
	case ptype == project.PythonBackend && ext == ".py":
		b.WriteString(" Focus on its function and class definitions to extract business logic.")
	case ptype.AnalysisLanguage(ext) == "javascript":
		b.WriteString(" Analyze JavaScript/TypeScript constructs for behavior and dependencies.")
	}
	b.WriteString(" Full content is provided for detailed analysis.")
	return b.String()
}
