// Package scan turns candidate files into FileRecords and aggregates them
// into a ScanResult, fanning per-file work out across a bounded worker pool.
package scan

import "repoatlas/internal/symbols"

// Tokenization holds the token id sequence for a file's content, or the
// error that prevented tokenizing it.
type Tokenization struct {
	Tokens     []int  `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	TokenCount int    `json:"token_count" yaml:"token_count"`

	// TokenizedText is the token ids decoded back to text; a lossless
	// encoding reproduces the original content exactly.
	TokenizedText string `json:"tokenized_text,omitempty" yaml:"tokenized_text,omitempty"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileRecord is everything extracted from a single file. It is owned by
// the coordinator until aggregation and immutable afterwards.
type FileRecord struct {
	RelativePath string            `json:"relative_path" yaml:"relative_path"`
	Filename     string            `json:"filename" yaml:"filename"`
	Extension    string            `json:"extension" yaml:"extension"`
	SizeBytes    int64             `json:"size_bytes" yaml:"size_bytes"`
	FullContent  string            `json:"full_content" yaml:"full_content"`
	Tokenization Tokenization      `json:"tokenization" yaml:"tokenization"`
	Symbols      *symbols.Analysis `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Hint         string            `json:"llm_hint" yaml:"llm_hint"`
}

// ScanResult is the aggregate output of scanning one repository root.
type ScanResult struct {
	RepositoryPath     string              `json:"repository_path" yaml:"repository_path"`
	TotalFiles         int                 `json:"total_files" yaml:"total_files"`
	TotalSizeBytes     int64               `json:"total_size_bytes" yaml:"total_size_bytes"`
	Files              []FileRecord        `json:"files" yaml:"files"`
	DirectoryStructure map[string][]string `json:"directory_structure" yaml:"directory_structure"`
}

// MultipleSourcesPath is the repository path reported for a merge of more
// than one scan root.
const MultipleSourcesPath = "Multiple Sources"

// Merge combines several ScanResults by concatenating files and summing
// totals. Directory keys may legitimately collect files from more than one
// result; no structural merging is attempted. A single result is returned
// as is.
func Merge(results []*ScanResult) *ScanResult {
	if len(results) == 1 {
		return results[0]
	}
	combined := &ScanResult{
		RepositoryPath:     MultipleSourcesPath,
		DirectoryStructure: make(map[string][]string),
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		combined.TotalFiles += res.TotalFiles
		combined.TotalSizeBytes += res.TotalSizeBytes
		combined.Files = append(combined.Files, res.Files...)
		for dir, names := range res.DirectoryStructure {
			combined.DirectoryStructure[dir] = append(combined.DirectoryStructure[dir], names...)
		}
	}
	return combined
}
