// Package report assembles the final output document and its companion
// embeddings artifact, and renders them for downstream consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"repoatlas/internal/pipeline"
	"repoatlas/internal/scan"
)

// RepositoryMetadata summarizes the scanned repository.
type RepositoryMetadata struct {
	RepositoryPath string `json:"repository_path" yaml:"repository_path"`
	TotalFiles     int    `json:"total_files" yaml:"total_files"`
	TotalSizeBytes int64  `json:"total_size_bytes" yaml:"total_size_bytes"`
}

// Document is the merged output consumed by downstream reasoning systems.
// Its files and chunk/cluster data are internally consistent: every chunk's
// metadata resolves to a file present in Files.
type Document struct {
	RepositoryMetadata RepositoryMetadata  `json:"repository_metadata" yaml:"repository_metadata"`
	ProjectTree        string              `json:"project_tree" yaml:"project_tree"`
	DirectoryStructure map[string][]string `json:"directory_structure" yaml:"directory_structure"`
	Files              []scan.FileRecord   `json:"files" yaml:"files"`
	PipelineDefinition Definition          `json:"pipeline_definition" yaml:"pipeline_definition"`
	EmbeddingsFile     string              `json:"embeddings_file,omitempty" yaml:"embeddings_file,omitempty"`
}

// BuildDocument assembles the output document from a merged scan result.
func BuildDocument(res *scan.ScanResult, def Definition, embeddingsFile string) *Document {
	return &Document{
		RepositoryMetadata: RepositoryMetadata{
			RepositoryPath: res.RepositoryPath,
			TotalFiles:     res.TotalFiles,
			TotalSizeBytes: res.TotalSizeBytes,
		},
		ProjectTree:        Tree(res.DirectoryStructure, res.RepositoryPath),
		DirectoryStructure: res.DirectoryStructure,
		Files:              res.Files,
		PipelineDefinition: def,
		EmbeddingsFile:     embeddingsFile,
	}
}

// Render writes the document as YAML or JSON.
func (d *Document) Render(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(d)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// embeddingsDocument is the on-disk shape of the embeddings artifact.
type embeddingsDocument struct {
	Model              string                   `json:"model"`
	GranularEmbeddings []pipeline.EmbeddedChunk `json:"granular_embeddings"`
}

// WriteEmbeddings persists the per-chunk vectors and cluster assignments
// to a separate JSON file referenced from the main document.
func WriteEmbeddings(path string, res *pipeline.Result) error {
	doc := embeddingsDocument{
		Model:              res.Model,
		GranularEmbeddings: res.Chunks,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode embeddings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write embeddings file: %w", err)
	}
	return nil
}
