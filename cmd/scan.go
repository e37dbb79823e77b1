package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repoatlas/internal/chunk"
	"repoatlas/internal/cluster"
	"repoatlas/internal/config"
	"repoatlas/internal/embed"
	"repoatlas/internal/ignore"
	"repoatlas/internal/pipeline"
	"repoatlas/internal/project"
	"repoatlas/internal/report"
	"repoatlas/internal/scan"
	"repoatlas/internal/symbols"
	"repoatlas/internal/tokenizer"
)

var (
	flagProjectType    string
	flagIgnoreFiles    []string
	flagIgnore         []string
	flagIncludeExts    []string
	flagFormat         string
	flagNoCache        bool
	flagLLMHint        bool
	flagClusters       int
	flagNoEmbeddings   bool
	flagWorkers        int
	flagEmbeddingsOut  string
	flagPipelineConfig string
)

var scanCmd = &cobra.Command{
	Use:   "scan [patterns...]",
	Short: "Scan source paths and emit a structured YAML/JSON document",
	Long: "Scan a code repository and output a structured document for reasoning models.\n" +
		"By default the entire repository is scanned recursively using .gitignore and\n" +
		"built-in ignore rules, then granular text chunks (per function/class, plus a\n" +
		"file-level fallback) are embedded and clustered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"."}
		}
		sources := expandSourcePatterns(patterns)
		if len(sources) == 0 {
			return fmt.Errorf("no valid source paths found")
		}

		ptype := resolveProjectType(sources)
		logger.Info("using project type", zap.String("project_type", string(ptype)))

		matcher, err := buildMatcher(sources, cfg)
		if err != nil {
			return err
		}

		var tok tokenizer.Tokenizer
		tok, err = tokenizer.NewTiktoken()
		if err != nil {
			logger.Warn("tokenizer unavailable, token counts will carry errors", zap.Error(err))
			tok = tokenizer.Unavailable{Reason: err}
		}
		scanner := scan.NewScanner(scan.NewProcessor(tok, symbols.NewExtractor()), logger)

		var cache *scan.Cache
		if !flagNoCache {
			cache = scan.NewCache(cfg.Scanner.CachePath)
		}

		results, err := scanSources(cmd, scanner, sources, matcher, cache, cfg, ptype)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("nothing scanned")
		}

		combined := scan.Merge(results)

		// Records land in completion order; sort by relative path so the
		// chunk list and rendered document are reproducible across runs.
		sort.Slice(combined.Files, func(i, j int) bool {
			return combined.Files[i].RelativePath < combined.Files[j].RelativePath
		})

		def, err := resolveDefinition(ptype)
		if err != nil {
			return err
		}

		embeddingsRef := ""
		if !flagNoEmbeddings {
			embeddingsRef, err = runEmbeddings(cmd, combined, cfg)
			if err != nil {
				return err
			}
		}

		doc := report.BuildDocument(combined, def, embeddingsRef)
		return doc.Render(os.Stdout, flagFormat)
	},
}

func resolveProjectType(sources []string) project.Type {
	if flagProjectType != "" {
		return project.Type(flagProjectType)
	}
	if dir, ok := firstDir(sources); ok {
		return project.Detect(dir)
	}
	return project.Generic
}

// buildMatcher loads the .gitignore of the first directory source and
// combines it with the built-in defaults and configured extra filenames.
func buildMatcher(sources []string, cfg *config.Config) (*ignore.Matcher, error) {
	root, ok := firstDir(sources)
	if !ok {
		root = filepath.Dir(sources[0])
	}
	return ignore.ForRoot(root, cfg.Scanner.IgnoreFiles...)
}

func scanSources(cmd *cobra.Command, scanner *scan.Scanner, sources []string,
	matcher *ignore.Matcher, cache *scan.Cache, cfg *config.Config, ptype project.Type) ([]*scan.ScanResult, error) {

	workers := flagWorkers
	if workers <= 0 {
		workers = cfg.Scanner.Workers
	}

	sensitive := make(map[string]bool, len(cfg.Scanner.SensitiveFiles))
	for _, name := range cfg.Scanner.SensitiveFiles {
		sensitive[name] = true
	}
	includeExts := make(map[string]bool, len(flagIncludeExts)+len(cfg.Scanner.IncludeExtensions))
	for _, ext := range append(append([]string(nil), cfg.Scanner.IncludeExtensions...), flagIncludeExts...) {
		includeExts[strings.ToLower(ext)] = true
	}
	ignoreGlobs := append(append([]string(nil), flagIgnoreFiles...), flagIgnore...)

	var results []*scan.ScanResult
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			logger.Warn("skipping unknown source", zap.String("path", src), zap.Error(err))
			continue
		}

		if info.IsDir() {
			absRoot, err := filepath.Abs(src)
			if err != nil {
				return nil, err
			}
			if cache != nil {
				if cached, ok := cache.Load(absRoot); ok {
					logger.Info("using cached scan", zap.String("path", absRoot))
					results = append(results, cached)
					continue
				}
			}
			res, err := scanner.Scan(cmd.Context(), scan.Options{
				Root:              absRoot,
				ProjectType:       ptype,
				Ignore:            matcher,
				IgnoreGlobs:       ignoreGlobs,
				SensitiveFiles:    sensitive,
				IncludeExtensions: includeExts,
				Hints:             flagLLMHint,
				Workers:           workers,
				Progress:          !flagVerbose,
			})
			if err != nil {
				return nil, err
			}
			if cache != nil {
				if err := cache.Save(res); err != nil {
					logger.Warn("failed to save scan cache", zap.Error(err))
				}
			}
			results = append(results, res)
			continue
		}

		res, err := scanner.ScanSingleFile(cmd.Context(), src, ptype, flagLLMHint)
		if err != nil {
			logger.Warn("skipping file", zap.String("path", src), zap.Error(err))
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func resolveDefinition(ptype project.Type) (report.Definition, error) {
	if def, found, err := report.LoadExternalDefinition(flagPipelineConfig); err != nil {
		return report.Definition{}, err
	} else if found {
		logger.Info("using external pipeline configuration", zap.String("path", flagPipelineConfig))
		return *def, nil
	}
	return report.GenerateDefinition(ptype, flagLLMHint), nil
}

func runEmbeddings(cmd *cobra.Command, combined *scan.ScanResult, cfg *config.Config) (string, error) {
	chunks := chunk.Assemble(combined.Files)
	if len(chunks) == 0 {
		return "", nil
	}

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return "", err
	}

	k := flagClusters
	if !cmd.Flags().Changed("clusters") && cfg.Cluster.Count > 0 {
		k = cfg.Cluster.Count
	}

	orch := pipeline.NewOrchestrator(embedder, cluster.NewKMeans(cfg.Cluster.Seed), logger)
	orch.BatchSize = cfg.Embedding.BatchSize

	result, err := orch.Run(cmd.Context(), chunks, k)
	if err != nil {
		return "", err
	}
	if result.Embedded == 0 {
		return "", nil
	}
	if err := report.WriteEmbeddings(flagEmbeddingsOut, result); err != nil {
		return "", err
	}
	return flagEmbeddingsOut, nil
}

// expandSourcePatterns resolves glob patterns into concrete paths. A
// pattern with a single-star wildcard is first retried recursively
// (dir/**/name) so "src/*.py" reaches nested files, matching how users
// expect source selection to behave.
func expandSourcePatterns(patterns []string) []string {
	var expanded []string
	for _, p := range patterns {
		if strings.HasPrefix(p, "~") {
			if home, err := os.UserHomeDir(); err == nil {
				p = filepath.Join(home, strings.TrimPrefix(p, "~"))
			}
		}

		if strings.Contains(p, "*") && !strings.Contains(p, "**") {
			dir, base := filepath.Split(p)
			recursive := filepath.Join(dir, "**", base)
			if matches, err := doublestar.FilepathGlob(recursive); err == nil && len(matches) > 0 {
				expanded = append(expanded, matches...)
				continue
			}
		}
		if matches, err := doublestar.FilepathGlob(p); err == nil && len(matches) > 0 {
			expanded = append(expanded, matches...)
			continue
		}
		if _, err := os.Stat(p); err == nil {
			expanded = append(expanded, p)
		}
	}
	return expanded
}

func firstDir(sources []string) (string, bool) {
	for _, src := range sources {
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			return src, true
		}
	}
	return "", false
}

func init() {
	scanCmd.Flags().StringVar(&flagProjectType, "project-type", "", "project type (python_backend, frontend, generic); auto-detected when empty")
	scanCmd.Flags().StringSliceVar(&flagIgnoreFiles, "ignore-files", nil, "filenames to ignore (e.g. LICENSE.md)")
	scanCmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "additional ignore patterns matched against basenames (e.g. *.mp4)")
	scanCmd.Flags().StringSliceVar(&flagIncludeExts, "include-extensions", nil, "file extensions to include; empty includes all")
	scanCmd.Flags().StringVar(&flagFormat, "format", "yaml", "output format: yaml or json")
	scanCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the scan cache")
	scanCmd.Flags().BoolVar(&flagLLMHint, "llm-hint", false, "include LLM hints at each granular level")
	scanCmd.Flags().IntVar(&flagClusters, "clusters", 5, "number of clusters for embeddings")
	scanCmd.Flags().BoolVar(&flagNoEmbeddings, "no-embeddings", false, "skip embedding generation entirely")
	scanCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel workers (default from config)")
	scanCmd.Flags().StringVar(&flagEmbeddingsOut, "embeddings-out", "embeddings.json", "path of the embeddings artifact")
	scanCmd.Flags().StringVar(&flagPipelineConfig, "pipeline-config", "pipeline_config.yaml", "external pipeline definition override")
	rootCmd.AddCommand(scanCmd)
}
