package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"repoatlas/internal/ignore"
	"repoatlas/internal/project"
	"repoatlas/internal/walker"
)

const defaultWorkers = 8

// Options configures one scan of one repository root.
type Options struct {
	Root        string
	ProjectType project.Type

	// Ignore is the combined gitignore/default/caller rule set.
	Ignore *ignore.Matcher

	// IgnoreGlobs are extra patterns matched against basenames only.
	IgnoreGlobs []string

	// SensitiveFiles are excluded by exact basename match.
	SensitiveFiles map[string]bool

	// IncludeExtensions restricts scanning when non-empty.
	IncludeExtensions map[string]bool

	Hints    bool
	Workers  int
	Progress bool
}

// Scanner fans the Processor out across the candidate file list and folds
// completed records into one ScanResult.
type Scanner struct {
	proc *Processor
	log  *zap.Logger
}

// NewScanner creates a Scanner.
func NewScanner(proc *Processor, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{proc: proc, log: log}
}

// Scan discovers, filters, and processes the files under opts.Root.
// Records land in the result in completion order, not submission order;
// totals and directory grouping are exact regardless. A file whose
// processing fails is logged and dropped; the scan itself never aborts on
// a single file.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*ScanResult, error) {
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	candidates, err := walker.Discover(absRoot, opts.Ignore)
	if err != nil {
		return nil, err
	}

	work := s.filter(absRoot, candidates, opts)

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(work),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSetWidth(32),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	result := &ScanResult{
		RepositoryPath:     absRoot,
		DirectoryStructure: make(map[string][]string),
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, path := range work {
		path := path
		g.Go(func() error {
			rec, err := s.proc.Process(ctx, path, absRoot, opts.ProjectType, opts.Hints)
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				// Partial-failure tolerance: drop this file, keep the scan.
				s.log.Error("file processing failed, dropping file",
					zap.String("path", path), zap.Error(err))
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			result.Files = append(result.Files, rec)
			result.TotalFiles++
			result.TotalSizeBytes += rec.SizeBytes
			dir := filepath.ToSlash(filepath.Dir(rec.RelativePath))
			result.DirectoryStructure[dir] = append(result.DirectoryStructure[dir], rec.Filename)
			return nil
		})
	}

	// Per-file errors never propagate; Wait only synchronizes.
	_ = g.Wait()

	return result, nil
}

// ScanSingleFile processes one explicitly named file. Explicit sources
// bypass the exclusion chain: naming a file is opting it in.
func (s *Scanner) ScanSingleFile(ctx context.Context, path string, ptype project.Type, hints bool) (*ScanResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(abs)

	rec, err := s.proc.Process(ctx, abs, root, ptype, hints)
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		RepositoryPath: root,
		TotalFiles:     1,
		TotalSizeBytes: rec.SizeBytes,
		Files:          []FileRecord{rec},
		DirectoryStructure: map[string][]string{
			".": {rec.Filename},
		},
	}, nil
}

// filter applies the exclusion chain to each candidate, short-circuiting
// on the first match: gitignore rule, CLI glob (basename), sensitive
// filename, project-specific extension, allow-list.
func (s *Scanner) filter(absRoot string, candidates []string, opts Options) []string {
	projectIgnoreExt := opts.ProjectType.IgnoredExtensions()

	var work []string
	for _, path := range candidates {
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		base := filepath.Base(path)

		if opts.Ignore != nil && opts.Ignore.Matches(rel, false) {
			s.log.Debug("ignored by gitignore", zap.String("path", rel))
			continue
		}
		if pattern, ok := matchesAnyGlob(base, opts.IgnoreGlobs); ok {
			s.log.Debug("ignored by pattern",
				zap.String("path", rel), zap.String("pattern", pattern))
			continue
		}
		if opts.SensitiveFiles[base] {
			s.log.Debug("ignored sensitive file", zap.String("path", rel))
			continue
		}
		ext := strings.ToLower(filepath.Ext(path))
		if projectIgnoreExt[ext] {
			s.log.Debug("ignored project-specific extension",
				zap.String("path", rel), zap.String("ext", ext))
			continue
		}
		if len(opts.IncludeExtensions) > 0 && !opts.IncludeExtensions[ext] {
			s.log.Debug("excluded by include-extensions filter", zap.String("path", rel))
			continue
		}
		work = append(work, path)
	}
	return work
}

func matchesAnyGlob(base string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return p, true
		}
	}
	return "", false
}
