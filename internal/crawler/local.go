package crawler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NguyenThaiVu/methodminer/internal/dataset"
	"github.com/NguyenThaiVu/methodminer/internal/extract"
	"github.com/NguyenThaiVu/methodminer/internal/parsers"
)

// LocalExtractor runs the extraction pipeline over a directory on disk, no
// network involved. The parser per file is picked by extension; samples carry
// the directory name as repository and no commit.
type LocalExtractor struct {
	rootDir   string
	discovery *FileDiscovery
	minLines  int
	maxLines  int
	store     *dataset.Store
}

// NewLocalExtractor creates a local extractor for rootDir with the given glob
// patterns and filter thresholds.
func NewLocalExtractor(rootDir string, includes, ignores []string, minLines, maxLines int, store *dataset.Store) (*LocalExtractor, error) {
	discovery, err := NewFileDiscovery(rootDir, includes, ignores)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	return &LocalExtractor{
		rootDir:   rootDir,
		discovery: discovery,
		minLines:  minLines,
		maxLines:  maxLines,
		store:     store,
	}, nil
}

// Run discovers files, extracts their methods, and stores the surviving
// samples. Already-stored methods are deduplicated away, so re-runs (watch
// mode) only add what changed.
func (e *LocalExtractor) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	runID := uuid.NewString()

	if err := e.store.BeginRun(runID, "local"); err != nil {
		return nil, err
	}

	files, err := e.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	repoName := filepath.Base(e.rootDir)
	stats := &Stats{}
	var batch []dataset.Sample

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		samples, err := e.extractFile(ctx, repoName, path)
		if err != nil {
			return nil, err
		}
		stats.FilesProcessed++
		batch = append(batch, samples...)
	}

	inserted, err := e.store.InsertSamples(runID, batch)
	if err != nil {
		return nil, err
	}
	if err := e.store.CompleteRun(runID, inserted); err != nil {
		return nil, err
	}

	stats.SamplesKept = inserted
	stats.Duration = time.Since(start)
	return stats, nil
}

func (e *LocalExtractor) extractFile(ctx context.Context, repoName, path string) ([]dataset.Sample, error) {
	parser, ok := parsers.ForExtension(filepath.Ext(path))
	if !ok {
		return nil, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	decls, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(source), "\n")
	records := extract.Filter(extract.FromDeclarations(lines, decls), e.minLines, e.maxLines)
	if len(records) == 0 {
		return nil, nil
	}

	relPath, err := filepath.Rel(e.rootDir, path)
	if err != nil {
		return nil, err
	}

	samples := make([]dataset.Sample, 0, len(records))
	for _, record := range records {
		samples = append(samples, dataset.Sample{
			RepoName:     repoName,
			License:      dataset.NoLicense,
			FilePath:     filepath.ToSlash(relPath),
			MethodRecord: record,
		})
	}
	return samples, nil
}
