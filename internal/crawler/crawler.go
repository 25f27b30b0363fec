package crawler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NguyenThaiVu/methodminer/internal/dataset"
	"github.com/NguyenThaiVu/methodminer/internal/extract"
	"github.com/NguyenThaiVu/methodminer/internal/github"
	"github.com/NguyenThaiVu/methodminer/internal/parsers"
)

// GitHubAPI is the slice of the GitHub client the crawler uses. Tests swap in
// a fake.
type GitHubAPI interface {
	SearchRepos(ctx context.Context, language string, n, minStars int, allowedLicenses []string) ([]github.Repo, error)
	ListFiles(ctx context.Context, owner, repo, branch string, extensions []string) ([]string, error)
	LastCommit(ctx context.Context, owner, repo, path, branch string) (string, error)
	DownloadZipball(ctx context.Context, owner, repo, branch, destDir string) (string, error)
}

// Options bound a crawl run.
type Options struct {
	Language        string
	NumRepos        int
	MinStars        int
	MaxFiles        int // per-repo cap
	MaxSamples      int // total dataset cap
	AllowedLicenses []string
	MinLines        int
	MaxLines        int
	WorkDir         string // zipball downloads land here
	Workers         int    // parallel file extraction; API calls stay rate-limited
}

// Stats summarizes a finished run.
type Stats struct {
	ReposProcessed int
	FilesProcessed int
	SamplesKept    int
	Duration       time.Duration
}

// Crawler drives the search → download → extract → filter → store pipeline.
type Crawler struct {
	opts     Options
	client   GitHubAPI
	parser   parsers.Parser
	store    *dataset.Store
	progress ProgressReporter
}

// New creates a Crawler. A nil progress reporter disables reporting.
func New(opts Options, client GitHubAPI, parser parsers.Parser, store *dataset.Store, progress ProgressReporter) *Crawler {
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}

	return &Crawler{
		opts:     opts,
		client:   client,
		parser:   parser,
		store:    store,
		progress: progress,
	}
}

// Run crawls repositories until the repo list or the sample cap is exhausted.
// A failing repository is logged and skipped; the run keeps going.
func (c *Crawler) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	runID := uuid.NewString()

	if err := c.store.BeginRun(runID, c.parser.Language()); err != nil {
		return nil, err
	}

	repos, err := c.client.SearchRepos(ctx, c.opts.Language, c.opts.NumRepos, c.opts.MinStars, c.opts.AllowedLicenses)
	if err != nil {
		return nil, fmt.Errorf("repository search failed: %w", err)
	}
	c.progress.OnSearchComplete(len(repos))

	stats := &Stats{}
	for _, repo := range repos {
		if stats.SamplesKept >= c.opts.MaxSamples {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		inserted, files, err := c.processRepo(ctx, runID, repo, c.opts.MaxSamples-stats.SamplesKept)
		if err != nil {
			log.Printf("Skipping repo %s: %v", repo.FullName, err)
			c.progress.OnRepoError(repo.FullName, err)
			continue
		}

		stats.ReposProcessed++
		stats.FilesProcessed += files
		stats.SamplesKept += inserted
		c.progress.OnRepoDone(repo.FullName, inserted)
	}

	if err := c.store.CompleteRun(runID, stats.SamplesKept); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	c.progress.OnComplete(stats.SamplesKept)
	return stats, nil
}

// processRepo extracts up to remaining samples from one repository and
// returns how many were inserted and how many files were processed.
func (c *Crawler) processRepo(ctx context.Context, runID string, repo github.Repo, remaining int) (int, int, error) {
	owner, name, branch := repo.Owner(), repo.Name(), repo.DefaultBranch

	files, err := c.client.ListFiles(ctx, owner, name, branch, c.parser.Extensions())
	if err != nil {
		return 0, 0, err
	}
	c.progress.OnRepoStart(repo.FullName, branch, len(files))

	localRoot, err := c.client.DownloadZipball(ctx, owner, name, branch, c.opts.WorkDir)
	if err != nil {
		return 0, 0, err
	}

	if len(files) > c.opts.MaxFiles {
		files = files[:c.opts.MaxFiles]
	}

	license := dataset.NoLicense
	if repo.License != nil && repo.License.SPDXID != "" {
		license = repo.License.SPDXID
	}

	// Extraction is pure and parallelizes per file; results keep tree order
	// so dataset rows stay in file-traversal order.
	perFile := make([][]dataset.Sample, len(files))
	var mu sync.Mutex
	processed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, f := range files {
		g.Go(func() error {
			samples, err := c.processFile(gctx, repo, license, localRoot, f)
			if err != nil {
				log.Printf("Warning: skipping %s in %s: %v", f, repo.FullName, err)
				return nil
			}

			mu.Lock()
			perFile[i] = samples
			processed++
			mu.Unlock()
			c.progress.OnFileProcessed(f, len(samples))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	var batch []dataset.Sample
	for _, samples := range perFile {
		batch = append(batch, samples...)
	}
	if len(batch) > remaining {
		batch = batch[:remaining]
	}

	inserted, err := c.store.InsertSamples(runID, batch)
	if err != nil {
		return 0, 0, err
	}
	return inserted, processed, nil
}

// processFile runs the per-file pipeline: parse declarations, resolve
// boundaries, tokenize, filter, then attach provenance. Files that vanished
// between tree listing and download, or that keep no methods, contribute
// nothing.
func (c *Crawler) processFile(ctx context.Context, repo github.Repo, license, localRoot, relPath string) ([]dataset.Sample, error) {
	source, err := os.ReadFile(filepath.Join(localRoot, filepath.FromSlash(relPath)))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	decls, err := c.parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(decls) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(source), "\n")
	records := extract.Filter(extract.FromDeclarations(lines, decls), c.opts.MinLines, c.opts.MaxLines)
	if len(records) == 0 {
		return nil, nil
	}

	// One lookup per file; every method in the file shares the commit.
	sha, err := c.client.LastCommit(ctx, repo.Owner(), repo.Name(), relPath, repo.DefaultBranch)
	if err != nil {
		return nil, err
	}
	if sha == "" {
		return nil, nil // no concrete commit, no provenance
	}

	samples := make([]dataset.Sample, 0, len(records))
	for _, record := range records {
		samples = append(samples, dataset.Sample{
			RepoName:     repo.FullName,
			RepoURL:      repo.HTMLURL,
			License:      license,
			CommitSHA:    sha,
			FilePath:     relPath,
			MethodRecord: record,
		})
	}
	return samples, nil
}
