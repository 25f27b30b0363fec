package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenThaiVu/methodminer/internal/dataset"
	"github.com/NguyenThaiVu/methodminer/internal/github"
	"github.com/NguyenThaiVu/methodminer/internal/parsers"
)

// Test Plan for Crawler.Run:
// - End-to-end over a fake GitHub API: search → list → download → extract →
//   filter → store, with provenance attached
// - Methods failing the line filter never reach the store
// - Files without a concrete commit SHA contribute nothing
// - MaxSamples caps the dataset across repositories
// - A failing repository is skipped, not fatal

const crawlerTestSource = `public class Service {

    public int twice(int x) {
        int y = x * 2;
        log(y);
        return y;
    }

    public int tiny() { return 1; }
}
`

// fakeGitHub serves one in-memory repository tree from disk fixtures.
type fakeGitHub struct {
	repos     []github.Repo
	files     map[string][]string          // fullName -> tree paths
	contents  map[string]map[string]string // fullName -> path -> source
	commits   map[string]string            // fullName:path -> sha
	failRepos map[string]bool              // fullName -> ListFiles error
}

func (f *fakeGitHub) SearchRepos(_ context.Context, _ string, n, _ int, _ []string) ([]github.Repo, error) {
	if len(f.repos) > n {
		return f.repos[:n], nil
	}
	return f.repos, nil
}

func (f *fakeGitHub) ListFiles(_ context.Context, owner, repo, _ string, _ []string) ([]string, error) {
	fullName := owner + "/" + repo
	if f.failRepos[fullName] {
		return nil, assert.AnError
	}
	return f.files[fullName], nil
}

func (f *fakeGitHub) LastCommit(_ context.Context, owner, repo, path, _ string) (string, error) {
	return f.commits[owner+"/"+repo+":"+path], nil
}

func (f *fakeGitHub) DownloadZipball(_ context.Context, owner, repo, _, destDir string) (string, error) {
	root := filepath.Join(destDir, owner+"-"+repo)
	for path, source := range f.contents[owner+"/"+repo] {
		full := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(full, []byte(source), 0644); err != nil {
			return "", err
		}
	}
	return root, nil
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Language:   "Java",
		NumRepos:   5,
		MinStars:   50,
		MaxFiles:   100,
		MaxSamples: 1000,
		MinLines:   3,
		MaxLines:   100,
		WorkDir:    t.TempDir(),
		Workers:    2,
	}
}

// Test: the full pipeline stores filtered methods with provenance
func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	mit := &github.License{Key: "mit", SPDXID: "MIT"}
	fake := &fakeGitHub{
		repos: []github.Repo{
			{FullName: "a/one", HTMLURL: "https://github.com/a/one", DefaultBranch: "main", License: mit},
		},
		files:    map[string][]string{"a/one": {"src/Service.java"}},
		contents: map[string]map[string]string{"a/one": {"src/Service.java": crawlerTestSource}},
		commits:  map[string]string{"a/one:src/Service.java": "sha-1"},
	}

	store := dataset.NewTestStore(t)
	parser, ok := parsers.ForLanguage("java")
	require.True(t, ok)

	c := New(testOptions(t), fake, parser, store, nil)
	stats, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ReposProcessed)
	assert.Equal(t, 1, stats.FilesProcessed)
	// twice() survives; tiny() is a one-liner and is filtered out.
	assert.Equal(t, 1, stats.SamplesKept)

	samples, err := store.Samples()
	require.NoError(t, err)
	require.Len(t, samples, 1)

	sample := samples[0]
	assert.Equal(t, "a/one", sample.RepoName)
	assert.Equal(t, "MIT", sample.License)
	assert.Equal(t, "sha-1", sample.CommitSHA)
	assert.Equal(t, "src/Service.java", sample.FilePath)
	assert.Equal(t, "twice", sample.MethodName)
	assert.Equal(t, 3, sample.StartLine)
	assert.Equal(t, 7, sample.EndLine)
	assert.Equal(t, "public int twice(int)", sample.Signature)
	assert.Contains(t, sample.CodeTokens, "twice")
}

// Test: no commit SHA means no sample
func TestCrawler_SkipsFilesWithoutCommit(t *testing.T) {
	t.Parallel()

	fake := &fakeGitHub{
		repos:    []github.Repo{{FullName: "a/one", DefaultBranch: "main"}},
		files:    map[string][]string{"a/one": {"src/Service.java"}},
		contents: map[string]map[string]string{"a/one": {"src/Service.java": crawlerTestSource}},
		commits:  map[string]string{},
	}

	store := dataset.NewTestStore(t)
	parser, _ := parsers.ForLanguage("java")

	stats, err := New(testOptions(t), fake, parser, store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.SamplesKept)
}

// Test: MaxSamples bounds the dataset across repos
func TestCrawler_MaxSamples(t *testing.T) {
	t.Parallel()

	fake := &fakeGitHub{
		repos: []github.Repo{
			{FullName: "a/one", DefaultBranch: "main"},
			{FullName: "b/two", DefaultBranch: "main"},
		},
		files: map[string][]string{
			"a/one": {"A.java"},
			"b/two": {"B.java"},
		},
		contents: map[string]map[string]string{
			"a/one": {"A.java": crawlerTestSource},
			"b/two": {"B.java": "public class Other {\n" + crawlerTestSource[len("public class Service {\n"):]},
		},
		commits: map[string]string{
			"a/one:A.java": "sha-a",
			"b/two:B.java": "sha-b",
		},
	}

	opts := testOptions(t)
	opts.MaxSamples = 1

	store := dataset.NewTestStore(t)
	parser, _ := parsers.ForLanguage("java")

	stats, err := New(opts, fake, parser, store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SamplesKept)
	assert.Equal(t, 1, stats.ReposProcessed)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Test: one broken repository does not end the run
func TestCrawler_SkipsFailingRepo(t *testing.T) {
	t.Parallel()

	fake := &fakeGitHub{
		repos: []github.Repo{
			{FullName: "a/broken", DefaultBranch: "main"},
			{FullName: "a/one", DefaultBranch: "main"},
		},
		files:     map[string][]string{"a/one": {"src/Service.java"}},
		contents:  map[string]map[string]string{"a/one": {"src/Service.java": crawlerTestSource}},
		commits:   map[string]string{"a/one:src/Service.java": "sha-1"},
		failRepos: map[string]bool{"a/broken": true},
	}

	store := dataset.NewTestStore(t)
	parser, _ := parsers.ForLanguage("java")

	stats, err := New(testOptions(t), fake, parser, store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ReposProcessed)
	assert.Equal(t, 1, stats.SamplesKept)
}
