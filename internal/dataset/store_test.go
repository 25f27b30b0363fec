package dataset

import (
	"testing"

	"github.com/NguyenThaiVu/methodminer/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Store:
// - Round-trips a sample batch including the token sequence
// - Duplicate samples (same repo, path, name, code) are inserted once
// - The same method body in a different repo is not a duplicate
// - Runs record start, completion, and total samples
// - Count matches the number of stored rows

func testSample(repo, path, name, code string) Sample {
	return Sample{
		RepoName:  repo,
		RepoURL:   "https://github.com/" + repo,
		License:   "MIT",
		CommitSHA: "abc123",
		FilePath:  path,
		MethodRecord: extract.MethodRecord{
			MethodName:   name,
			StartLine:    3,
			EndLine:      7,
			Signature:    "public void " + name + "()",
			OriginalCode: code,
			CodeTokens:   extract.Tokenize(code),
		},
	}
}

// Test: insert then read back
func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)
	require.NoError(t, store.BeginRun("run-1", "java"))

	in := testSample("a/one", "src/Main.java", "greet", "void greet() {\n  say(\"hi\");\n}")
	inserted, err := store.InsertSamples("run-1", []Sample{in})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	samples, err := store.Samples()
	require.NoError(t, err)
	require.Len(t, samples, 1)

	got := samples[0]
	assert.Equal(t, in.RepoName, got.RepoName)
	assert.Equal(t, in.CommitSHA, got.CommitSHA)
	assert.Equal(t, in.OriginalCode, got.OriginalCode)
	assert.Equal(t, in.CodeTokens, got.CodeTokens)
	assert.Equal(t, in.StartLine, got.StartLine)
	assert.Equal(t, in.EndLine, got.EndLine)
}

// Test: duplicates collapse, near-duplicates do not
func TestStore_Dedup(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)
	require.NoError(t, store.BeginRun("run-1", "java"))

	code := "void f() {\n  work();\n}"
	first := testSample("a/one", "A.java", "f", code)
	duplicate := testSample("a/one", "A.java", "f", code)
	otherRepo := testSample("b/two", "A.java", "f", code)

	inserted, err := store.InsertSamples("run-1", []Sample{first, duplicate, otherRepo})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// A second pass over the same repo inserts nothing new.
	inserted, err = store.InsertSamples("run-1", []Sample{first})
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

// Test: empty batches are a no-op
func TestStore_InsertEmpty(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)
	require.NoError(t, store.BeginRun("run-1", "java"))

	inserted, err := store.InsertSamples("run-1", nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

// Test: run lifecycle
func TestStore_Runs(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)
	require.NoError(t, store.BeginRun("run-1", "java"))

	_, err := store.InsertSamples("run-1", []Sample{
		testSample("a/one", "A.java", "f", "void f() {\n  x();\n}"),
	})
	require.NoError(t, err)
	require.NoError(t, store.CompleteRun("run-1", 1))

	var completed string
	var total int
	err = store.DB().QueryRow("SELECT completed_at, total_samples FROM runs WHERE run_id = ?", "run-1").
		Scan(&completed, &total)
	require.NoError(t, err)
	assert.NotEmpty(t, completed)
	assert.Equal(t, 1, total)
}
