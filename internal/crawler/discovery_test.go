package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Include globs select files anywhere in the tree, including the root
// - Ignore globs drop files and whole directories
// - Matches mirrors Discover for single relative paths
// - Invalid patterns fail construction

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("class X {}\n"), 0644))
	}
}

// Test: include and ignore interplay
func TestFileDiscovery_Discover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"Main.java",
		"src/App.java",
		"src/util/Strings.java",
		"src/notes.md",
		"vendor/dep/Dep.java",
	)

	fd, err := NewFileDiscovery(root, []string{"**/*.java"}, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := fd.Discover()
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.ElementsMatch(t, []string{"Main.java", "src/App.java", "src/util/Strings.java"}, rel)
}

// Test: Matches agrees with discovery rules
func TestFileDiscovery_Matches(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery(t.TempDir(), []string{"**/*.java", "**/*.c"}, []string{"build/**"})
	require.NoError(t, err)

	assert.True(t, fd.Matches("src/App.java"))
	assert.True(t, fd.Matches("App.java"))
	assert.True(t, fd.Matches("lib/x.c"))
	assert.False(t, fd.Matches("build/Gen.java"))
	assert.False(t, fd.Matches("README.md"))
}

// Test: bad glob patterns are rejected up front
func TestFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[oops"}, nil)
	assert.Error(t, err)
}
