package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the registry:
// - ForLanguage resolves known languages case-insensitively
// - ForExtension resolves known extensions case-insensitively
// - Unknown languages and extensions report absence

func TestForLanguage(t *testing.T) {
	t.Parallel()

	p, ok := ForLanguage("Java")
	require.True(t, ok)
	assert.Equal(t, "java", p.Language())

	_, ok = ForLanguage("cobol")
	assert.False(t, ok)
}

func TestForExtension(t *testing.T) {
	t.Parallel()

	p, ok := ForExtension(".java")
	require.True(t, ok)
	assert.Equal(t, "java", p.Language())

	p, ok = ForExtension(".TS")
	require.True(t, ok)
	assert.Equal(t, "typescript", p.Language())

	_, ok = ForExtension(".py")
	assert.False(t, ok)
}
