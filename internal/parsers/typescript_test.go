package parsers

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for typeScriptParser:
// - Finds class methods and top-level functions with 1-based start lines
// - Return type annotations lose their leading colon
// - static is recorded as a modifier
// - Exported functions are found inside export statements

const testTypeScriptFile = "../../testdata/code/typescript/simple.ts"

// Test: parse the fixture and verify methods and the exported function
func TestTypeScriptParser_Parse(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile(testTypeScriptFile)
	require.NoError(t, err)

	parser := NewTypeScriptParser()
	decls, err := parser.Parse(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, decls, 3)

	increment := declByName(t, decls, "increment")
	assert.Equal(t, 4, increment.StartLine)
	assert.Equal(t, "number", increment.ReturnType)
	assert.Equal(t, []string{"number"}, increment.ParamTypes)

	create := declByName(t, decls, "create")
	assert.Equal(t, 9, create.StartLine)
	assert.Equal(t, []string{"static"}, create.Modifiers)
	assert.Equal(t, "Counter", create.ReturnType)

	format := declByName(t, decls, "format")
	assert.Equal(t, 14, format.StartLine)
	assert.Equal(t, "string", format.ReturnType)
	assert.Equal(t, []string{"Counter", "string"}, format.ParamTypes)
}
