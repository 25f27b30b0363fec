package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestStore creates an in-memory dataset store with the full schema and
// registers cleanup with t.Cleanup().
func NewTestStore(t testing.TB) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}
