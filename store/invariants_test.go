package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Delete's false return is reserved for a table/index inconsistency
// that correct invariants rule out. Nothing outside this package can
// produce one, so simulate the two corruption shapes directly.
func TestDeleteReportsIndexInconsistency(t *testing.T) {
	s := New(nil)

	s.Put("k", "v", 1_700_000_100)
	delete(s.ttlIndex, 1_700_000_100)
	assert.False(t, s.Delete("k"))

	s.Put("j", "v", 1_700_000_200)
	delete(s.ttlIndex[1_700_000_200], "j")
	assert.False(t, s.Delete("j"))

	// Both keys still left the table despite the damaged index.
	require.Equal(t, 0, s.Len())
}
