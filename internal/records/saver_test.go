package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadenceSaver(t *testing.T) {
	var savedAt []int
	var s *CadenceSaver
	s = NewCadenceSaver(10, func() error {
		savedAt = append(savedAt, s.Processed())
		return nil
	})

	for i := 0; i < 35; i++ {
		require.NoError(t, s.Tick())
	}
	require.NoError(t, s.Flush())

	// Writes after records 10, 20, 30 and once more at the end (35).
	assert.Equal(t, []int{10, 20, 30, 35}, savedAt)
}

func TestCadenceSaverDisabled(t *testing.T) {
	calls := 0
	s := NewCadenceSaver(0, func() error {
		calls++
		return nil
	})
	for i := 0; i < 25; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Zero(t, calls)
	require.NoError(t, s.Flush())
	assert.Equal(t, 1, calls)
}
