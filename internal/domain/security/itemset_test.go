package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemSet(t *testing.T) {
	t.Run("dedupes while keeping first-appearance order", func(t *testing.T) {
		set, err := NewItemSet([]int64{3, 1, 3, 2, 1})

		require.NoError(t, err)
		assert.Equal(t, ItemSet{3, 1, 2}, set)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := NewItemSet(nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive IDs", func(t *testing.T) {
		_, err := NewItemSet([]int64{1, 0})
		assert.Error(t, err)
	})
}

func TestItemSet_Overlaps(t *testing.T) {
	a, err := NewItemSet([]int64{1, 2, 3})
	require.NoError(t, err)

	t.Run("shared member", func(t *testing.T) {
		b, err := NewItemSet([]int64{5, 3})
		require.NoError(t, err)
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("disjoint sets", func(t *testing.T) {
		b, err := NewItemSet([]int64{4, 5})
		require.NoError(t, err)
		assert.False(t, a.Overlaps(b))
	})

	t.Run("empty set never overlaps", func(t *testing.T) {
		assert.False(t, a.Overlaps(nil))
		assert.False(t, ItemSet(nil).Overlaps(a))
	})
}

func TestItemSet_ContainsAndEquals(t *testing.T) {
	set, err := NewItemSet([]int64{7, 8})
	require.NoError(t, err)

	assert.True(t, set.Contains(7))
	assert.False(t, set.Contains(9))

	same, err := NewItemSet([]int64{7, 8})
	require.NoError(t, err)
	assert.True(t, set.Equals(same))

	reordered, err := NewItemSet([]int64{8, 7})
	require.NoError(t, err)
	assert.False(t, set.Equals(reordered))
}
