package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Run("FilterChangeResetsPage", func(t *testing.T) {
		for _, text := range []string{"a", "shoe", "SKU1", " "} {
			s := NewState()
			s.Page = 4
			require.True(t, s.SetFilter(text))
			require.Equal(t, 1, s.Page)
		}
	})

	t.Run("SameFilterKeepsPage", func(t *testing.T) {
		s := NewState()
		s.SetFilter("shoe")
		s.Page = 3
		require.False(t, s.SetFilter("shoe"))
		require.Equal(t, 3, s.Page)
	})

	t.Run("PageSize", func(t *testing.T) {
		s := NewState()
		s.Page = 2
		changed, err := s.SetPageSize(10)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, 1, s.Page)
		require.Equal(t, 10, s.PageSize)

		s.Page = 2
		changed, err = s.SetPageSize(10)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, 2, s.Page)

		_, err = s.SetPageSize(7)
		require.ErrorIs(t, err, ErrPageSize)
		require.Equal(t, 10, s.PageSize)
	})

	t.Run("GoToIgnoresOutOfRange", func(t *testing.T) {
		s := NewState()
		require.False(t, s.GoTo(0, 3))
		require.False(t, s.GoTo(4, 3))
		require.False(t, s.GoTo(1, 3))
		require.True(t, s.GoTo(3, 3))
		require.Equal(t, 3, s.Page)
	})

	t.Run("Clamp", func(t *testing.T) {
		s := NewState()
		s.Page = 5
		require.True(t, s.Clamp(2))
		require.Equal(t, 2, s.Page)
		require.False(t, s.Clamp(2))
	})
}

func TestPageWindow(t *testing.T) {
	require.Equal(t, []int{1}, PageWindow(1, 1))
	require.Equal(t, []int{1, 2, 3}, PageWindow(2, 3))
	require.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 9))
	require.Equal(t, []int{3, 4, 5, 6, 7}, PageWindow(5, 9))
	require.Equal(t, []int{5, 6, 7, 8, 9}, PageWindow(9, 9))
}
