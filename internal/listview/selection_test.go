package listview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/adminui/internal/member"
)

func TestSelectionToggleAndPrune(t *testing.T) {
	t.Parallel()

	s := NewSelection()
	s.Toggle("1")
	s.Toggle("2")
	require.True(t, s.Has("1"))
	require.Equal(t, 2, s.Len())

	s.Toggle("1")
	require.False(t, s.Has("1"))

	s.Toggle("3")
	s.Prune("2", "404")
	require.False(t, s.Has("2"))
	require.True(t, s.Has("3"))

	s.Retain(func(id member.ID) bool { return id != "3" })
	require.Zero(t, s.Len())
}

func TestSelectionSelectAllVisible(t *testing.T) {
	t.Parallel()

	s := NewSelection()
	s.Toggle("99")
	s.SelectAllVisible(true, []member.ID{"11", "12"})
	require.Equal(t, 2, s.Len())
	require.False(t, s.Has("99"))

	s.SelectAllVisible(true, nil)
	require.Zero(t, s.Len(), "empty page selects nothing")

	s.Toggle("5")
	s.SelectAllVisible(false, []member.ID{"11"})
	require.Zero(t, s.Len())
}
