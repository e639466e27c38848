package nitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorAdvance(t *testing.T) {
	c := InitialCursor()
	require.False(t, c.IsEnd())

	c = c.Advance(InitialCursor())
	require.Equal(t, CursorInitial, c.State)

	c = c.Advance(MoreCursor("?cursor=A"))
	require.Equal(t, MoreCursor("?cursor=A"), c)

	c = c.Advance(InitialCursor())
	require.Equal(t, MoreCursor("?cursor=A"), c, "never moves back to initial")

	c = c.Advance(MoreCursor("?cursor=B"))
	require.Equal(t, "?cursor=B", c.Token)

	c = c.Advance(EndCursor())
	require.True(t, c.IsEnd())

	c = c.Advance(MoreCursor("?cursor=C"))
	require.True(t, c.IsEnd(), "end is absorbing")
}

func TestCursorString(t *testing.T) {
	require.Equal(t, "initial", InitialCursor().String())
	require.Equal(t, "more(?cursor=A)", MoreCursor("?cursor=A").String())
	require.Equal(t, "end", EndCursor().String())
}
