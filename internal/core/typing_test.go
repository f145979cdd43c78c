package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypingStartRequiresKnownRoom(t *testing.T) {
	tt := NewTypingTable()

	require.Nil(t, tt.Start("ghost", "alice"))

	tt.EnsureRoom("general")
	require.Equal(t, []string{"alice"}, tt.Start("general", "alice"))
	require.Equal(t, []string{"alice"}, tt.Start("general", "alice"))
}

func TestTypingStopReportsChange(t *testing.T) {
	tt := NewTypingTable()
	tt.EnsureRoom("general")
	tt.Start("general", "alice")

	typers, changed := tt.Stop("general", "alice")
	require.True(t, changed)
	require.Empty(t, typers)

	typers, changed = tt.Stop("general", "alice")
	require.False(t, changed)
	require.Empty(t, typers)

	typers, changed = tt.Stop("ghost", "alice")
	require.False(t, changed)
	require.Nil(t, typers)
}

func TestTypingClearForUser(t *testing.T) {
	tt := NewTypingTable()
	tt.EnsureRoom("general")
	tt.EnsureRoom("random")
	tt.EnsureRoom("quiet")
	tt.Start("general", "alice")
	tt.Start("general", "bob")
	tt.Start("random", "alice")

	affected := tt.ClearForUser("alice")
	require.Equal(t, []string{"general", "random"}, affected)
	require.Equal(t, []string{"bob"}, tt.Typing("general"))
	require.Empty(t, tt.Typing("random"))

	require.Empty(t, tt.ClearForUser("alice"))
}

func TestTypingUnknownRoomResolvesEmpty(t *testing.T) {
	tt := NewTypingTable()

	require.Empty(t, tt.Typing("ghost"))
	require.NotNil(t, tt.Typing("ghost"))
}
