package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneMaxCommandsKeepsMostRecent(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Submit(moveCommand(mustID(i), int64(i), "u1", mustID(i), "x", "y")))
	}

	n := 2
	removed := e.Prune(PruneConfig{MaxCommands: &n})

	assert.Equal(t, 3, removed)
	history := e.GlobalHistory()
	require.Len(t, history, 2)
	assert.Equal(t, []string{mustID(3), mustID(4)}, idsOf(history))
}

func TestPruneKeepFromUsersOverridesAge(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Submit(moveCommand("old", 1, "u1", "X", "x", "y")))
	require.NoError(t, e.Submit(moveCommand("keep", 2, "keeper", "Y", "x", "y")))

	zero := int64(0)
	removed := e.Prune(PruneConfig{
		MaxAgeMS:      &zero,
		NowMS:         1000,
		KeepFromUsers: map[UserID]struct{}{"keeper": {}},
	})

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"keep"}, idsOf(e.GlobalHistory()))
}

func TestPruneWithNoConfigRetainsEverything(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Submit(moveCommand("a", 1, "u1", "A", "x", "y")))
	require.NoError(t, e.Submit(moveCommand("b", 2, "u1", "B", "x", "y")))

	removed := e.Prune(PruneConfig{})
	assert.Equal(t, 0, removed)
	assert.Len(t, e.GlobalHistory(), 2)
}

func TestPruneRemovesFromCommandIndex(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Submit(moveCommand("a", 1, "u1", "A", "x", "y")))
	zero := int64(0)
	e.Prune(PruneConfig{MaxAgeMS: &zero, NowMS: 1000})

	assert.Empty(t, e.GlobalHistory())
	assert.NotContains(t, e.commandByID, "a")
	assert.Empty(t, e.dependentsOf("a"))
}
