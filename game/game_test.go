package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NelsonXunic/takeaway-hypergraphs/game"
	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

func mustMatch(t *testing.T, hg *hypergraph.Hypergraph) *game.Match {
	t.Helper()
	m, err := game.NewMatch(zap.NewNop(), hg)
	require.NoError(t, err)
	return m
}

func buildPair(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	hg, err := hypergraph.FromSets(
		[]hypergraph.VertexID{"a", "b"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{"e": {"a", "b"}},
	)
	require.NoError(t, err)
	return hg
}

func TestNewMatchClonesStart(t *testing.T) {
	hg := buildPair(t)
	m := mustMatch(t, hg)

	require.NoError(t, m.Play(hypergraph.RemoveVertex("a")))

	// The caller's hypergraph is untouched by match progress.
	assert.True(t, hg.HasVertex("a"))
	assert.False(t, m.Position().HasVertex("a"))
}

func TestPlayAlternatesTurns(t *testing.T) {
	m := mustMatch(t, buildPair(t))
	assert.Equal(t, game.Player1, m.ToMove())

	require.NoError(t, m.Play(hypergraph.RemoveHyperedge("e")))
	assert.Equal(t, game.Player2, m.ToMove())

	require.NoError(t, m.Play(hypergraph.RemoveVertex("a")))
	assert.Equal(t, game.Player1, m.ToMove())
}

func TestWinnerIsLastMover(t *testing.T) {
	m := mustMatch(t, buildPair(t))

	_, over := m.Winner()
	assert.False(t, over)

	require.NoError(t, m.Play(hypergraph.RemoveHyperedge("e")))
	require.NoError(t, m.Play(hypergraph.RemoveVertex("a")))
	require.NoError(t, m.Play(hypergraph.RemoveVertex("b")))

	require.True(t, m.Over())
	winner, over := m.Winner()
	require.True(t, over)
	assert.Equal(t, game.Player1, winner)

	assert.ErrorIs(t, m.Play(hypergraph.RemoveVertex("a")), game.ErrMatchOver)
}

func TestWinnerAfterCascade(t *testing.T) {
	// Removing the last member of a hyperedge removes the hyperedge too, so
	// one vertex removal can end the match outright.
	hg, err := hypergraph.FromSets(
		[]hypergraph.VertexID{"a"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{"e": {"a"}},
	)
	require.NoError(t, err)

	m := mustMatch(t, hg)
	require.NoError(t, m.Play(hypergraph.RemoveVertex("a")))

	require.True(t, m.Over())
	winner, _ := m.Winner()
	assert.Equal(t, game.Player1, winner)
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	m := mustMatch(t, buildPair(t))

	err := m.Play(hypergraph.RemoveVertex("missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, hypergraph.ErrInvalidMove)

	// A rejected move does not consume the turn.
	assert.Equal(t, game.Player1, m.ToMove())
	assert.Empty(t, m.Moves())
}

func TestUndo(t *testing.T) {
	m := mustMatch(t, buildPair(t))
	assert.ErrorIs(t, m.Undo(), game.ErrNothingToUndo)

	require.NoError(t, m.Play(hypergraph.RemoveVertex("a")))
	require.NoError(t, m.Play(hypergraph.RemoveVertex("b")))
	require.True(t, m.Over())

	require.NoError(t, m.Undo())
	assert.False(t, m.Over())
	assert.Equal(t, game.Player2, m.ToMove())
	assert.True(t, m.Position().HasVertex("b"))
	assert.Len(t, m.Moves(), 1)

	require.NoError(t, m.Undo())
	assert.Equal(t, game.Player1, m.ToMove())
	assert.True(t, m.Position().HasVertex("a"))
	assert.Empty(t, m.Moves())
}

func TestMovesHistory(t *testing.T) {
	m := mustMatch(t, buildPair(t))

	require.NoError(t, m.Play(hypergraph.RemoveHyperedge("e")))
	require.NoError(t, m.Play(hypergraph.RemoveVertex("b")))

	moves := m.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, hypergraph.RemoveHyperedge("e"), moves[0])
	assert.Equal(t, hypergraph.RemoveVertex("b"), moves[1])
}
