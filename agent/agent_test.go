package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NelsonXunic/takeaway-hypergraphs/agent"
	"github.com/NelsonXunic/takeaway-hypergraphs/config"
	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
	"github.com/NelsonXunic/takeaway-hypergraphs/solver"
)

func newAgent(t *testing.T, cfg config.SolverConfig) *agent.Agent {
	t.Helper()
	s, err := solver.NewSolver(zap.NewNop(), cfg)
	require.NoError(t, err)
	return agent.NewAgent(zap.NewNop(), s)
}

func mustBuild(
	t *testing.T,
	vertices []hypergraph.VertexID,
	edges map[hypergraph.HyperedgeID][]hypergraph.VertexID,
) *hypergraph.Hypergraph {
	t.Helper()
	hg, err := hypergraph.FromSets(vertices, edges)
	require.NoError(t, err)
	return hg
}

func TestSelectMoveTerminal(t *testing.T) {
	a := newAgent(t, config.SolverConfig{})
	_, err := a.SelectMove(context.Background(), hypergraph.New())
	assert.ErrorIs(t, err, agent.ErrNoLegalMoves)
}

func TestSelectMoveWinning(t *testing.T) {
	// A single vertex is a first-player win: take it.
	a := newAgent(t, config.SolverConfig{})
	hg := mustBuild(t, []hypergraph.VertexID{"v1"}, nil)

	d, err := a.SelectMove(context.Background(), hg)
	require.NoError(t, err)

	assert.True(t, d.Winning)
	assert.Equal(t, hypergraph.RemoveVertex("v1"), d.Move)
}

func TestSelectMoveLeavesOpponentLosing(t *testing.T) {
	// Two vertices joined by an edge is a first-player win. The winning move
	// must lead to a previous-player-win position for the opponent.
	a := newAgent(t, config.SolverConfig{})
	hg := mustBuild(
		t,
		[]hypergraph.VertexID{"a", "b"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{"e": {"a", "b"}},
	)

	d, err := a.SelectMove(context.Background(), hg)
	require.NoError(t, err)
	require.True(t, d.Winning)

	next, err := hg.Apply(d.Move)
	require.NoError(t, err)

	s, err := solver.NewSolver(zap.NewNop(), config.SolverConfig{})
	require.NoError(t, err)
	out, err := s.Evaluate(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, solver.PPosition, out.Class)
}

func TestSelectMoveLostPosition(t *testing.T) {
	// One hyperedge over three vertices is a previous-player win, so no move
	// helps. The agent still returns a legal move, flagged as not winning.
	a := newAgent(t, config.SolverConfig{})
	hg := mustBuild(
		t,
		[]hypergraph.VertexID{"v1", "v2", "v3"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e": {"v1", "v2", "v3"},
		},
	)

	d, err := a.SelectMove(context.Background(), hg)
	require.NoError(t, err)

	assert.False(t, d.Winning)
	_, err = hg.Apply(d.Move)
	assert.NoError(t, err)
}

func TestSelectMovePropagatesUnsolved(t *testing.T) {
	a := newAgent(t, config.SolverConfig{
		Budget: config.BudgetConfig{MaxNodes: 1},
	})
	hg := mustBuild(
		t,
		[]hypergraph.VertexID{"a", "b", "c", "d"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"a", "b", "c", "d"},
			"e2": {"a", "b"},
		},
	)

	_, err := a.SelectMove(context.Background(), hg)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrUnsolved)
}

func TestSelectMovePlaysPerfectGame(t *testing.T) {
	// From a winning start the agent should win the whole game against any
	// replies, here against an agent of its own strength.
	a := newAgent(t, config.SolverConfig{})
	hg := mustBuild(
		t,
		[]hypergraph.VertexID{"a", "b"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{"e": {"a", "b"}},
	)

	mover := 0
	for !hg.IsTerminal() {
		d, err := a.SelectMove(context.Background(), hg)
		require.NoError(t, err)
		next, err := hg.Apply(d.Move)
		require.NoError(t, err)
		hg = next
		if hg.IsTerminal() {
			break
		}
		mover = 1 - mover
	}

	// The player who made the final move wins. Player 0 moved first from an
	// N-position, so player 0 must have made the last removal.
	assert.Equal(t, 0, mover)
}
