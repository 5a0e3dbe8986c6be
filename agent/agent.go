// Package agent selects moves for an automated player on top of the exact
// solver. The agent plays perfectly: from a winning position it always picks
// a move that leaves the opponent in a losing position.
package agent

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
	"github.com/NelsonXunic/takeaway-hypergraphs/solver"
)

// ErrNoLegalMoves reports that the position is terminal and there is nothing
// to select.
var ErrNoLegalMoves = errors.New("no legal moves")

// Decision is a selected move together with whether it preserves a win for
// the player making it.
type Decision struct {
	Move hypergraph.Move
	// Winning reports that the move leaves the opponent in a losing
	// position. When the current position is already lost, no move can win
	// and the agent falls back to the first legal move with Winning false.
	Winning bool
}

// Agent selects moves by evaluating every successor position.
type Agent struct {
	logger *zap.Logger
	solver *solver.Solver
}

func NewAgent(logger *zap.Logger, s *solver.Solver) *Agent {
	return &Agent{
		logger: logger.Named("agent"),
		solver: s,
	}
}

// SelectMove picks the move to play from the given position. It returns
// ErrNoLegalMoves on a terminal position and propagates the solver's error
// when a successor cannot be evaluated within budget.
func (a *Agent) SelectMove(
	ctx context.Context,
	hg *hypergraph.Hypergraph,
) (Decision, error) {
	if hg == nil {
		return Decision{}, errors.New("select move: nil hypergraph")
	}

	moves := hg.LegalMoves()
	if len(moves) == 0 {
		return Decision{}, ErrNoLegalMoves
	}

	selectMoveTotal.Inc()

	for _, m := range moves {
		next, err := hg.Apply(m)
		if err != nil {
			return Decision{}, errors.Wrap(err, "select move")
		}

		out, err := a.solver.Evaluate(ctx, next)
		if err != nil {
			return Decision{}, errors.Wrap(err, "select move")
		}

		if out.Class == solver.PPosition {
			a.logger.Debug(
				"winning move selected",
				zap.Stringer("move", m),
			)
			return Decision{Move: m, Winning: true}, nil
		}
	}

	// Every successor wins for the opponent. The position is lost, so any
	// move is as good as another.
	a.logger.Debug(
		"no winning move, position is lost",
		zap.Stringer("move", moves[0]),
	)
	return Decision{Move: moves[0], Winning: false}, nil
}
