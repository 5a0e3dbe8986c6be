// Package game runs take-away matches: two players alternately remove a
// vertex or a hyperedge, and the player who cannot move loses. Match tracks
// the position history so moves can be undone and replayed.
package game

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

var (
	// ErrMatchOver reports a move attempted after the match ended.
	ErrMatchOver = errors.New("match is over")
	// ErrNothingToUndo reports an undo on the starting position.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Player identifies one of the two players. Player1 moves first.
type Player int

const (
	Player1 Player = iota + 1
	Player2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "unknown"
	}
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Match is a take-away game in progress. It is not safe for concurrent use.
type Match struct {
	logger    *zap.Logger
	current   *hypergraph.Hypergraph
	positions []*hypergraph.Hypergraph
	moves     []hypergraph.Move
	toMove    Player
}

// NewMatch starts a match from the given position. The position is cloned, so
// later mutations of the caller's hypergraph do not affect the match.
func NewMatch(
	logger *zap.Logger,
	start *hypergraph.Hypergraph,
) (*Match, error) {
	if start == nil {
		return nil, errors.New("new match: nil hypergraph")
	}
	if err := start.Validate(); err != nil {
		return nil, errors.Wrap(err, "new match")
	}

	return &Match{
		logger:  logger.Named("game"),
		current: start.Clone(),
		toMove:  Player1,
	}, nil
}

// Position returns a copy of the current position.
func (m *Match) Position() *hypergraph.Hypergraph {
	return m.current.Clone()
}

// ToMove returns the player whose turn it is. Meaningless once the match is
// over.
func (m *Match) ToMove() Player {
	return m.toMove
}

// Moves returns the moves played so far, oldest first.
func (m *Match) Moves() []hypergraph.Move {
	out := make([]hypergraph.Move, len(m.moves))
	copy(out, m.moves)
	return out
}

// Over reports whether the match has ended.
func (m *Match) Over() bool {
	return m.current.IsTerminal()
}

// Winner returns the winning player once the match is over. Under normal
// play the player who made the last removal wins.
func (m *Match) Winner() (Player, bool) {
	if !m.Over() {
		return 0, false
	}
	return m.toMove.Opponent(), true
}

// Play applies a move for the player to move.
func (m *Match) Play(mv hypergraph.Move) error {
	if m.Over() {
		return ErrMatchOver
	}

	next, err := m.current.Apply(mv)
	if err != nil {
		return errors.Wrap(err, "play")
	}

	m.positions = append(m.positions, m.current)
	m.moves = append(m.moves, mv)
	m.current = next
	m.toMove = m.toMove.Opponent()

	m.logger.Debug(
		"move played",
		zap.Stringer("move", mv),
		zap.Stringer("next", m.toMove),
		zap.Int("order", m.current.Order()),
		zap.Int("size", m.current.Size()),
	)
	return nil
}

// Undo reverts the most recent move, restoring the prior position and turn.
func (m *Match) Undo() error {
	if len(m.positions) == 0 {
		return ErrNothingToUndo
	}

	m.current = m.positions[len(m.positions)-1]
	m.positions = m.positions[:len(m.positions)-1]
	m.moves = m.moves[:len(m.moves)-1]
	m.toMove = m.toMove.Opponent()
	return nil
}
