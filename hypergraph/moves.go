package hypergraph

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// MoveKind discriminates the two legal move variants.
type MoveKind string

const (
	RemoveVertexMove    MoveKind = "remove_vertex"
	RemoveHyperedgeMove MoveKind = "remove_hyperedge"
)

// Move is a tagged variant: either the removal of a vertex or the removal of
// an entire hyperedge. A Move references identifiers of the hypergraph it was
// generated from and is not reusable across instances.
type Move struct {
	Kind      MoveKind
	Vertex    VertexID
	Hyperedge HyperedgeID
}

// RemoveVertex constructs a vertex-removal move.
func RemoveVertex(v VertexID) Move {
	return Move{Kind: RemoveVertexMove, Vertex: v}
}

// RemoveHyperedge constructs a hyperedge-removal move.
func RemoveHyperedge(e HyperedgeID) Move {
	return Move{Kind: RemoveHyperedgeMove, Hyperedge: e}
}

func (m Move) String() string {
	switch m.Kind {
	case RemoveVertexMove:
		return fmt.Sprintf("remove vertex %q", m.Vertex)
	case RemoveHyperedgeMove:
		return fmt.Sprintf("remove hyperedge %q", m.Hyperedge)
	default:
		return "invalid move"
	}
}

// LegalMoves returns the exhaustive set of legal moves: one RemoveVertex per
// present vertex and one RemoveHyperedge per present hyperedge. The order is
// deterministic (vertex moves in vertex order, then hyperedge moves in
// hyperedge order) but carries no game meaning. A terminal position has no
// legal moves.
func (hg *Hypergraph) LegalMoves() []Move {
	if hg.IsTerminal() {
		return nil
	}

	moves := make([]Move, 0, len(hg.vertices)+len(hg.hyperedges))
	for _, v := range hg.Vertices() {
		moves = append(moves, RemoveVertex(v))
	}
	for _, e := range hg.Hyperedges() {
		moves = append(moves, RemoveHyperedge(e))
	}
	return moves
}

// Apply plays a move and returns the resulting hypergraph as a new value; the
// receiver is never modified.
//
// Removing a vertex deletes it from the vertex set and from the incidence set
// of every hyperedge containing it; hyperedges whose incidence sets become
// empty are deleted. The cascade is non-recursive: removing one vertex never
// removes another. Removing a hyperedge deletes only the hyperedge; its
// vertices remain.
func (hg *Hypergraph) Apply(m Move) (*Hypergraph, error) {
	timer := prometheus.NewTimer(
		applyMoveDuration.WithLabelValues(string(m.Kind)),
	)
	defer timer.ObserveDuration()

	switch m.Kind {
	case RemoveVertexMove:
		if !hg.HasVertex(m.Vertex) {
			applyMoveTotal.WithLabelValues(string(m.Kind), "error").Inc()
			return nil, errors.Wrapf(
				ErrInvalidMove,
				"vertex %q not in hypergraph",
				m.Vertex,
			)
		}

		out := hg.Clone()
		delete(out.vertices, m.Vertex)
		for e, incidence := range out.hyperedges {
			if _, ok := incidence[m.Vertex]; !ok {
				continue
			}
			delete(incidence, m.Vertex)
			if len(incidence) == 0 {
				delete(out.hyperedges, e)
			}
		}
		applyMoveTotal.WithLabelValues(string(m.Kind), "success").Inc()
		return out, nil

	case RemoveHyperedgeMove:
		if !hg.HasHyperedge(m.Hyperedge) {
			applyMoveTotal.WithLabelValues(string(m.Kind), "error").Inc()
			return nil, errors.Wrapf(
				ErrInvalidMove,
				"hyperedge %q not in hypergraph",
				m.Hyperedge,
			)
		}

		out := hg.Clone()
		delete(out.hyperedges, m.Hyperedge)
		applyMoveTotal.WithLabelValues(string(m.Kind), "success").Inc()
		return out, nil

	default:
		applyMoveTotal.WithLabelValues("unknown", "error").Inc()
		return nil, errors.Wrapf(ErrInvalidMove, "unknown move kind %q", m.Kind)
	}
}
