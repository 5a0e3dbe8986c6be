package hypergraph

import (
	"sort"

	"github.com/pkg/errors"
)

// VertexID is an opaque vertex identifier, unique within a Hypergraph.
type VertexID string

// HyperedgeID is an opaque hyperedge identifier, unique within a Hypergraph.
type HyperedgeID string

var ErrInvalidHypergraph = errors.New("invalid hypergraph")
var ErrInvalidMove = errors.New("invalid move")

// Hypergraph is the game state: a vertex set and a hyperedge set, where each
// hyperedge is a non-empty subset of the vertex set. A Hypergraph owns its
// sets exclusively; moves never mutate a Hypergraph in place, they produce a
// new one via Apply. The empty-vertex-set hypergraph is the unique terminal
// position.
type Hypergraph struct {
	vertices   map[VertexID]struct{}
	hyperedges map[HyperedgeID]map[VertexID]struct{}
}

// New creates an empty hypergraph.
func New() *Hypergraph {
	return &Hypergraph{
		vertices:   make(map[VertexID]struct{}),
		hyperedges: make(map[HyperedgeID]map[VertexID]struct{}),
	}
}

// FromSets builds a hypergraph from an explicit vertex-id set and a mapping
// from hyperedge-id to vertex-id subset, validating every invariant. This is
// the entry point for callers supplying positions from outside the engine.
func FromSets(
	vertices []VertexID,
	hyperedges map[HyperedgeID][]VertexID,
) (*Hypergraph, error) {
	hg := New()
	for _, v := range vertices {
		if err := hg.AddVertex(v); err != nil {
			return nil, errors.Wrap(err, "from sets")
		}
	}

	// Insert in sorted order so validation errors are deterministic.
	ids := make([]HyperedgeID, 0, len(hyperedges))
	for id := range hyperedges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := hg.AddHyperedge(id, hyperedges[id]...); err != nil {
			return nil, errors.Wrap(err, "from sets")
		}
	}
	return hg, nil
}

// AddVertex adds a vertex. Adding a duplicate vertex is invalid.
func (hg *Hypergraph) AddVertex(v VertexID) error {
	if v == "" {
		return errors.Wrap(ErrInvalidHypergraph, "empty vertex id")
	}
	if _, ok := hg.vertices[v]; ok {
		return errors.Wrapf(ErrInvalidHypergraph, "duplicate vertex %q", v)
	}

	hg.vertices[v] = struct{}{}
	return nil
}

// AddHyperedge adds a hyperedge over the given member vertices. The incidence
// set must be non-empty, free of duplicates, and every member must already be
// present in the vertex set.
func (hg *Hypergraph) AddHyperedge(
	id HyperedgeID,
	members ...VertexID,
) error {
	if id == "" {
		return errors.Wrap(ErrInvalidHypergraph, "empty hyperedge id")
	}
	if _, ok := hg.hyperedges[id]; ok {
		return errors.Wrapf(ErrInvalidHypergraph, "duplicate hyperedge %q", id)
	}
	if len(members) == 0 {
		return errors.Wrapf(
			ErrInvalidHypergraph,
			"hyperedge %q has empty incidence set",
			id,
		)
	}

	incidence := make(map[VertexID]struct{}, len(members))
	for _, v := range members {
		if _, ok := hg.vertices[v]; !ok {
			return errors.Wrapf(
				ErrInvalidHypergraph,
				"hyperedge %q references absent vertex %q",
				id,
				v,
			)
		}
		if _, ok := incidence[v]; ok {
			return errors.Wrapf(
				ErrInvalidHypergraph,
				"hyperedge %q repeats vertex %q",
				id,
				v,
			)
		}
		incidence[v] = struct{}{}
	}

	hg.hyperedges[id] = incidence
	return nil
}

// AddEdge adds a hyperedge connecting exactly two distinct vertices. Plain
// edges are just two-member hyperedges here; this constructor enforces the
// arity.
func (hg *Hypergraph) AddEdge(id HyperedgeID, a, b VertexID) error {
	if a == b {
		return errors.Wrapf(
			ErrInvalidHypergraph,
			"edge %q must connect two distinct vertices",
			id,
		)
	}
	return hg.AddHyperedge(id, a, b)
}

// Validate re-checks every structural invariant. Hypergraphs built through
// the constructors are always valid; Validate guards positions assembled by
// external collaborators.
func (hg *Hypergraph) Validate() error {
	if hg == nil || hg.vertices == nil || hg.hyperedges == nil {
		return errors.Wrap(ErrInvalidHypergraph, "nil hypergraph")
	}

	for id, incidence := range hg.hyperedges {
		if len(incidence) == 0 {
			return errors.Wrapf(
				ErrInvalidHypergraph,
				"hyperedge %q has empty incidence set",
				id,
			)
		}
		for v := range incidence {
			if _, ok := hg.vertices[v]; !ok {
				return errors.Wrapf(
					ErrInvalidHypergraph,
					"hyperedge %q references absent vertex %q",
					id,
					v,
				)
			}
		}
	}
	return nil
}

// Clone returns an independent deep copy.
func (hg *Hypergraph) Clone() *Hypergraph {
	out := &Hypergraph{
		vertices:   make(map[VertexID]struct{}, len(hg.vertices)),
		hyperedges: make(map[HyperedgeID]map[VertexID]struct{}, len(hg.hyperedges)),
	}
	for v := range hg.vertices {
		out.vertices[v] = struct{}{}
	}
	for id, incidence := range hg.hyperedges {
		cpy := make(map[VertexID]struct{}, len(incidence))
		for v := range incidence {
			cpy[v] = struct{}{}
		}
		out.hyperedges[id] = cpy
	}
	return out
}

// IsTerminal reports whether the position has no moves left, i.e. the vertex
// set is empty.
func (hg *Hypergraph) IsTerminal() bool {
	return len(hg.vertices) == 0
}

// Order returns the number of vertices.
func (hg *Hypergraph) Order() int {
	return len(hg.vertices)
}

// Size returns the number of hyperedges.
func (hg *Hypergraph) Size() int {
	return len(hg.hyperedges)
}

// HasVertex reports whether v is present.
func (hg *Hypergraph) HasVertex(v VertexID) bool {
	_, ok := hg.vertices[v]
	return ok
}

// HasHyperedge reports whether e is present.
func (hg *Hypergraph) HasHyperedge(e HyperedgeID) bool {
	_, ok := hg.hyperedges[e]
	return ok
}

// Vertices returns the vertex ids in sorted order.
func (hg *Hypergraph) Vertices() []VertexID {
	out := make([]VertexID, 0, len(hg.vertices))
	for v := range hg.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Hyperedges returns the hyperedge ids in sorted order.
func (hg *Hypergraph) Hyperedges() []HyperedgeID {
	out := make([]HyperedgeID, 0, len(hg.hyperedges))
	for e := range hg.hyperedges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Incidence returns the member vertices of hyperedge e in sorted order, or
// nil if e is absent.
func (hg *Hypergraph) Incidence(e HyperedgeID) []VertexID {
	incidence, ok := hg.hyperedges[e]
	if !ok {
		return nil
	}

	out := make([]VertexID, 0, len(incidence))
	for v := range incidence {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IncidentHyperedges returns the ids of hyperedges containing v, in sorted
// order.
func (hg *Hypergraph) IncidentHyperedges(v VertexID) []HyperedgeID {
	out := []HyperedgeID{}
	for e, incidence := range hg.hyperedges {
		if _, ok := incidence[v]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
