// Package decompose splits a hypergraph into independent connected
// components. Two vertices are connected when they co-occur in some
// hyperedge; a hyperedge connects all of its members transitively, so every
// hyperedge falls entirely inside exactly one component. Independent
// components are independent subgames, which lets the solver combine their
// Grundy numbers with the Sprague-Grundy XOR rule instead of searching the
// joint state space.
package decompose

import (
	"sort"

	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

// Components partitions hg into its connected components, each returned as an
// independent hypergraph over its vertices and the hyperedges contained in
// them. Isolated vertices become singleton components. The result is ordered
// by the smallest vertex id of each component, so decomposition is
// deterministic. A terminal hypergraph has no components.
func Components(hg *hypergraph.Hypergraph) []*hypergraph.Hypergraph {
	vertices := hg.Vertices()
	if len(vertices) == 0 {
		return nil
	}

	uf := newUnionFind(vertices)
	for _, e := range hg.Hyperedges() {
		members := hg.Incidence(e)
		for i := 1; i < len(members); i++ {
			uf.union(members[0], members[i])
		}
	}

	groups := map[hypergraph.VertexID][]hypergraph.VertexID{}
	for _, v := range vertices {
		root := uf.find(v)
		groups[root] = append(groups[root], v)
	}

	roots := make([]hypergraph.VertexID, 0, len(groups))
	for root := range groups {
		// Vertices() is sorted, so the first member of each group is its
		// smallest vertex id; order components by it.
		roots = append(roots, groups[root][0])
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	byFirst := map[hypergraph.VertexID][]hypergraph.VertexID{}
	for _, members := range groups {
		byFirst[members[0]] = members
	}

	out := make([]*hypergraph.Hypergraph, 0, len(roots))
	for _, first := range roots {
		members := byFirst[first]
		component := hypergraph.New()
		for _, v := range members {
			// Members are unique vertices of a valid hypergraph; AddVertex
			// cannot fail here.
			_ = component.AddVertex(v)
		}
		out = append(out, component)
	}

	// Assign each hyperedge to the component holding its first member. All
	// members share one component by construction.
	index := map[hypergraph.VertexID]*hypergraph.Hypergraph{}
	for i, first := range roots {
		for _, v := range byFirst[first] {
			index[v] = out[i]
		}
	}
	for _, e := range hg.Hyperedges() {
		members := hg.Incidence(e)
		_ = index[members[0]].AddHyperedge(e, members...)
	}

	return out
}

type unionFind struct {
	parent map[hypergraph.VertexID]hypergraph.VertexID
	rank   map[hypergraph.VertexID]int
}

func newUnionFind(vertices []hypergraph.VertexID) *unionFind {
	uf := &unionFind{
		parent: make(map[hypergraph.VertexID]hypergraph.VertexID, len(vertices)),
		rank:   make(map[hypergraph.VertexID]int, len(vertices)),
	}
	for _, v := range vertices {
		uf.parent[v] = v
	}
	return uf
}

func (uf *unionFind) find(v hypergraph.VertexID) hypergraph.VertexID {
	for uf.parent[v] != v {
		uf.parent[v] = uf.parent[uf.parent[v]]
		v = uf.parent[v]
	}
	return v
}

func (uf *unionFind) union(a, b hypergraph.VertexID) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
