package canonical

import (
	"sort"
	"strings"

	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

// Isomorphic performs an exact incidence-structure comparison: it decides
// whether a and b are the same hypergraph up to relabeling of vertex and
// hyperedge identifiers. This is the confirm-on-match fallback behind
// signature collisions: exponential in the worst case, but the refinement
// partition prunes the search to same-color candidates, which keeps the
// common case near-linear.
func Isomorphic(a, b *hypergraph.Hypergraph) bool {
	result := isomorphic(a, b)
	status := "mismatch"
	if result {
		status = "match"
	}
	isomorphismCheckTotal.WithLabelValues(status).Inc()
	return result
}

func isomorphic(a, b *hypergraph.Hypergraph) bool {
	if a.Order() != b.Order() || a.Size() != b.Size() {
		return false
	}
	if a.Order() == 0 {
		return a.Size() == b.Size()
	}

	aColors, _ := refine(a)
	bColors, _ := refine(b)

	// The refined class histograms must agree before any mapping can exist.
	if !sameColorHistogram(a, b, aColors, bColors) {
		return false
	}

	m := &matcher{
		a:       a,
		b:       b,
		aColors: aColors,
		bColors: bColors,
		mapping: make(map[hypergraph.VertexID]hypergraph.VertexID, a.Order()),
		used:    make(map[hypergraph.VertexID]struct{}, b.Order()),
	}

	// Match most-constrained vertices first: rare colors, then high degree.
	order := a.Vertices()
	classSize := map[int]int{}
	for _, c := range aColors {
		classSize[c]++
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := aColors[order[i]], aColors[order[j]]
		if classSize[ci] != classSize[cj] {
			return classSize[ci] < classSize[cj]
		}
		di := len(a.IncidentHyperedges(order[i]))
		dj := len(a.IncidentHyperedges(order[j]))
		if di != dj {
			return di > dj
		}
		return order[i] < order[j]
	})

	return m.match(order, 0)
}

type matcher struct {
	a, b    *hypergraph.Hypergraph
	aColors map[hypergraph.VertexID]int
	bColors map[hypergraph.VertexID]int
	mapping map[hypergraph.VertexID]hypergraph.VertexID
	used    map[hypergraph.VertexID]struct{}
}

func (m *matcher) match(order []hypergraph.VertexID, depth int) bool {
	if depth == len(order) {
		return m.edgesMatch()
	}

	v := order[depth]
	for _, w := range m.b.Vertices() {
		if _, taken := m.used[w]; taken {
			continue
		}
		if m.aColors[v] != m.bColors[w] {
			continue
		}
		if len(m.a.IncidentHyperedges(v)) != len(m.b.IncidentHyperedges(w)) {
			continue
		}

		m.mapping[v] = w
		m.used[w] = struct{}{}
		if m.match(order, depth+1) {
			return true
		}
		delete(m.mapping, v)
		delete(m.used, w)
	}
	return false
}

// edgesMatch verifies that the vertex mapping carries a's hyperedge multiset
// exactly onto b's.
func (m *matcher) edgesMatch() bool {
	counts := make(map[string]int, m.b.Size())
	for _, e := range m.b.Hyperedges() {
		counts[incidenceKey(m.b.Incidence(e))]++
	}

	for _, e := range m.a.Hyperedges() {
		mapped := make([]hypergraph.VertexID, 0, len(m.a.Incidence(e)))
		for _, v := range m.a.Incidence(e) {
			mapped = append(mapped, m.mapping[v])
		}
		key := incidenceKey(mapped)
		if counts[key] == 0 {
			return false
		}
		counts[key]--
	}
	return true
}

func incidenceKey(members []hypergraph.VertexID) string {
	ids := make([]string, 0, len(members))
	for _, v := range members {
		ids = append(ids, string(v))
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

func sameColorHistogram(
	a, b *hypergraph.Hypergraph,
	aColors map[hypergraph.VertexID]int,
	bColors map[hypergraph.VertexID]int,
) bool {
	histA := map[int]int{}
	for _, v := range a.Vertices() {
		histA[aColors[v]]++
	}
	histB := map[int]int{}
	for _, v := range b.Vertices() {
		histB[bColors[v]]++
	}
	if len(histA) != len(histB) {
		return false
	}
	for c, n := range histA {
		if histB[c] != n {
			return false
		}
	}
	return true
}
