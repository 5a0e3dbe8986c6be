// Package canonical computes isomorphism-invariant signatures of hypergraph
// positions. The solver uses signatures as memoization keys so that
// equivalent subgames collapse to a single cache entry regardless of how
// their vertices and hyperedges are labeled.
//
// The signature is derived by iterative color refinement: vertices start
// colored by their incidence profile, hyperedges take the multiset of their
// member vertex colors, vertices take the multiset of their incident
// hyperedge colors, and the exchange repeats until the partition stops
// splitting. The refined structure is serialized label-free and hashed with
// BLAKE3-256.
//
// Refinement is a heuristic approximation of full canonicalization:
// relabelings of the same structure always receive equal signatures, but
// distinct structures with identical refined partitions can collide. The
// exact check in Isomorphic is the safety net for callers that cannot accept
// a false merge.
package canonical

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"lukechampine.com/blake3"

	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

// Signature is an isomorphism-invariant fingerprint of a hypergraph. Equal
// structures (up to relabeling) always produce equal signatures; unequal
// structures produce distinct signatures with overwhelming probability.
type Signature [32]byte

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// Sum computes the signature of a hypergraph.
func Sum(hg *hypergraph.Hypergraph) Signature {
	return blake3.Sum256(Encode(hg))
}

// SumEncoded hashes an encoding previously produced by Encode. Callers that
// need both the encoding and its signature avoid refining twice.
func SumEncoded(encoding []byte) Signature {
	return blake3.Sum256(encoding)
}

// Encode serializes a hypergraph into its canonical, label-free byte
// encoding. Two hypergraphs related by any relabeling of vertex and hyperedge
// identifiers encode identically. The encoding is the hash preimage of Sum
// and doubles as a cheap first-stage equality check on signature collisions.
func Encode(hg *hypergraph.Hypergraph) []byte {
	timer := prometheus.NewTimer(encodeDuration)
	defer timer.ObserveDuration()

	vertexColors, edgeColors := refine(hg)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "v=%d;e=%d;", hg.Order(), hg.Size())

	colors := make([]int, 0, hg.Order())
	for _, v := range hg.Vertices() {
		colors = append(colors, vertexColors[v])
	}
	sort.Ints(colors)
	buf.WriteString("V:")
	for _, c := range colors {
		fmt.Fprintf(&buf, "%d,", c)
	}

	// Each hyperedge becomes the sorted list of its member vertex colors plus
	// its own refined color; the edge encodings are then sorted so edge labels
	// cannot leak into the result.
	encodings := make([]string, 0, hg.Size())
	for _, e := range hg.Hyperedges() {
		members := hg.Incidence(e)
		memberColors := make([]int, 0, len(members))
		for _, v := range members {
			memberColors = append(memberColors, vertexColors[v])
		}
		sort.Ints(memberColors)

		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d|", edgeColors[e])
		for _, c := range memberColors {
			fmt.Fprintf(&sb, "%d,", c)
		}
		sb.WriteString("]")
		encodings = append(encodings, sb.String())
	}
	sort.Strings(encodings)

	buf.WriteString("E:")
	for _, enc := range encodings {
		buf.WriteString(enc)
	}
	return buf.Bytes()
}

// refine runs color refinement to a fixed point and returns the final vertex
// and hyperedge colors as dense integers. Colors are re-indexed every round
// by lexicographic order of the color keys, which makes the integer values
// themselves label-independent.
func refine(hg *hypergraph.Hypergraph) (
	map[hypergraph.VertexID]int,
	map[hypergraph.HyperedgeID]int,
) {
	vertices := hg.Vertices()
	edges := hg.Hyperedges()

	// Initial vertex color: the multiset of incident hyperedge sizes. This
	// folds both the vertex degree and the arity of its hyperedges into the
	// starting partition.
	keys := make(map[hypergraph.VertexID]string, len(vertices))
	for _, v := range vertices {
		sizes := []int{}
		for _, e := range hg.IncidentHyperedges(v) {
			sizes = append(sizes, len(hg.Incidence(e)))
		}
		sort.Ints(sizes)
		keys[v] = fmt.Sprintf("d%v", sizes)
	}
	vertexColors := indexVertexKeys(vertices, keys)

	var edgeColors map[hypergraph.HyperedgeID]int

	// Each round strictly splits at least one class or reaches the fixed
	// point, so order+size rounds always suffice.
	for round := 0; round <= len(vertices)+len(edges); round++ {
		edgeKeys := make(map[hypergraph.HyperedgeID]string, len(edges))
		for _, e := range edges {
			memberColors := []int{}
			for _, v := range hg.Incidence(e) {
				memberColors = append(memberColors, vertexColors[v])
			}
			sort.Ints(memberColors)
			edgeKeys[e] = fmt.Sprintf("s%d:%v", len(memberColors), memberColors)
		}
		edgeColors = indexEdgeKeys(edges, edgeKeys)

		nextKeys := make(map[hypergraph.VertexID]string, len(vertices))
		for _, v := range vertices {
			incident := []int{}
			for _, e := range hg.IncidentHyperedges(v) {
				incident = append(incident, edgeColors[e])
			}
			sort.Ints(incident)
			nextKeys[v] = fmt.Sprintf("c%d:%v", vertexColors[v], incident)
		}
		next := indexVertexKeys(vertices, nextKeys)

		if stableVertexColoring(vertices, vertexColors, next) {
			refineRounds.Observe(float64(round))
			return next, edgeColors
		}
		vertexColors = next
	}

	refineRounds.Observe(float64(len(vertices) + len(edges)))
	return vertexColors, edgeColors
}

func indexVertexKeys(
	vertices []hypergraph.VertexID,
	keys map[hypergraph.VertexID]string,
) map[hypergraph.VertexID]int {
	distinct := make([]string, 0, len(keys))
	seen := map[string]struct{}{}
	for _, k := range keys {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			distinct = append(distinct, k)
		}
	}
	sort.Strings(distinct)

	index := make(map[string]int, len(distinct))
	for i, k := range distinct {
		index[k] = i
	}

	out := make(map[hypergraph.VertexID]int, len(vertices))
	for _, v := range vertices {
		out[v] = index[keys[v]]
	}
	return out
}

func indexEdgeKeys(
	edges []hypergraph.HyperedgeID,
	keys map[hypergraph.HyperedgeID]string,
) map[hypergraph.HyperedgeID]int {
	distinct := make([]string, 0, len(keys))
	seen := map[string]struct{}{}
	for _, k := range keys {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			distinct = append(distinct, k)
		}
	}
	sort.Strings(distinct)

	index := make(map[string]int, len(distinct))
	for i, k := range distinct {
		index[k] = i
	}

	out := make(map[hypergraph.HyperedgeID]int, len(edges))
	for _, e := range edges {
		out[e] = index[keys[e]]
	}
	return out
}

func stableVertexColoring(
	vertices []hypergraph.VertexID,
	prev, next map[hypergraph.VertexID]int,
) bool {
	// Stable means the partition stopped splitting: the old and new colorings
	// induce the same classes, even if the class indexes permuted.
	forward := map[int]int{}
	backward := map[int]int{}
	for _, v := range vertices {
		p, n := prev[v], next[v]
		if mapped, ok := forward[p]; ok && mapped != n {
			return false
		}
		if mapped, ok := backward[n]; ok && mapped != p {
			return false
		}
		forward[p] = n
		backward[n] = p
	}
	return true
}
