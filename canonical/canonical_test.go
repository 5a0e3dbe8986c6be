package canonical_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NelsonXunic/takeaway-hypergraphs/canonical"
	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

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

// relabel rewrites every vertex and hyperedge identifier through the given
// permutation tables, producing a structurally identical hypergraph.
func relabel(
	t *testing.T,
	hg *hypergraph.Hypergraph,
	vmap map[hypergraph.VertexID]hypergraph.VertexID,
	emap map[hypergraph.HyperedgeID]hypergraph.HyperedgeID,
) *hypergraph.Hypergraph {
	t.Helper()
	vertices := []hypergraph.VertexID{}
	for _, v := range hg.Vertices() {
		vertices = append(vertices, vmap[v])
	}
	edges := map[hypergraph.HyperedgeID][]hypergraph.VertexID{}
	for _, e := range hg.Hyperedges() {
		members := []hypergraph.VertexID{}
		for _, v := range hg.Incidence(e) {
			members = append(members, vmap[v])
		}
		edges[emap[e]] = members
	}
	return mustBuild(t, vertices, edges)
}

func TestSignatureInvariantUnderRelabeling(t *testing.T) {
	hg := mustBuild(t,
		[]hypergraph.VertexID{"a", "b", "c", "d"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"a", "b"},
			"e2": {"c", "d"},
			"f1": {"a", "c", "d"},
		},
	)

	relabeled := relabel(t, hg,
		map[hypergraph.VertexID]hypergraph.VertexID{
			"a": "w", "b": "x", "c": "y", "d": "z",
		},
		map[hypergraph.HyperedgeID]hypergraph.HyperedgeID{
			"e1": "p", "e2": "q", "f1": "r",
		},
	)

	assert.Equal(t, canonical.Sum(hg), canonical.Sum(relabeled))
	assert.Equal(t, canonical.Encode(hg), canonical.Encode(relabeled))
}

func TestSignatureInvariantUnderAllPermutations(t *testing.T) {
	// Exhaust all 3! vertex permutations of a small asymmetric structure.
	base := mustBuild(t,
		[]hypergraph.VertexID{"1", "2", "3"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"1", "2"},
			"e2": {"1", "2", "3"},
		},
	)
	want := canonical.Sum(base)

	names := []hypergraph.VertexID{"x", "y", "z"}
	perms := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for i, p := range perms {
		vmap := map[hypergraph.VertexID]hypergraph.VertexID{
			"1": names[p[0]], "2": names[p[1]], "3": names[p[2]],
		}
		emap := map[hypergraph.HyperedgeID]hypergraph.HyperedgeID{
			"e1": hypergraph.HyperedgeID(fmt.Sprintf("g%d", i)),
			"e2": hypergraph.HyperedgeID(fmt.Sprintf("h%d", i)),
		}
		assert.Equal(t, want, canonical.Sum(relabel(t, base, vmap, emap)),
			"permutation %v must not change the signature", p)
	}
}

func TestSignatureSeparatesStructures(t *testing.T) {
	triangle := mustBuild(t,
		[]hypergraph.VertexID{"a", "b", "c"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"a", "b"}, "e2": {"b", "c"}, "e3": {"a", "c"},
		},
	)
	path := mustBuild(t,
		[]hypergraph.VertexID{"a", "b", "c"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"a", "b"}, "e2": {"b", "c"},
		},
	)
	face := mustBuild(t,
		[]hypergraph.VertexID{"a", "b", "c"},
		map[hypergraph.HyperedgeID][]hypergraph.VertexID{
			"e1": {"a", "b", "c"},
		},
	)

	assert.NotEqual(t, canonical.Sum(triangle), canonical.Sum(path))
	assert.NotEqual(t, canonical.Sum(triangle), canonical.Sum(face))
	assert.NotEqual(t, canonical.Sum(path), canonical.Sum(face))
}

func TestEmptyAndIsolatedSignatures(t *testing.T) {
	empty := hypergraph.New()
	assert.Equal(t, canonical.Sum(empty), canonical.Sum(hypergraph.New()))

	single := mustBuild(t, []hypergraph.VertexID{"a"}, nil)
	other := mustBuild(t, []hypergraph.VertexID{"zz"}, nil)
	assert.Equal(t, canonical.Sum(single), canonical.Sum(other))
	assert.NotEqual(t, canonical.Sum(empty), canonical.Sum(single))
}
