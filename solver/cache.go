package solver

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/NelsonXunic/takeaway-hypergraphs/canonical"
	"github.com/NelsonXunic/takeaway-hypergraphs/config"
	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

// entry is one memoized position. The canonical encoding guards against hash
// collisions on the signature; the representative hypergraph backs the exact
// confirmation under PolicyConfirm.
type entry struct {
	encoding []byte
	rep      *hypergraph.Hypergraph
	outcome  Outcome
}

// memoCache maps canonical signatures to solved outcomes. It is created with
// the solver session and discarded with it; entries survive across Evaluate
// calls on the same solver, which is what makes budget-exhausted retries
// cheaper the second time around.
//
// The underlying LRU is safe for concurrent use, so parallel component
// workers share the cache without extra locking. A signature whose entry
// fails confirmation is treated as a miss and recomputed, never returned
// stale.
type memoCache struct {
	policy config.CollisionPolicy
	lru    *lru.Cache[canonical.Signature, *entry]
}

func newMemoCache(
	size int,
	policy config.CollisionPolicy,
) (*memoCache, error) {
	cache, err := lru.New[canonical.Signature, *entry](size)
	if err != nil {
		return nil, errors.Wrap(err, "new memo cache")
	}
	return &memoCache{policy: policy, lru: cache}, nil
}

// lookup returns the memoized outcome for the position, if any. needGrundy
// rejects entries solved in win/loss-only mode so the caller recomputes and
// upgrades them.
func (c *memoCache) lookup(
	sig canonical.Signature,
	encoding []byte,
	hg *hypergraph.Hypergraph,
	needGrundy bool,
) (Outcome, bool) {
	e, ok := c.lru.Get(sig)
	if !ok {
		cacheLookupTotal.WithLabelValues("miss").Inc()
		return Outcome{}, false
	}

	if !bytes.Equal(e.encoding, encoding) {
		// Signature collision between structures with different canonical
		// encodings. Treat as a miss; the later store keeps one of the two.
		cacheLookupTotal.WithLabelValues("collision").Inc()
		return Outcome{}, false
	}

	if c.policy == config.PolicyConfirm {
		if !canonical.Isomorphic(hg, e.rep) {
			cacheLookupTotal.WithLabelValues("confirm_failed").Inc()
			return Outcome{}, false
		}
	}

	if needGrundy && !e.outcome.HasGrundy {
		cacheLookupTotal.WithLabelValues("grundy_miss").Inc()
		return Outcome{}, false
	}

	cacheLookupTotal.WithLabelValues("hit").Inc()
	return e.outcome, true
}

// store memoizes an outcome. An existing entry for the same structure is only
// replaced when the new outcome is at least as informative (a Grundy-bearing
// entry is never downgraded to a win/loss-only one).
func (c *memoCache) store(
	sig canonical.Signature,
	encoding []byte,
	hg *hypergraph.Hypergraph,
	out Outcome,
) {
	if existing, ok := c.lru.Get(sig); ok &&
		bytes.Equal(existing.encoding, encoding) &&
		existing.outcome.HasGrundy && !out.HasGrundy {
		return
	}

	var rep *hypergraph.Hypergraph
	if c.policy == config.PolicyConfirm {
		// The caller's root is only immutable for the duration of the solve;
		// keep an independent representative.
		rep = hg.Clone()
	}

	c.lru.Add(sig, &entry{encoding: encoding, rep: rep, outcome: out})
	cacheEntries.Set(float64(c.lru.Len()))
}

func (c *memoCache) len() int {
	return c.lru.Len()
}
