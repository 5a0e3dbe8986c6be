// Package solver evaluates take-away positions exactly. A position is a
// hypergraph; the player to move removes a vertex (dropping hyperedges it
// empties) or a hyperedge, and the player left without a move loses.
//
// Evaluation follows Sprague-Grundy theory: the Grundy number of a position
// is the minimum excludant of its successors' Grundy numbers, disconnected
// components are solved independently and composed by XOR, and a position is
// a first-player win exactly when its Grundy number is non-zero. Solved
// positions are memoized under their canonical signature so equivalent
// subgames are expanded once.
package solver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/NelsonXunic/takeaway-hypergraphs/canonical"
	"github.com/NelsonXunic/takeaway-hypergraphs/config"
	"github.com/NelsonXunic/takeaway-hypergraphs/decompose"
	"github.com/NelsonXunic/takeaway-hypergraphs/hypergraph"
)

// ErrUnsolved reports that an evaluation ran out of budget before reaching a
// verdict. Memo entries completed before exhaustion are kept, so retrying on
// the same solver resumes from where the failed call left off.
var ErrUnsolved = errors.New("budget exhausted before position was solved")

// Class is the game-theoretic classification of a position for the player to
// move.
type Class int

const (
	// PPosition marks a previous-player win: the player to move loses under
	// optimal play.
	PPosition Class = iota
	// NPosition marks a next-player win: the player to move wins under
	// optimal play.
	NPosition
)

func (c Class) String() string {
	switch c {
	case PPosition:
		return "P"
	case NPosition:
		return "N"
	default:
		return "unknown"
	}
}

// Outcome is the verdict for a position. Grundy is only meaningful when
// HasGrundy is set; in win/loss-only mode the solver may classify an
// N-position without computing its exact Grundy number. P-positions always
// carry Grundy 0.
type Outcome struct {
	Class     Class
	Grundy    int
	HasGrundy bool
}

// Solver evaluates positions against a shared memo cache. It is safe for
// concurrent use.
type Solver struct {
	logger *zap.Logger
	config config.SolverConfig
	cache  *memoCache
}

// NewSolver creates a solver session. Missing configuration fields are filled
// with defaults before validation.
func NewSolver(
	logger *zap.Logger,
	cfg config.SolverConfig,
) (*Solver, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new solver")
	}

	cache, err := newMemoCache(cfg.CacheSize, cfg.CollisionPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "new solver")
	}

	return &Solver{
		logger: logger.Named("solver"),
		config: cfg,
		cache:  cache,
	}, nil
}

// Evaluate solves the position. It returns ErrUnsolved when the configured
// budget runs out first; the context cancels the search early with the
// context's error.
func (s *Solver) Evaluate(
	ctx context.Context,
	hg *hypergraph.Hypergraph,
) (Outcome, error) {
	if hg == nil {
		return Outcome{}, errors.New("evaluate: nil hypergraph")
	}
	if err := hg.Validate(); err != nil {
		return Outcome{}, errors.Wrap(err, "evaluate")
	}

	timer := prometheus.NewTimer(evaluateDuration)
	defer timer.ObserveDuration()

	r := &search{
		solver: s,
		// The calling goroutine is itself a worker, so Parallelism-1 tokens
		// bound the extra ones. Zero tokens keeps the search sequential.
		workers: semaphore.NewWeighted(int64(s.config.Parallelism - 1)),
	}
	if d := s.config.Budget.MaxDuration; d != 0 {
		r.deadline = time.Now().Add(d)
	}

	out, err := r.evaluateSum(ctx, hg, !s.config.SkipGrundy)
	switch {
	case err == nil:
		evaluateTotal.WithLabelValues("solved").Inc()
		s.logger.Debug(
			"position evaluated",
			zap.Stringer("class", out.Class),
			zap.Int("grundy", out.Grundy),
			zap.Bool("hasGrundy", out.HasGrundy),
			zap.Uint64("nodes", r.nodes.Load()),
			zap.Int("cacheEntries", s.cache.len()),
		)
	case errors.Is(err, ErrUnsolved):
		evaluateTotal.WithLabelValues("unsolved").Inc()
		s.logger.Debug(
			"evaluation budget exhausted",
			zap.Uint64("nodes", r.nodes.Load()),
		)
	default:
		evaluateTotal.WithLabelValues("error").Inc()
	}
	return out, err
}

// search carries the per-call state: the node counter and deadline enforcing
// the budget, a singleflight group collapsing concurrent expansions of the
// same position within this call, and a semaphore bounding the extra worker
// goroutines across the whole search. The memo cache outlives the search.
type search struct {
	solver   *Solver
	deadline time.Time
	nodes    atomic.Uint64
	group    singleflight.Group
	workers  *semaphore.Weighted
}

// enter charges one node against the budget.
func (r *search) enter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "search")
	}

	n := r.nodes.Add(1)
	nodesExpandedTotal.Inc()

	if max := r.solver.config.Budget.MaxNodes; max != 0 && n > max {
		return errors.Wrap(ErrUnsolved, "node budget")
	}
	if !r.deadline.IsZero() && time.Now().After(r.deadline) {
		return errors.Wrap(ErrUnsolved, "time budget")
	}
	return nil
}

// evaluateSum splits the position into connected components and composes the
// component verdicts. A multi-component sum always needs exact Grundy numbers
// because XOR composition has no win/loss shortcut.
func (r *search) evaluateSum(
	ctx context.Context,
	hg *hypergraph.Hypergraph,
	needGrundy bool,
) (Outcome, error) {
	comps := decompose.Components(hg)
	switch len(comps) {
	case 0:
		return Outcome{Class: PPosition, HasGrundy: true}, nil
	case 1:
		return r.evaluateComponent(ctx, comps[0], needGrundy)
	}

	grundies, err := r.evaluateGrundies(ctx, comps)
	if err != nil {
		return Outcome{}, err
	}

	grundy := 0
	for _, g := range grundies {
		grundy ^= g
	}
	return outcomeForGrundy(grundy), nil
}

// evaluateGrundies computes the Grundy number of every position, spilling
// work onto an extra goroutine when a worker token is free and evaluating
// inline otherwise. The non-blocking acquire keeps the total number of
// evaluating goroutines bounded by Parallelism at every recursion depth, and
// rules out the pool-starvation deadlock a blocking acquire would invite.
func (r *search) evaluateGrundies(
	ctx context.Context,
	positions []*hypergraph.Hypergraph,
) ([]int, error) {
	grundies := make([]int, len(positions))
	eg, gctx := errgroup.WithContext(ctx)

	var inlineErr error
	for i, pos := range positions {
		if r.workers.TryAcquire(1) {
			eg.Go(func() error {
				defer r.workers.Release(1)
				out, err := r.evaluateSum(gctx, pos, true)
				if err != nil {
					return err
				}
				grundies[i] = out.Grundy
				return nil
			})
			continue
		}

		out, err := r.evaluateSum(gctx, pos, true)
		if err != nil {
			inlineErr = err
			break
		}
		grundies[i] = out.Grundy
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if inlineErr != nil {
		return nil, inlineErr
	}
	return grundies, nil
}

// evaluateComponent resolves one connected component through the memo cache.
func (r *search) evaluateComponent(
	ctx context.Context,
	hg *hypergraph.Hypergraph,
	needGrundy bool,
) (Outcome, error) {
	if hg.IsTerminal() {
		return Outcome{Class: PPosition, HasGrundy: true}, nil
	}

	encoding := canonical.Encode(hg)
	sig := canonical.SumEncoded(encoding)

	if out, ok := r.solver.cache.lookup(sig, encoding, hg, needGrundy); ok {
		return out, nil
	}

	// Win/loss-only and Grundy expansions of the same position are distinct
	// computations, so they fly under distinct keys.
	key := sig.String()
	if needGrundy {
		key += "/g"
	} else {
		key += "/c"
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		out, err := r.expand(ctx, hg, needGrundy)
		if err != nil {
			return nil, err
		}
		r.solver.cache.store(sig, encoding, hg, out)
		return out, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return v.(Outcome), nil
}

// expand evaluates a non-terminal component from its successors.
func (r *search) expand(
	ctx context.Context,
	hg *hypergraph.Hypergraph,
	needGrundy bool,
) (Outcome, error) {
	if err := r.enter(ctx); err != nil {
		return Outcome{}, err
	}

	moves := hg.LegalMoves()

	if !needGrundy {
		// Win/loss only: winning iff some successor loses. When every
		// successor wins, no successor has Grundy 0, so the mex is 0 and the
		// exact Grundy number comes for free.
		for _, m := range moves {
			next, err := hg.Apply(m)
			if err != nil {
				return Outcome{}, errors.Wrap(err, "expand")
			}
			out, err := r.evaluateSum(ctx, next, false)
			if err != nil {
				return Outcome{}, err
			}
			if out.Class == PPosition {
				return Outcome{Class: NPosition}, nil
			}
		}
		return Outcome{Class: PPosition, HasGrundy: true}, nil
	}

	successors := make([]*hypergraph.Hypergraph, 0, len(moves))
	for _, m := range moves {
		next, err := hg.Apply(m)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "expand")
		}
		successors = append(successors, next)
	}

	grundies, err := r.evaluateGrundies(ctx, successors)
	if err != nil {
		return Outcome{}, err
	}
	return outcomeForGrundy(Mex(grundies)), nil
}

func outcomeForGrundy(grundy int) Outcome {
	class := NPosition
	if grundy == 0 {
		class = PPosition
	}
	return Outcome{Class: class, Grundy: grundy, HasGrundy: true}
}
