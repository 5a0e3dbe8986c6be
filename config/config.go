// Package config defines the caller-facing configuration surface of the game
// engine. The engine performs no file I/O of its own; callers decode the
// yaml (or build the structs directly) and hand them in.
package config

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// CollisionPolicy selects how the solver treats memo-cache signature matches.
type CollisionPolicy string

const (
	// PolicyConfirm treats a signature match as a hint: the cached entry is
	// used only after an exact incidence-structure comparison against the
	// entry's representative position confirms the match. A failed
	// confirmation counts as a cache miss.
	PolicyConfirm CollisionPolicy = "confirm"

	// PolicyAcceptRisk trusts canonical-encoding equality without the exact
	// comparison, accepting a small documented false-merge risk in exchange
	// for speed.
	PolicyAcceptRisk CollisionPolicy = "accept-risk"
)

// BudgetConfig bounds a single evaluation. Zero values mean unlimited.
type BudgetConfig struct {
	// MaxNodes is the maximum number of positions the search may enter.
	MaxNodes uint64 `yaml:"maxNodes"`
	// MaxDuration is the wall-clock limit for the search.
	MaxDuration time.Duration `yaml:"maxDuration"`
}

// SolverConfig configures a solver session.
type SolverConfig struct {
	// Budget bounds each Evaluate call. Exhausting it fails the evaluation
	// with an unsolved result; cache entries completed before exhaustion are
	// kept for later calls.
	Budget BudgetConfig `yaml:"budget"`
	// SkipGrundy restricts evaluation to win/loss where possible. Grundy
	// numbers are still computed where the Sprague-Grundy composition of
	// independent components requires them.
	SkipGrundy bool `yaml:"skipGrundy"`
	// CollisionPolicy selects the memo-cache confirmation behavior.
	CollisionPolicy CollisionPolicy `yaml:"collisionPolicy"`
	// CacheSize is the maximum number of memoized positions.
	CacheSize int `yaml:"cacheSize"`
	// Parallelism bounds the goroutines evaluating independent components
	// and moves across the whole search, not per expansion. 1 keeps the
	// search fully sequential.
	Parallelism int `yaml:"parallelism"`
}

// WithDefaults returns a copy of the SolverConfig with any missing fields set
// to their default values.
func (c SolverConfig) WithDefaults() SolverConfig {
	cpy := c
	if cpy.CollisionPolicy == "" {
		cpy.CollisionPolicy = PolicyConfirm
	}
	if cpy.CacheSize == 0 {
		cpy.CacheSize = 65536
	}
	if cpy.Parallelism == 0 {
		cpy.Parallelism = runtime.GOMAXPROCS(0)
	}
	return cpy
}

// Validate rejects configurations the solver cannot honor.
func (c SolverConfig) Validate() error {
	switch c.CollisionPolicy {
	case PolicyConfirm, PolicyAcceptRisk:
	default:
		return errors.Errorf(
			"unknown collision policy %q",
			c.CollisionPolicy,
		)
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must be non-negative")
	}
	if c.Parallelism < 1 {
		return errors.New("parallelism must be at least 1")
	}
	return nil
}
