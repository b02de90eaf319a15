package value

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
)

// TuplePool is an allocator/reuse hint for freshly built tuples, keyed by
// their hash. Correctness never depends on a pool being present or on its
// hit rate; it only avoids re-allocating structurally identical tuples that
// recur often (the empty tuple, small constant tuples used as sentinels).
//
// Adapted from the jump-destination analysis cache in the teacher's
// interpreter package, which caches one *jumpDestMap per code hash in an
// LRU keyed the same way this pool keys tuples.
type TuplePool struct {
	cache *lru.Cache[uint256.Int, *Tuple]
}

// NewTuplePool creates a pool holding up to size distinct tuples. A
// non-positive size panics, matching the teacher's analysis-cache
// constructor (newAnalysis) which validates its size the same way.
func NewTuplePool(size int) *TuplePool {
	cache, err := lru.New[uint256.Int, *Tuple](size)
	if err != nil {
		panic("value: failed to create tuple pool: " + err.Error())
	}
	return &TuplePool{cache: cache}
}

// Intern returns a tuple structurally equal to t, preferring a
// previously-pooled instance when one with the same hash is already cached.
// A nil pool (or nil receiver) makes Intern a no-op passthrough, so the
// pool is always optional.
func (p *TuplePool) Intern(t *Tuple) *Tuple {
	if p == nil || p.cache == nil || t == nil {
		return t
	}
	h := t.Hash()
	if cached, ok := p.cache.Get(h); ok {
		return cached
	}
	p.cache.Add(h, t)
	return t
}
