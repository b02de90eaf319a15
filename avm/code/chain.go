package code

import (
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// BuildChain turns a flat instruction list into the AVM's code-point chain:
// one *value.CodePoint per operation, each carrying the hash of its
// successor. Hashing proceeds tail-to-head (spec §4.C) since a code point's
// hash commits to the hash of the rest of the program, so the terminal
// instruction's nextHash is zero and every earlier one folds in the one
// built just before it.
//
// An empty ops list yields an empty chain; callers (the loader) are
// responsible for ensuring at least one instruction exists before running a
// machine against it.
func BuildChain(ops []value.Operation) []*value.CodePoint {
	if len(ops) == 0 {
		return nil
	}
	chain := make([]*value.CodePoint, len(ops))
	var nextHash uint256.Int
	for i := len(ops) - 1; i >= 0; i-- {
		cp := value.NewCodePoint(uint64(i), ops[i], nextHash)
		chain[i] = cp
		nextHash = cp.Hash()
	}
	return chain
}
