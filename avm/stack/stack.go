// Package stack implements the AVM's DataStack: a LIFO value sequence with
// a lazily-extended cumulative hash chain, used for both the main stack and
// the auxiliary stack.
package stack

import (
	"errors"

	"github.com/go-avm/avm/avm/avmhash"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
	"golang.org/x/exp/slices"
)

// ErrUnderflow is returned by Pop, Peek and PrepForMod when the stack does
// not hold enough values. The interpreter folds this into machine Error
// state; it is never a panic.
var ErrUnderflow = errors.New("stack: underflow")

// DataStack is an ordered sequence of values, paired with a lazily-extended
// cumulative hash chain (spec §3 DataStack). The values slice is stored
// bottom-first; the Peek and Set index 0 is the top.
type DataStack struct {
	values []value.Value
	hashes []uint256.Int // hashes[i] is the chain hash after pushing values[0..=i]
}

// New returns an empty DataStack.
func New() *DataStack {
	return &DataStack{}
}

// emptyHash is the chain's base case, hash(Tuple()).
func emptyHash() uint256.Int {
	return value.EmptyTuple.Hash()
}

// Push appends v to the top of the stack. hashes is left untouched; Hash
// lazily extends it on demand.
func (s *DataStack) Push(v value.Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. hashes is truncated to fit the
// shrunk values slice.
func (s *DataStack) Pop() (value.Value, error) {
	if len(s.values) == 0 {
		return value.Value{}, ErrUnderflow
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	if len(s.hashes) > len(s.values) {
		s.hashes = s.hashes[:len(s.values)]
	}
	return top, nil
}

// PopClear pops and discards the top value.
func (s *DataStack) PopClear() error {
	_, err := s.Pop()
	return err
}

// Peek returns the i-th-from-top value without removing it (0 = top).
func (s *DataStack) Peek(i int) (value.Value, error) {
	idx := len(s.values) - 1 - i
	if i < 0 || idx < 0 {
		return value.Value{}, ErrUnderflow
	}
	return s.values[idx], nil
}

// Set overwrites the i-th-from-top slot in place, used by SWAP.
// Callers are responsible for calling PrepForMod first so the hash chain
// is invalidated above the mutated depth.
func (s *DataStack) Set(i int, v value.Value) error {
	idx := len(s.values) - 1 - i
	if i < 0 || idx < 0 {
		return ErrUnderflow
	}
	s.values[idx] = v
	return nil
}

// Size returns the number of values currently on the stack.
func (s *DataStack) Size() int {
	return len(s.values)
}

// PrepForMod checks that at least n slots exist (else ErrUnderflow) and
// invalidates any memoized chain hashes for slots about to be mutated: the
// top n slots, i.e. indices len(values)-n .. len(values)-1.
func (s *DataStack) PrepForMod(n int) error {
	if len(s.values) < n {
		return ErrUnderflow
	}
	keep := len(s.values) - n
	if len(s.hashes) > keep {
		s.hashes = s.hashes[:keep]
	}
	return nil
}

// Hash lazily extends the chain to cover the full values slice and returns
// the resulting cumulative hash, or hash(Tuple()) if empty.
//
// Chain rule (spec §3): h0 = hash(Tuple()); after pushing values[0..=i]
// (oldest-pushed-first, i.e. values[0] is the bottom of the stack),
// h_{i+1} = Keccak([TUPLE+2] || be256(hash(values[i])) || be256(h_i)).
//
// s.hashes[j] is exactly h_{j+1}: the cumulative hash after folding in
// values[0..=j], bottom-first. This indexing is what keeps Pop's
// tail-truncation (hashes[:len(values)]) valid, since popping the top
// (the highest index) only ever invalidates hash entries beyond the new
// length, never earlier ones.
func (s *DataStack) Hash() uint256.Int {
	if len(s.values) == 0 {
		return emptyHash()
	}
	for j := len(s.hashes); j < len(s.values); j++ {
		prev := emptyHash()
		if j > 0 {
			prev = s.hashes[j-1]
		}
		vh := s.values[j].Hash()
		b := avmhash.NewBuilder(1 + 32 + 32)
		b.WriteByte(value.TagTuple + 2)
		b.WriteUint256(&vh)
		b.WriteUint256(&prev)
		s.hashes = append(s.hashes, b.Sum())
	}
	return s.hashes[len(s.hashes)-1]
}

// SolidityProofValue implements the stack half of proof marshalling (spec
// §4.D): given a reveal signature for each top-down pop, it clones the
// stack, pops each listed slot, and returns (remaining-stack-hash,
// fully-revealed values in pop order). false entries are folded into the
// base hash and discarded; true entries are both folded in and appended to
// the returned slice. The receiver is never mutated.
func (s *DataStack) SolidityProofValue(pops []bool) (uint256.Int, []value.Value) {
	clone := &DataStack{
		values: slices.Clone(s.values),
		hashes: slices.Clone(s.hashes),
	}
	revealed := make([]value.Value, 0, len(pops))
	for _, reveal := range pops {
		v, err := clone.Pop()
		if err != nil {
			// A malformed pop signature (more pops than the stack holds)
			// is an internal bug in the caller's static tables, not a
			// value the AVM program controls.
			panic("stack: SolidityProofValue pop signature exceeds stack depth")
		}
		if reveal {
			revealed = append(revealed, v)
		}
	}
	return clone.Hash(), revealed
}
