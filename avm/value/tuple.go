package value

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-avm/avm/avm/avmhash"
	"github.com/holiman/uint256"
)

// MaxArity is the maximum number of elements a Tuple may hold.
const MaxArity = 8

// ErrArityExceeded is returned by NewTuple and Tuple.Set when an operation
// would exceed MaxArity elements.
var ErrArityExceeded = errors.New("value: tuple arity exceeds 8")

// ErrIndexOutOfRange is returned by Tuple.Get and Tuple.Set for an
// out-of-bounds index. The interpreter converts this into a machine Error;
// it is never a panic.
var ErrIndexOutOfRange = errors.New("value: tuple index out of range")

// Tuple is an immutable-by-convention, fixed-arity (0..=8) ordered sequence
// of values with a memoized structural hash. Set returns a logically new
// Tuple; the receiver is never mutated, so sharing a *Tuple between two
// Values is safe and invisible to hashing.
type Tuple struct {
	elems     [MaxArity]Value
	n         uint8
	hash      uint256.Int
	hashValid bool
}

// EmptyTuple is the canonical zero-element tuple, whose hash is the
// sentinel used throughout the protocol for "empty register", "empty
// static", "empty stack" and "unset errpc".
var EmptyTuple = NewTuple()

// NewTuple constructs a Tuple from 0..=8 values. More than MaxArity values
// panics: this is a programmer error in the Go code building a tuple, not a
// value the interpreter ever needs to reject mid-execution (the interpreter
// never constructs a tuple wider than what TSET/loader already validated).
func NewTuple(elems ...Value) *Tuple {
	if len(elems) > MaxArity {
		panic(ErrArityExceeded)
	}
	t := &Tuple{n: uint8(len(elems))}
	copy(t.elems[:], elems)
	return t
}

// Size returns the number of elements in t.
func (t *Tuple) Size() uint8 {
	if t == nil {
		return 0
	}
	return t.n
}

// Get returns the i-th element. An out-of-range index is reported via the
// error return, not a panic, so callers in the interpreter can fold it into
// a machine Error.
func (t *Tuple) Get(i uint8) (Value, error) {
	if t == nil || i >= t.n {
		return Value{}, ErrIndexOutOfRange
	}
	return t.elems[i], nil
}

// Set returns a new Tuple equal to t with slot i replaced by v. t itself is
// never modified.
func (t *Tuple) Set(i uint8, v Value) (*Tuple, error) {
	if t == nil || i >= t.n {
		return nil, ErrIndexOutOfRange
	}
	next := *t
	next.elems[i] = v
	next.hashValid = false
	return &next, nil
}

// Hash computes (and memoizes) the structural hash of t per spec §3:
// Keccak([TUPLE+0]) for the empty tuple, else
// Keccak([TUPLE+n] || be256(hash(t[0])) || ... || be256(hash(t[n-1]))).
func (t *Tuple) Hash() uint256.Int {
	if t == nil {
		return EmptyTuple.Hash()
	}
	if t.hashValid {
		return t.hash
	}
	b := avmhash.NewBuilder(1 + int(t.n)*32)
	b.WriteByte(TagTuple + t.n)
	for i := uint8(0); i < t.n; i++ {
		h := t.elems[i].Hash()
		b.WriteUint256(&h)
	}
	t.hash = b.Sum()
	t.hashValid = true
	return t.hash
}

// Equal reports structural equality of two tuples (same size, pairwise
// equal elements), not pointer identity.
func (t *Tuple) Equal(other *Tuple) bool {
	if t.Size() != other.Size() {
		return false
	}
	for i := uint8(0); i < t.Size(); i++ {
		a, _ := t.Get(i)
		b, _ := other.Get(i)
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

// String is a debug-only pretty-printer.
func (t *Tuple) String() string {
	if t == nil || t.n == 0 {
		return "()"
	}
	parts := make([]string, t.n)
	for i := uint8(0); i < t.n; i++ {
		parts[i] = t.elems[i].String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
