// Package value implements the AVM's recursive value model: a closed sum
// type of three variants (Num, CodePoint, Tuple) with structural,
// Keccak-256-based hashing identical across conforming implementations.
package value

import (
	"fmt"

	"github.com/go-avm/avm/avm/avmhash"
	"github.com/holiman/uint256"
)

// Kind distinguishes the three Value variants.
type Kind uint8

const (
	KindNum Kind = iota
	KindCodePoint
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNum:
		return "num"
	case KindCodePoint:
		return "codepoint"
	case KindTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

// Type tag bytes used in both hashing and wire marshalling (spec §3).
const (
	TagNum      byte = 0
	TagCodePt   byte = 1
	TagHashOnly byte = 2
	TagTuple    byte = 3
)

// Value is the closed sum type Num | CodePoint | Tuple. The zero Value is a
// Num of zero, matching Go's usual zero-value-is-useful convention.
type Value struct {
	kind Kind
	num  uint256.Int
	cp   *CodePoint
	tup  *Tuple
}

// NewNum wraps a 256-bit unsigned integer as a Value.
func NewNum(n uint256.Int) Value {
	return Value{kind: KindNum, num: n}
}

// NewNumUint64 is a convenience constructor for small literal constants.
func NewNumUint64(n uint64) Value {
	var z uint256.Int
	z.SetUint64(n)
	return NewNum(z)
}

// NewCodePointValue wraps a CodePoint as a Value.
func NewCodePointValue(cp *CodePoint) Value {
	return Value{kind: KindCodePoint, cp: cp}
}

// NewTupleValue wraps a Tuple as a Value.
func NewTupleValue(t *Tuple) Value {
	return Value{kind: KindTuple, tup: t}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNum, IsCodePoint and IsTuple are the usual sum-type predicates.
func (v Value) IsNum() bool       { return v.kind == KindNum }
func (v Value) IsCodePoint() bool { return v.kind == KindCodePoint }
func (v Value) IsTuple() bool     { return v.kind == KindTuple }

// Num returns the wrapped integer and true, or the zero integer and false if
// v is not a Num. Interpreter opcodes use this instead of a type assertion
// panic so a type mismatch becomes a machine Error, never a crash.
func (v Value) Num() (uint256.Int, bool) {
	if v.kind != KindNum {
		return uint256.Int{}, false
	}
	return v.num, true
}

// CodePoint returns the wrapped code point and true, or nil and false.
func (v Value) CodePoint() (*CodePoint, bool) {
	if v.kind != KindCodePoint {
		return nil, false
	}
	return v.cp, true
}

// Tuple returns the wrapped tuple and true, or nil and false.
func (v Value) Tuple() (*Tuple, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return v.tup, true
}

// Hash computes the structural hash of v per spec §3. Num hashing is cheap
// enough to recompute on demand; CodePoint and Tuple hashes are memoized on
// their own types and simply read here.
func (v Value) Hash() uint256.Int {
	switch v.kind {
	case KindNum:
		b := avmhash.NewBuilder(1 + 32)
		b.WriteByte(TagNum).WriteUint256(&v.num)
		return b.Sum()
	case KindCodePoint:
		return v.cp.Hash()
	case KindTuple:
		return v.tup.Hash()
	default:
		panic("value: invalid kind")
	}
}

// Equal reports structural equality: same variant and same abstract
// content (not pointer identity for tuples/code points).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNum:
		return v.num.Eq(&other.num)
	case KindCodePoint:
		return v.cp.Equal(other.cp)
	case KindTuple:
		return v.tup.Equal(other.tup)
	default:
		return false
	}
}

// String is a debug-only pretty-printer; it is never part of any hashed or
// marshalled byte stream.
func (v Value) String() string {
	switch v.kind {
	case KindNum:
		return v.num.Dec()
	case KindCodePoint:
		return fmt.Sprintf("CodePoint(pc=%d, op=%s)", v.cp.PC, v.cp.Op.Opcode)
	case KindTuple:
		return v.tup.String()
	default:
		return "<invalid>"
	}
}
