package value

import (
	"math"

	"github.com/go-avm/avm/avm/avmhash"
	"github.com/holiman/uint256"
)

// Operation is a single instruction: an opcode plus an optional immediate
// value that is conceptually auto-pushed onto the stack just before the
// opcode dispatches.
type Operation struct {
	Opcode    Opcode
	Immediate *Value // nil if this instruction carries no immediate
}

// HasImmediate reports whether op carries an immediate value.
func (op Operation) HasImmediate() bool {
	return op.Immediate != nil
}

// immediateHash is the immediate's contribution to CodePoint hashing: the
// hash of the immediate value. It must only be called when an immediate is
// present; with none, the caller omits this word (see computeHash).
func (op Operation) immediateHash() uint256.Int {
	return op.Immediate.Hash()
}

// unsetPC is the program counter of the distinguished "unset" code point.
const unsetPC = math.MaxUint64

// CodePoint is one instruction plus a commitment to the hash of the rest of
// the program: {pc, op, nextHash}. nextHash is the hash of the successor
// code point, or zero for the terminal one. CodePoints are built once,
// bottom-up, by the code-vector builder in package code, and are immutable
// afterward, so their hash is computed eagerly at construction time rather
// than lazily memoized.
type CodePoint struct {
	PC       uint64
	Op       Operation
	NextHash uint256.Int

	unset bool
	hash  uint256.Int
}

// Unset is the distinguished code point used as the initial errpc and
// anywhere else the protocol needs an "absent" CodePoint. Per spec §9 its
// hash must equal hash(Tuple()) to preserve the on-chain protocol, even
// though its PC is the sentinel math.MaxUint64.
var Unset = &CodePoint{PC: unsetPC, unset: true, hash: EmptyTuple.Hash()}

// NewCodePoint constructs a CodePoint and computes its hash immediately.
// Callers (the code-vector builder) must supply nextHash already computed
// for the successor, since hashing proceeds tail-to-head.
func NewCodePoint(pc uint64, op Operation, nextHash uint256.Int) *CodePoint {
	cp := &CodePoint{PC: pc, Op: op, NextHash: nextHash}
	cp.hash = cp.computeHash()
	return cp
}

func (cp *CodePoint) computeHash() uint256.Int {
	b := avmhash.NewBuilder(1 + 1 + 32 + 32)
	b.WriteByte(TagCodePt)
	b.WriteByte(byte(cp.Op.Opcode))
	if cp.Op.HasImmediate() {
		h := cp.Op.immediateHash()
		b.WriteUint256(&h)
	}
	b.WriteUint256(&cp.NextHash)
	return b.Sum()
}

// Hash returns cp's memoized hash. The unset sentinel always reports
// hash(Tuple()) regardless of its PC field.
func (cp *CodePoint) Hash() uint256.Int {
	if cp == nil {
		return Unset.Hash()
	}
	if cp.unset {
		return cp.hash
	}
	return cp.hash
}

// IsUnset reports whether cp is the distinguished "unset" sentinel.
func (cp *CodePoint) IsUnset() bool {
	return cp == nil || cp.unset || cp.PC == unsetPC
}

// Equal reports structural equality (same pc, same opcode+immediate,
// same nextHash) — in practice callers compare by hash, but this is used
// by Value.Equal for EQ-opcode style comparisons.
func (cp *CodePoint) Equal(other *CodePoint) bool {
	if cp.IsUnset() || other.IsUnset() {
		return cp.IsUnset() == other.IsUnset()
	}
	if cp.PC != other.PC || cp.Op.Opcode != other.Op.Opcode {
		return false
	}
	if cp.Op.HasImmediate() != other.Op.HasImmediate() {
		return false
	}
	if cp.Op.HasImmediate() && !cp.Op.Immediate.Equal(*other.Op.Immediate) {
		return false
	}
	return cp.NextHash.Eq(&other.NextHash)
}
