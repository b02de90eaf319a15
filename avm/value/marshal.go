package value

import (
	"bytes"

	"github.com/holiman/uint256"
)

// Marshal writes v's canonical wire form (spec §6) to buf:
//
//	Num n:        [NUM] || be256(n)
//	CodePoint cp: [CODEPT] || [opcode] || [hasImm] || marshal(immediate?) || be256(nextHash)
//	Tuple t:      [TUPLE+size] || marshal(t[0]) || ... || marshal(t[size-1])
func Marshal(v Value, buf *bytes.Buffer) {
	switch v.kind {
	case KindNum:
		buf.WriteByte(TagNum)
		be := v.num.Bytes32()
		buf.Write(be[:])
	case KindCodePoint:
		marshalCodePoint(v.cp, buf)
	case KindTuple:
		buf.WriteByte(TagTuple + v.tup.Size())
		for i := uint8(0); i < v.tup.Size(); i++ {
			child, _ := v.tup.Get(i)
			Marshal(child, buf)
		}
	}
}

func marshalCodePoint(cp *CodePoint, buf *bytes.Buffer) {
	buf.WriteByte(TagCodePt)
	if cp.IsUnset() {
		// An unset code point never appears as a genuine program
		// instruction; it is only ever observed via hash (errpc). Callers
		// that need to marshal it (ERRPUSH with no errpc set) get the
		// zero-opcode / empty-immediate / zero-nextHash encoding, whose
		// hash contract is special-cased separately in CodePoint.Hash.
		buf.WriteByte(0) // opcode
		buf.WriteByte(0) // hasImm
		var zero uint256.Int
		be := zero.Bytes32()
		buf.Write(be[:])
		return
	}
	buf.WriteByte(byte(cp.Op.Opcode))
	if cp.Op.HasImmediate() {
		buf.WriteByte(1)
		Marshal(*cp.Op.Immediate, buf)
	} else {
		buf.WriteByte(0)
	}
	be := cp.NextHash.Bytes32()
	buf.Write(be[:])
}

// MarshalShallow writes v using HASH_ONLY placeholders for a Tuple's
// children (one level deep only); Num and CodePoint are unchanged from
// Marshal. It commits to a tuple's sub-structure without its full content;
// MarshalForProof does not use it (witness values are written with Marshal).
func MarshalShallow(v Value, buf *bytes.Buffer) {
	if v.kind != KindTuple {
		Marshal(v, buf)
		return
	}
	buf.WriteByte(TagTuple + v.tup.Size())
	for i := uint8(0); i < v.tup.Size(); i++ {
		child, _ := v.tup.Get(i)
		h := child.Hash()
		WriteHashOnly(h, buf)
	}
}

// WriteHashOnly writes the [HASH_ONLY] || be256(h) placeholder.
func WriteHashOnly(h uint256.Int, buf *bytes.Buffer) {
	buf.WriteByte(TagHashOnly)
	be := h.Bytes32()
	buf.Write(be[:])
}

// MarshalOperation writes op's wire form: [hasImm] || [opcode] || marshal(immediate?).
func MarshalOperation(op Operation, buf *bytes.Buffer) {
	if op.HasImmediate() {
		buf.WriteByte(1)
		buf.WriteByte(byte(op.Opcode))
		Marshal(*op.Immediate, buf)
		return
	}
	buf.WriteByte(0)
	buf.WriteByte(byte(op.Opcode))
}
