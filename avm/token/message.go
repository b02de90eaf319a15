// Package token supplements the AVM's SEND/NBSEND opcodes with a concrete
// Message encoding and a minimal Tracker ledger. Spec.md treats both as
// opaque, externally-supplied types; this package gives them a grounded,
// testable implementation instead of leaving SEND permanently unimplementable.
package token

import (
	"errors"

	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// messageArity is the tuple width a popped Message value must have.
const messageArity = 4

// ErrDecode is returned by DecodeMessage when the popped value is not a
// well-formed Message. The interpreter folds this into machine Error state.
var ErrDecode = errors.New("token: value is not a valid Message")

// Message is the decoded form of the 4-tuple (destination, token, amount,
// data) that SEND and NBSEND expect on top of the stack. Like every AVM
// value it is opaque and content-addressed: its hash is simply the hash of
// its tuple encoding, so no separate hashing rule is needed for it.
type Message struct {
	Destination uint256.Int
	Token       uint256.Int
	Amount      uint256.Int
	Data        value.Value
}

// DecodeMessage extracts a Message from a popped stack value. Any shape
// other than a 4-tuple of (Num, Num, Num, Value) is a decode failure.
func DecodeMessage(v value.Value) (Message, error) {
	tup, ok := v.Tuple()
	if !ok || tup.Size() != messageArity {
		return Message{}, ErrDecode
	}
	dest, err := tup.Get(0)
	if err != nil {
		return Message{}, ErrDecode
	}
	tok, err := tup.Get(1)
	if err != nil {
		return Message{}, ErrDecode
	}
	amt, err := tup.Get(2)
	if err != nil {
		return Message{}, ErrDecode
	}
	data, err := tup.Get(3)
	if err != nil {
		return Message{}, ErrDecode
	}
	destN, ok := dest.Num()
	if !ok {
		return Message{}, ErrDecode
	}
	tokN, ok := tok.Num()
	if !ok {
		return Message{}, ErrDecode
	}
	amtN, ok := amt.Num()
	if !ok {
		return Message{}, ErrDecode
	}
	return Message{Destination: destN, Token: tokN, Amount: amtN, Data: data}, nil
}

// Encode rebuilds the tuple wire form of m, the inverse of DecodeMessage.
// An Assertion carries decoded Messages; Encode turns one back into a Value.
func (m Message) Encode() value.Value {
	return value.NewTupleValue(value.NewTuple(
		value.NewNum(m.Destination),
		value.NewNum(m.Token),
		value.NewNum(m.Amount),
		m.Data,
	))
}
