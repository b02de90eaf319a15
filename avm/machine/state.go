package machine

import (
	"github.com/go-avm/avm/avm/avmhash"
	"github.com/go-avm/avm/avm/stack"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// TimeBounds is the [lo, hi] window an Assertion's injected timestamps must
// fall within; GETTIME pushes it as a 2-tuple.
type TimeBounds [2]uint64

// runContext accumulates the effects of the steps within a single Run call;
// it is reset at the start of every Run (spec §4.F step 1).
type runContext struct {
	timeBounds  TimeBounds
	logs        []value.Value
	outMessages []token.Message
}

// Assertion is what a Run call reports back to the embedder.
type Assertion struct {
	NumSteps    uint64
	OutMessages []token.Message
	Logs        []value.Value
}

// State holds everything the interpreter needs to execute a program:
// code and pc, the two data stacks, the register and static values, the
// error handler, the inbox machinery, the token ledger, and the current
// Status. It is constructed empty by New, populated by the loader, and
// advanced through Run (or Step, one instruction at a time).
type State struct {
	Code []*value.CodePoint
	PC   uint64

	Stack    *stack.DataStack
	AuxStack *stack.DataStack

	RegisterVal value.Value
	StaticVal   value.Value
	Errpc       *value.CodePoint

	PendingInbox value.Value
	Inbox        value.Value

	Balance token.Tracker

	Status Status

	ctx runContext
}

// New constructs an empty machine ready for the loader to populate Code and
// StaticVal. RegisterVal/StaticVal/PendingInbox/Inbox default to the empty
// tuple and Errpc to the unset sentinel, per spec §3's MachineState
// lifecycle.
func New(balance token.Tracker) *State {
	return &State{
		Stack:        stack.New(),
		AuxStack:     stack.New(),
		RegisterVal:  value.NewTupleValue(value.EmptyTuple),
		StaticVal:    value.NewTupleValue(value.EmptyTuple),
		Errpc:        value.Unset,
		PendingInbox: value.NewTupleValue(value.EmptyTuple),
		Inbox:        value.NewTupleValue(value.EmptyTuple),
		Balance:      balance,
		Status:       Extensive,
	}
}

// CurrentCodePoint returns the code point at PC, or value.Unset if PC runs
// past the end of the program (a malformed or incomplete load).
func (s *State) CurrentCodePoint() *value.CodePoint {
	if int(s.PC) >= len(s.Code) {
		return value.Unset
	}
	return s.Code[s.PC]
}

// Hash is the six-word machine-state commitment (spec §4.G), short-circuited
// to the distinguished 0/1 sentinels for Halted/Error so a verifier can
// recognize those statuses without inspecting any other field.
func (s *State) Hash() uint256.Int {
	if s.Status == Halted {
		return *uint256.NewInt(0)
	}
	if s.Status == Error {
		return *uint256.NewInt(1)
	}
	cpHash := s.CurrentCodePoint().Hash()
	stackHash := s.Stack.Hash()
	auxHash := s.AuxStack.Hash()
	regHash := s.RegisterVal.Hash()
	staticHash := s.StaticVal.Hash()
	errpcHash := s.Errpc.Hash()

	b := avmhash.NewBuilder(6 * 32)
	b.WriteUint256(&cpHash)
	b.WriteUint256(&stackHash)
	b.WriteUint256(&auxHash)
	b.WriteUint256(&regHash)
	b.WriteUint256(&staticHash)
	b.WriteUint256(&errpcHash)
	return b.Sum()
}

// SendOnchainMessage enqueues msg into PendingInbox, building the canonical
// left-leaning cons tuple (tag=0, prev, msg) described in spec §6.
func (s *State) SendOnchainMessage(msg value.Value) {
	s.PendingInbox = consTuple(0, s.PendingInbox, msg)
}

// DeliverOnchainMessages promotes PendingInbox into Inbox. A no-op when
// PendingInbox is the empty tuple (spec §8 idempotence-of-empty-pending
// property).
func (s *State) DeliverOnchainMessages() {
	if isEmptyTuple(s.PendingInbox) {
		return
	}
	s.Inbox = consTuple(1, s.Inbox, s.PendingInbox)
	s.PendingInbox = value.NewTupleValue(value.EmptyTuple)
}

// SendOffchainMessages delivers a batch of messages directly into Inbox,
// bypassing PendingInbox. The batch is first built as its own tag=0 cons
// chain (the same shape a promoted PendingInbox would have accumulated),
// then the whole batch is promoted onto Inbox with a single tag=1 cons,
// mirroring DeliverOnchainMessages' build-then-promote structure.
func (s *State) SendOffchainMessages(msgs []value.Value) {
	if len(msgs) == 0 {
		return
	}
	batch := value.NewTupleValue(value.EmptyTuple)
	for _, m := range msgs {
		batch = consTuple(0, batch, m)
	}
	s.Inbox = consTuple(1, s.Inbox, batch)
}

func consTuple(tag uint64, prev, msg value.Value) value.Value {
	return value.NewTupleValue(value.NewTuple(value.NewNumUint64(tag), prev, msg))
}

func isEmptyTuple(v value.Value) bool {
	t, ok := v.Tuple()
	return ok && t.Size() == 0
}
