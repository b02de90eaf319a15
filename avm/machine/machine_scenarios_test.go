package machine

import (
	"testing"

	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
)

// TestScenario_DivByZeroHandler is spec §8 scenario 2: program
// [ERRSET(cp_h), PUSH(0), PUSH(5), DIV, HALT] with handler cp_h = [HALT].
// After the DIV step the machine enters Error; the next Run jumps to the
// handler and halts.
func TestScenario_DivByZeroHandler(t *testing.T) {
	const handlerPC = 6
	m := newMachine([]value.Operation{
		push(value.NewNumUint64(0)), // placeholder; patched below to the handler CodePoint
		op(value.ERRSET),
		push(value.NewNumUint64(0)),
		push(value.NewNumUint64(5)),
		op(value.DIV),
		op(value.HALT),
		op(value.HALT), // handler: index 6
	})
	// The handler CodePoint only exists once the whole chain is built, so the
	// forward-referencing immediate at index 0 is patched in afterward rather
	// than constructed in the same pass as BuildChain.
	handlerVal := value.NewCodePointValue(m.Code[handlerPC])
	m.Code[0].Op.Immediate = &handlerVal

	m.Run(3, 0, 0) // PUSH(handler), ERRSET, PUSH(0)
	if m.Status != Extensive {
		t.Fatalf("status after setup = %s, want extensive", m.Status)
	}

	// PUSH(5), DIV: the DIV step errors; Run's end-of-call handling then
	// jumps pc to the handler and resumes Extensive so the next Run call can
	// execute it, per the run loop's errpc recovery (spec §4.F step 5).
	m.Run(2, 0, 0)
	if m.Status != Extensive {
		t.Fatalf("status after errpc recovery = %s, want extensive", m.Status)
	}
	if m.PC != handlerPC {
		t.Fatalf("pc after errpc recovery = %d, want %d", m.PC, handlerPC)
	}

	a := m.Run(5, 0, 0) // handler's HALT
	if m.Status != Halted {
		t.Fatalf("status after handler = %s, want halted", m.Status)
	}
	if a.NumSteps != 1 {
		t.Fatalf("numSteps = %d, want 1 (just the handler's HALT)", a.NumSteps)
	}
}

// TestScenario_TupleRoundTrip is spec §8 scenario 3.
func TestScenario_TupleRoundTrip(t *testing.T) {
	tup := value.NewTupleValue(value.NewTuple(
		value.NewNumUint64(10), value.NewNumUint64(20), value.NewNumUint64(30),
	))

	m := newMachine([]value.Operation{
		push(tup),
		op(value.TLEN),
		op(value.POP), // clear the length so DUP0 below targets the tuple cleanly
		push(tup),
		op(value.DUP0),
		push(value.NewNumUint64(1)),
		op(value.TGET),
		op(value.POP),
		// TSET expects pop order (idx, tup, v): push v, then tup, then idx
		// last so idx lands on top.
		push(value.NewNumUint64(99)),
		push(tup),
		push(value.NewNumUint64(1)),
		op(value.TSET),
		op(value.HALT),
	})

	// PUSH(tup), TLEN -> top is 3.
	m.Run(2, 0, 0)
	top, err := m.Stack.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := top.Num()
	if n.Uint64() != 3 {
		t.Fatalf("TLEN = %d, want 3", n.Uint64())
	}

	// POP, PUSH(tup), DUP0, PUSH(1), TGET -> top is 20.
	m.Run(5, 0, 0)
	top, err = m.Stack.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ = top.Num()
	if n.Uint64() != 20 {
		t.Fatalf("TGET(1) = %d, want 20", n.Uint64())
	}

	// POP, PUSH(99), PUSH(tup), PUSH(1), TSET -> top tuple hashes like {10,99,30}.
	m.Run(5, 0, 0)
	top, err = m.Stack.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := value.NewTupleValue(value.NewTuple(
		value.NewNumUint64(10), value.NewNumUint64(99), value.NewNumUint64(30),
	))
	gotHash, wantHash := top.Hash(), want.Hash()
	if !gotHash.Eq(&wantHash) {
		t.Fatalf("TSET result hash mismatch: got %s want %s", gotHash.Dec(), wantHash.Dec())
	}
}

// TestScenario_InboxBlock is spec §8 scenario 4.
func TestScenario_InboxBlock(t *testing.T) {
	m := newMachine([]value.Operation{
		push(value.NewTupleValue(value.EmptyTuple)),
		op(value.INBOX),
		op(value.HALT),
	})

	a := m.Run(2, 0, 0) // PUSH(Tuple()), INBOX -> blocks, does not advance pc
	if m.Status != Blocked {
		t.Fatalf("status = %s, want blocked", m.Status)
	}
	if a.NumSteps != 1 {
		t.Fatalf("numSteps = %d, want 1 (the blocking step must not count)", a.NumSteps)
	}

	// Host delivers a message; inbox becomes non-empty.
	m.SendOnchainMessage(value.NewNumUint64(42))
	m.DeliverOnchainMessages()

	m.Run(2, 0, 0) // retried INBOX completes, then HALT
	if m.Status != Halted {
		t.Fatalf("status = %s, want halted", m.Status)
	}
}

func TestDeliverOnchainMessages_EmptyPendingIsNoop(t *testing.T) {
	m := New(token.NewInMemoryTracker())
	before := m.Inbox.Hash()
	m.DeliverOnchainMessages()
	after := m.Inbox.Hash()
	if !before.Eq(&after) {
		t.Fatalf("DeliverOnchainMessages changed inbox despite empty pending")
	}
}
