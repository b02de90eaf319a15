package machine

import (
	"testing"

	"github.com/go-avm/avm/avm/code"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// push returns an Operation carrying opcode NOP plus an immediate: the
// idiomatic AVM "PUSH(v)" sugar described in the spec's literal scenarios.
func push(v value.Value) value.Operation {
	return value.Operation{Opcode: value.NOP, Immediate: &v}
}

func op(o value.Opcode) value.Operation {
	return value.Operation{Opcode: o}
}

func newMachine(ops []value.Operation) *State {
	m := New(token.NewInMemoryTracker())
	m.Code = code.BuildChain(ops)
	m.PC = 0
	return m
}

func TestHash_HaltedIsZero(t *testing.T) {
	m := newMachine([]value.Operation{op(value.HALT)})
	m.Status = Halted
	h := m.Hash()
	if !h.IsZero() {
		t.Fatalf("halted hash = %s, want 0", h.Dec())
	}
}

func TestHash_ErrorIsOne(t *testing.T) {
	m := newMachine([]value.Operation{op(value.HALT)})
	m.Status = Error
	h := m.Hash()
	if h.Uint64() != 1 || !h.IsUint64() {
		t.Fatalf("error hash = %s, want 1", h.Dec())
	}
}

func TestStep_ArithmeticAddAdvancesPC(t *testing.T) {
	m := newMachine([]value.Operation{
		push(value.NewNumUint64(3)),
		push(value.NewNumUint64(4)),
		op(value.ADD),
		op(value.HALT),
	})
	for i := 0; i < 3; i++ {
		m.Step()
	}
	if m.Status != Extensive {
		t.Fatalf("status = %s, want extensive", m.Status)
	}
	if m.PC != 3 {
		t.Fatalf("pc = %d, want 3", m.PC)
	}
	top, err := m.Stack.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := top.Num()
	if n.Uint64() != 7 {
		t.Fatalf("top = %v, want 7", n)
	}
}

func TestDivideByZero_EntersError(t *testing.T) {
	m := newMachine([]value.Operation{
		push(value.NewNumUint64(0)),
		push(value.NewNumUint64(5)),
		op(value.DIV),
		op(value.HALT),
	})
	m.Run(10, 0, 0)
	if m.Status != Error {
		t.Fatalf("status = %s, want error", m.Status)
	}
}

func TestSignedDivision_MinIntByMinusOne(t *testing.T) {
	var minInt uint256.Int
	minInt.Lsh(uint256.NewInt(1), 255) // 2**255, the two's-complement min int

	var negOne uint256.Int
	negOne.Not(uint256.NewInt(0)) // all-ones: -1

	m := newMachine([]value.Operation{
		push(value.NewNum(negOne)),
		push(value.NewNum(minInt)),
		op(value.SDIV),
		op(value.HALT),
	})
	m.Run(10, 0, 0)
	top, err := m.Stack.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := top.Num()
	if !got.Eq(&minInt) {
		t.Fatalf("SDIV(min_int, -1) = %s, want %s", got.Dec(), minInt.Dec())
	}
}
