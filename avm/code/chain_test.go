package code

import (
	"testing"

	"github.com/go-avm/avm/avm/value"
)

func TestBuildChain_TerminalNextHashIsZero(t *testing.T) {
	ops := []value.Operation{
		{Opcode: value.NOP},
		{Opcode: value.HALT},
	}
	chain := BuildChain(ops)
	if len(chain) != 2 {
		t.Fatalf("len(chain) = %d, want 2", len(chain))
	}
	if got := chain[1].NextHash; !got.IsZero() {
		t.Fatalf("terminal nextHash = %s, want 0", got.Dec())
	}
	linked := chain[1].Hash()
	if got := chain[0].NextHash; !got.Eq(&linked) {
		t.Fatalf("chain[0].NextHash does not equal chain[1].Hash()")
	}
}

func TestBuildChain_PCsAreSequential(t *testing.T) {
	ops := make([]value.Operation, 4)
	for i := range ops {
		ops[i] = value.Operation{Opcode: value.NOP}
	}
	chain := BuildChain(ops)
	for i, cp := range chain {
		if cp.PC != uint64(i) {
			t.Fatalf("chain[%d].PC = %d, want %d", i, cp.PC, i)
		}
	}
}

func TestStackPops_KnownOpcodesHaveEntries(t *testing.T) {
	must := []value.Opcode{
		value.ADD, value.EQ, value.JUMP, value.CJUMP, value.TGET, value.TSET,
		value.AUXPUSH, value.DUP0, value.DUP1, value.DUP2,
	}
	for _, op := range must {
		if _, ok := StackPops[op]; !ok {
			t.Fatalf("missing StackPops entry for %s", op)
		}
	}
	if _, ok := AuxStackPops[value.AUXPOP]; !ok {
		t.Fatalf("missing AuxStackPops entry for AUXPOP")
	}
}
