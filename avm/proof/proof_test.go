package proof

import (
	"bytes"
	"testing"

	"github.com/go-avm/avm/avm/avmhash"
	"github.com/go-avm/avm/avm/code"
	"github.com/go-avm/avm/avm/machine"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

func push(v value.Value) value.Operation {
	return value.Operation{Opcode: value.NOP, Immediate: &v}
}

func op(o value.Opcode) value.Operation {
	return value.Operation{Opcode: o}
}

func readWord(b []byte) uint256.Int {
	var out uint256.Int
	out.SetBytes(b)
	return out
}

// TestScenario_ProofRederivation is spec §8 scenario 5: for the two-step
// program [PUSH(7), HALT], marshalForProof at pc=0 yields nextHash =
// hash(code[1]), baseStackHash = hash(Tuple()), and no revealed values;
// reconstructing the pre-step state hash from the witness must equal
// MachineState.Hash() taken just before the step.
func TestScenario_ProofRederivation(t *testing.T) {
	seven := value.NewNumUint64(7)
	chain := code.BuildChain([]value.Operation{push(seven), op(value.HALT)})

	m := machine.New(token.NewInMemoryTracker())
	m.Code = chain
	m.PC = 0

	preHash := m.Hash()
	witness := MarshalForProof(m)
	if len(witness) < 64 {
		t.Fatalf("witness too short: %d bytes", len(witness))
	}

	wantNextHash := chain[1].Hash()
	gotNextHash := readWord(witness[0:32])
	if !gotNextHash.Eq(&wantNextHash) {
		t.Fatalf("witness nextHash mismatch")
	}

	wantBaseStack := value.EmptyTuple.Hash()
	gotBaseStack := readWord(witness[32:64])
	if !gotBaseStack.Eq(&wantBaseStack) {
		t.Fatalf("witness baseStackHash mismatch")
	}

	// Re-derive the pre-step state hash from the witness alone: the code
	// point's hash from nextHash plus the operation, then the six-word hash
	// over it and the five remaining witness words (this program reveals no
	// stack values, so baseStackHash is already the full stack hash).
	cpHash := value.NewCodePoint(0, push(seven), gotNextHash).Hash()
	b := avmhash.NewBuilder(6 * 32)
	b.WriteUint256(&cpHash)
	for i := 1; i < 6; i++ {
		w := readWord(witness[i*32 : (i+1)*32])
		b.WriteUint256(&w)
	}
	if rederived := b.Sum(); !rederived.Eq(&preHash) {
		t.Fatalf("state hash re-derived from witness does not match MachineState.Hash()")
	}

	// MarshalForProof must be a pure read: the machine's own hash is
	// unaffected by having built a witness for it.
	postHashBefore := m.Hash()
	if !postHashBefore.Eq(&preHash) {
		t.Fatalf("MarshalForProof mutated machine state")
	}

	m.Step()
	postHash := m.Hash()
	if postHash.Eq(&preHash) {
		t.Fatalf("state hash did not change after Step")
	}
}

func TestMarshalForProof_RevealsFullOperandsForArithmetic(t *testing.T) {
	three := value.NewNumUint64(3)
	four := value.NewNumUint64(4)
	chain := code.BuildChain([]value.Operation{
		push(three), push(four), op(value.ADD), op(value.HALT),
	})

	m := machine.New(token.NewInMemoryTracker())
	m.Code = chain
	m.PC = 0
	m.Step() // push 3
	m.Step() // push 4
	// Now at pc=2 (ADD), stack holds [4, 3] (4 on top).

	witness := MarshalForProof(m)
	// Six 32-byte words, the 2-byte ADD operation, then both operands in
	// pop order.
	var revealed bytes.Buffer
	value.Marshal(four, &revealed)
	value.Marshal(three, &revealed)
	if len(witness) != 6*32+2+revealed.Len() || !bytes.HasSuffix(witness, revealed.Bytes()) {
		t.Fatalf("expected both operands revealed at the end of the witness, got %d bytes", len(witness))
	}
}
