// Package proof builds the AVM's per-step witness: the serialized bundle a
// verifier needs to re-derive MachineState.Hash() before the step and
// re-execute the instruction, without holding the full machine state.
package proof

import (
	"bytes"

	"github.com/go-avm/avm/avm/code"
	"github.com/go-avm/avm/avm/machine"
	"github.com/go-avm/avm/avm/value"
)

// MarshalForProof produces the witness for the next step of m (spec §4.H).
func MarshalForProof(m *machine.State) []byte {
	cp := m.CurrentCodePoint()
	op := cp.Op

	stackPops := append([]bool(nil), code.Pops(op.Opcode)...)
	auxPops := code.AuxPops(op.Opcode)

	// If the operation carries an immediate, the pre-step stack signature
	// drops its first entry: the immediate is supplied by the code point's
	// own hash chain (marshal(op) below), not by a pop against the stack
	// the verifier reconstructs from baseStackHash.
	if op.HasImmediate() && len(stackPops) > 0 {
		stackPops = stackPops[1:]
	}

	baseStackHash, stackVals := m.Stack.SolidityProofValue(stackPops)
	baseAuxHash, auxVals := m.AuxStack.SolidityProofValue(auxPops)

	regHash := m.RegisterVal.Hash()
	staticHash := m.StaticVal.Hash()
	errpcHash := m.Errpc.Hash()

	var buf bytes.Buffer
	writeWord(&buf, cp.NextHash)
	writeWord(&buf, baseStackHash)
	writeWord(&buf, baseAuxHash)
	writeWord(&buf, regHash)
	writeWord(&buf, staticHash)
	writeWord(&buf, errpcHash)

	value.MarshalOperation(op, &buf)
	for _, v := range stackVals {
		value.Marshal(v, &buf)
	}
	for _, v := range auxVals {
		value.Marshal(v, &buf)
	}

	return buf.Bytes()
}

func writeWord(buf *bytes.Buffer, h interface{ Bytes32() [32]byte }) {
	be := h.Bytes32()
	buf.Write(be[:])
}
