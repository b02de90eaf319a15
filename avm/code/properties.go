// Package code builds the AVM's code-point chain from a flat instruction
// list and exposes the static per-opcode properties (stack-pop arity and
// the proof-reveal signature for each popped operand) that avm/proof feeds
// to avm/stack's SolidityProofValue when building witnesses. It depends only on
// the Opcode/Operation/CodePoint types from avm/value, not their internals,
// so it stays a separate package from avm/value's mutually-recursive
// Value/CodePoint/Operation model.
package code

import "github.com/go-avm/avm/avm/value"

// StackPops maps each opcode to the ordered proof-reveal signature for the
// main-stack values it pops, top-of-stack first. len(StackPops[op]) is the
// opcode's main-stack pop arity. A true entry means the popped value must be
// fully revealed in a MarshalForProof witness because the operation's
// on-chain re-execution needs its concrete content (arithmetic operands,
// comparison operands, indices, the CodePoint target of a jump, log
// payloads). A false entry means only the value's hash is needed: the
// operation treats the popped value opaquely (POP discards it, EQ and HASH
// only ever consume its hash, duplication and register moves never inspect
// content, CJUMP's condition is reduced to isZero which the prover can
// attest to without revealing the operand itself).
var StackPops = map[value.Opcode][]bool{
	value.ADD:    {true, true},
	value.MUL:    {true, true},
	value.SUB:    {true, true},
	value.DIV:    {true, true},
	value.SDIV:   {true, true},
	value.MOD:    {true, true},
	value.SMOD:   {true, true},
	value.ADDMOD: {true, true, true},
	value.MULMOD: {true, true, true},
	value.EXP:    {true, true},

	value.LT:  {true, true},
	value.GT:  {true, true},
	value.SLT: {true, true},
	value.SGT: {true, true},
	value.EQ:  {false, false},

	value.ISZERO:     {true},
	value.AND:        {true, true},
	value.OR:         {true, true},
	value.XOR:        {true, true},
	value.NOT:        {true},
	value.BYTE:       {true, true},
	value.SIGNEXTEND: {true, true},

	value.HASH: {false},
	value.TYPE: {true},

	value.POP:     {false},
	value.SPUSH:   {},
	value.RPUSH:   {},
	value.RSET:    {false},
	value.JUMP:    {true},
	value.CJUMP:   {true, false}, // [target(full), cond(hash-only)]
	value.STACKEMPTY: {},
	value.PCPUSH:      {},
	value.AUXPUSH:     {false},
	value.AUXPOP:      {},
	value.AUXSTACKEMPTY: {},
	value.NOP:     {},
	value.ERRPUSH: {},
	value.ERRSET:  {true},

	value.DUP0:  {false},
	value.DUP1:  {false, false},
	value.DUP2:  {false, false, false},
	value.SWAP1: {false, false},
	value.SWAP2: {false, false, false},

	value.TGET: {true, true}, // [index, tuple]
	value.TSET: {true, true, true}, // [index, tuple, value]
	value.TLEN: {true},

	value.BREAKPOINT: {},
	value.LOG:         {true},

	value.SEND:    {true},
	value.NBSEND:  {true},
	value.GETTIME: {},
	value.INBOX:   {false},
	value.ERROR:   {},
	value.HALT:    {},
	value.DEBUG:   {},
}

// AuxStackPops maps each opcode to its pop signature against the auxiliary
// stack. Only AUXPOP touches the aux stack on the pop side (AUXPUSH pushes
// to it but pops from the main stack instead, already covered by StackPops).
var AuxStackPops = map[value.Opcode][]bool{
	value.AUXPOP: {false},
}

// Pops returns op's main-stack pop signature, defaulting to no pops for any
// opcode absent from the table (every defined opcode has an entry, so this
// only applies to bytes that are not defined opcodes).
func Pops(op value.Opcode) []bool {
	return StackPops[op]
}

// AuxPops returns op's aux-stack pop signature.
func AuxPops(op value.Opcode) []bool {
	return AuxStackPops[op]
}
