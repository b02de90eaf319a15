package machine

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
)

// runOp dispatches a single opcode against the current state. It returns
// holdPC=true when the caller must not perform the default pc+1 advance
// (an explicit jump, a terminal status, or a block that must retry the
// same instruction). Any non-nil error here is always a machine error
// (spec §7a): Step folds it into Status = Error, never propagates it.
func (s *State) runOp(op value.Opcode) (holdPC bool, err error) {
	switch op {
	case value.ADD:
		return false, s.opAdd()
	case value.MUL:
		return false, s.opMul()
	case value.SUB:
		return false, s.opSub()
	case value.DIV:
		return false, s.opDiv()
	case value.SDIV:
		return false, s.opSdiv()
	case value.MOD:
		return false, s.opMod()
	case value.SMOD:
		return false, s.opSmod()
	case value.ADDMOD:
		return false, s.opAddmod()
	case value.MULMOD:
		return false, s.opMulmod()
	case value.EXP:
		return false, s.opExp()

	case value.LT:
		return false, s.opLt()
	case value.GT:
		return false, s.opGt()
	case value.SLT:
		return false, s.opSlt()
	case value.SGT:
		return false, s.opSgt()
	case value.EQ:
		return false, s.opEq()

	case value.ISZERO:
		return false, s.opIszero()
	case value.AND:
		return false, s.opAnd()
	case value.OR:
		return false, s.opOr()
	case value.XOR:
		return false, s.opXor()
	case value.NOT:
		return false, s.opNot()
	case value.BYTE:
		return false, s.opByte()
	case value.SIGNEXTEND:
		return false, s.opSignextend()

	case value.HASH:
		return false, s.opHash()
	case value.TYPE:
		return false, s.opType()

	case value.POP:
		return false, s.opPop()
	case value.SPUSH:
		return false, s.opSpush()
	case value.RPUSH:
		return false, s.opRpush()
	case value.RSET:
		return false, s.opRset()
	case value.JUMP:
		return s.opJump()
	case value.CJUMP:
		return s.opCjump()
	case value.STACKEMPTY:
		return false, s.opStackempty()
	case value.PCPUSH:
		return false, s.opPcpush()
	case value.AUXPUSH:
		return false, s.opAuxpush()
	case value.AUXPOP:
		return false, s.opAuxpop()
	case value.AUXSTACKEMPTY:
		return false, s.opAuxstackempty()
	case value.NOP:
		return false, nil
	case value.ERRPUSH:
		return false, s.opErrpush()
	case value.ERRSET:
		return false, s.opErrset()

	case value.DUP0:
		return false, s.opDup(0)
	case value.DUP1:
		return false, s.opDup(1)
	case value.DUP2:
		return false, s.opDup(2)
	case value.SWAP1:
		return false, s.opSwap(1)
	case value.SWAP2:
		return false, s.opSwap(2)

	case value.TGET:
		return false, s.opTget()
	case value.TSET:
		return false, s.opTset()
	case value.TLEN:
		return false, s.opTlen()

	case value.BREAKPOINT:
		s.opBreakpoint()
		return true, nil
	case value.LOG:
		return false, s.opLog()

	case value.SEND:
		if err := s.opSend(); err != nil {
			return true, err
		}
		return s.Status == Blocked, nil
	case value.NBSEND:
		return false, s.opNbsend()
	case value.GETTIME:
		return false, s.opGettime()
	case value.INBOX:
		if err := s.opInbox(); err != nil {
			return true, err
		}
		return s.Status == Blocked, nil
	case value.ERROR:
		s.opError()
		return true, nil
	case value.HALT:
		s.opHalt()
		return true, nil
	case value.DEBUG:
		s.opDebug()
		return false, nil

	default:
		panic(errUnknownOpcode{op: byte(op)})
	}
}

// Step executes exactly one instruction. It is a no-op returning
// immediately if Status is not Extensive.
func (s *State) Step() {
	if s.Status != Extensive {
		return
	}
	cp := s.CurrentCodePoint()
	if cp.Op.HasImmediate() {
		s.Stack.Push(*cp.Op.Immediate)
	}
	holdPC, err := s.runOp(cp.Op.Opcode)
	if err != nil {
		log.Debug("avm machine error", "pc", s.PC, "op", cp.Op.Opcode, "err", err)
		s.Status = Error
		return
	}
	if !holdPC {
		s.PC++
	}
}

// Run executes up to stepCount steps within the time window [tStart, tEnd]
// and returns the resulting Assertion (spec §4.F).
func (s *State) Run(stepCount uint64, tStart, tEnd uint64) Assertion {
	s.ctx = runContext{timeBounds: TimeBounds{tStart, tEnd}}

	if s.Status == Blocked {
		s.Status = Extensive
	}

	var executed uint64
	for executed < stepCount {
		if s.Status == Error || s.Status == Halted || s.Status == Blocked {
			break
		}
		s.Step()
		if s.Status == Blocked {
			// The step that caused Blocked did not complete; don't count it.
			break
		}
		executed++
	}

	if s.Status == Error && !s.Errpc.IsUnset() {
		s.PC = s.Errpc.PC
		s.Status = Extensive
	}

	return Assertion{
		NumSteps:    executed,
		OutMessages: append([]token.Message(nil), s.ctx.outMessages...),
		Logs:        append([]value.Value(nil), s.ctx.logs...),
	}
}
