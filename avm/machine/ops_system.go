package machine

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
)

// opLog appends the popped value to the assertion's logs.
func (s *State) opLog() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	s.ctx.logs = append(s.ctx.logs, v)
	return nil
}

// opBreakpoint parks the machine in Blocked without consuming or advancing
// anything; it is re-entered, unchanged, on the next Run.
func (s *State) opBreakpoint() {
	s.Status = Blocked
}

// opDebug is an observable no-op on machine state; it only ever reaches the
// host log, never the hashed state.
func (s *State) opDebug() {
	log.Debug("avm debug instruction", "pc", s.PC)
}

// opSend pops a value decoded as a Message. A decode failure is a machine
// Error. On success it attempts to spend the message's token/amount from
// the ledger; insufficient balance blocks the machine and restores the
// popped value so the instruction is retried verbatim on the next Run.
func (s *State) opSend() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	msg, err := token.DecodeMessage(v)
	if err != nil {
		return ErrTypeMismatch
	}
	if !s.Balance.Spend(msg.Token, msg.Amount) {
		s.Stack.Push(v)
		s.Status = Blocked
		return nil
	}
	s.ctx.outMessages = append(s.ctx.outMessages, msg)
	return nil
}

// opNbsend is the non-blocking variant: it always consumes the pop and
// always advances; it pushes 1 on success, 0 on insufficient balance.
func (s *State) opNbsend() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	msg, err := token.DecodeMessage(v)
	if err != nil {
		return ErrTypeMismatch
	}
	if s.Balance.Spend(msg.Token, msg.Amount) {
		s.ctx.outMessages = append(s.ctx.outMessages, msg)
		pushBool(s, true)
	} else {
		pushBool(s, false)
	}
	return nil
}

// opGettime pushes the assertion's time bounds as a 2-tuple (lo, hi).
func (s *State) opGettime() error {
	lo := value.NewNumUint64(s.ctx.timeBounds[0])
	hi := value.NewNumUint64(s.ctx.timeBounds[1])
	s.Stack.Push(value.NewTupleValue(value.NewTuple(lo, hi)))
	return nil
}

// opInbox pops a tuple; if it equals the current inbox the machine blocks
// (waiting for more messages) and restores the popped value so the
// instruction retries verbatim. Otherwise it pushes a copy of the current
// inbox.
func (s *State) opInbox() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	if v.Equal(s.Inbox) {
		s.Stack.Push(v)
		s.Status = Blocked
		return nil
	}
	s.Stack.Push(s.Inbox)
	return nil
}

// opError forces the Error status.
func (s *State) opError() {
	s.Status = Error
}

// opHalt enters the Halted status.
func (s *State) opHalt() {
	s.Status = Halted
}
