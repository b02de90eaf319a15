package machine

import "github.com/go-avm/avm/avm/value"

// opPop discards the top value.
func (s *State) opPop() error {
	return s.Stack.PopClear()
}

// opSpush pushes a copy of staticVal.
func (s *State) opSpush() error {
	s.Stack.Push(s.StaticVal)
	return nil
}

// opRpush pushes a copy of registerVal.
func (s *State) opRpush() error {
	s.Stack.Push(s.RegisterVal)
	return nil
}

// opRset pops into registerVal.
func (s *State) opRset() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	s.RegisterVal = v
	return nil
}

// opJump pops a CodePoint and jumps to it. holdPC is always true: either it
// jumped (pc set to the target) or it errored (pc must not advance either).
func (s *State) opJump() (holdPC bool, err error) {
	v, err := s.Stack.Pop()
	if err != nil {
		return true, err
	}
	cp, ok := v.CodePoint()
	if !ok {
		return true, ErrTypeMismatch
	}
	s.PC = cp.PC
	return true, nil
}

// opCjump pops target, then cond. If cond != 0 it jumps; otherwise it falls
// through (the caller advances pc normally).
func (s *State) opCjump() (holdPC bool, err error) {
	t, err := s.Stack.Pop()
	if err != nil {
		return true, err
	}
	cond, err := popNum(s.Stack)
	if err != nil {
		return true, err
	}
	if cond.IsZero() {
		return false, nil
	}
	cp, ok := t.CodePoint()
	if !ok {
		return true, ErrTypeMismatch
	}
	s.PC = cp.PC
	return true, nil
}

func (s *State) opStackempty() error {
	pushBool(s, s.Stack.Size() == 0)
	return nil
}

func (s *State) opAuxstackempty() error {
	pushBool(s, s.AuxStack.Size() == 0)
	return nil
}

// opPcpush pushes the current code point (the instruction being executed).
func (s *State) opPcpush() error {
	s.Stack.Push(value.NewCodePointValue(s.CurrentCodePoint()))
	return nil
}

// opAuxpush moves the main stack's top onto the aux stack.
func (s *State) opAuxpush() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	s.AuxStack.Push(v)
	return nil
}

// opAuxpop moves the aux stack's top onto the main stack.
func (s *State) opAuxpop() error {
	v, err := s.AuxStack.Pop()
	if err != nil {
		return err
	}
	s.Stack.Push(v)
	return nil
}

func (s *State) opErrpush() error {
	s.Stack.Push(value.NewCodePointValue(s.Errpc))
	return nil
}

func (s *State) opErrset() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	cp, ok := v.CodePoint()
	if !ok {
		return ErrTypeMismatch
	}
	s.Errpc = cp
	return nil
}

// opDup0/1/2 push a copy of slot 0/1/2 without removing anything: pure peek
// + push, no hash-chain invalidation since nothing below the new top moves.
func (s *State) opDup(depth int) error {
	v, err := s.Stack.Peek(depth)
	if err != nil {
		return err
	}
	s.Stack.Push(v)
	return nil
}

// opSwap swaps slot 0 with slot depth; the slots strictly between them keep
// their position. Both touched slots have their hash-chain entries
// invalidated via PrepForMod before the swap.
func (s *State) opSwap(depth int) error {
	if err := s.Stack.PrepForMod(depth + 1); err != nil {
		return err
	}
	top, err := s.Stack.Peek(0)
	if err != nil {
		return err
	}
	other, err := s.Stack.Peek(depth)
	if err != nil {
		return err
	}
	if err := s.Stack.Set(0, other); err != nil {
		return err
	}
	if err := s.Stack.Set(depth, top); err != nil {
		return err
	}
	return nil
}
