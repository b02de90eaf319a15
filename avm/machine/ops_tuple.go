package machine

import "github.com/go-avm/avm/avm/value"

// opTget: pop idx, then tup; push tup[idx].
func (s *State) opTget() error {
	idxV, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	tupV, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	tup, ok := tupV.Tuple()
	if !ok {
		return ErrTypeMismatch
	}
	if !idxV.IsUint64() || idxV.Uint64() >= uint64(tup.Size()) {
		return value.ErrIndexOutOfRange
	}
	elem, err := tup.Get(uint8(idxV.Uint64()))
	if err != nil {
		return err
	}
	s.Stack.Push(elem)
	return nil
}

// opTset: pop idx, then tup, then v; push tup.with(idx := v).
func (s *State) opTset() error {
	idxV, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	tupV, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	tup, ok := tupV.Tuple()
	if !ok {
		return ErrTypeMismatch
	}
	if !idxV.IsUint64() || idxV.Uint64() >= uint64(tup.Size()) {
		return value.ErrIndexOutOfRange
	}
	next, err := tup.Set(uint8(idxV.Uint64()), v)
	if err != nil {
		return err
	}
	s.Stack.Push(value.NewTupleValue(next))
	return nil
}

// opTlen: pop tup; push its size.
func (s *State) opTlen() error {
	tupV, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	tup, ok := tupV.Tuple()
	if !ok {
		return ErrTypeMismatch
	}
	s.Stack.Push(value.NewNumUint64(uint64(tup.Size())))
	return nil
}
