package machine

import "github.com/go-avm/avm/avm/value"

func (s *State) opHash() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	h := v.Hash()
	s.Stack.Push(value.NewNum(h))
	return nil
}

func (s *State) opType() error {
	v, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	var tag uint64
	switch v.Kind() {
	case value.KindNum:
		tag = uint64(value.TagNum)
	case value.KindCodePoint:
		tag = uint64(value.TagCodePt)
	case value.KindTuple:
		tag = uint64(value.TagTuple)
	}
	s.Stack.Push(value.NewNumUint64(tag))
	return nil
}
