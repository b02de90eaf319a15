package machine

import (
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

func pushBool(s *State, b bool) {
	if b {
		s.Stack.Push(value.NewNumUint64(1))
	} else {
		s.Stack.Push(value.NewNumUint64(0))
	}
}

func (s *State) opLt() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	pushBool(s, a.Lt(&b))
	return nil
}

func (s *State) opGt() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	pushBool(s, a.Gt(&b))
	return nil
}

func (s *State) opSlt() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	pushBool(s, a.Slt(&b))
	return nil
}

func (s *State) opSgt() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	pushBool(s, a.Sgt(&b))
	return nil
}

// opEq implements structural equality, not just numeric equality: two
// Tuples or CodePoints compare equal by content, matching Value.Equal.
func (s *State) opEq() error {
	a, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	b, err := s.Stack.Pop()
	if err != nil {
		return err
	}
	pushBool(s, a.Equal(b))
	return nil
}

func (s *State) opIszero() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	pushBool(s, a.IsZero())
	return nil
}

func (s *State) opAnd() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.And(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opOr() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Or(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opXor() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Xor(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opNot() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Not(&a)
	s.Stack.Push(value.NewNum(z))
	return nil
}

// opByte: pop idx, then x; push byte idx of x (big-endian, MSB-first), 0 if
// idx >= 32.
func (s *State) opByte() error {
	idx, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	x, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	res := x.Byte(&idx)
	s.Stack.Push(value.NewNum(*res))
	return nil
}

// opSignextend: pop pos, then x; sign-extend x from bit 8*pos+7.
func (s *State) opSignextend() error {
	pos, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	x, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.ExtendSign(&x, &pos)
	s.Stack.Push(value.NewNum(z))
	return nil
}
