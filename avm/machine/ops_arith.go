package machine

import (
	"github.com/go-avm/avm/avm/stack"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// popNum pops the top of s and requires it to be a Num, folding a type
// mismatch into ErrTypeMismatch rather than panicking.
func popNum(s *stack.DataStack) (uint256.Int, error) {
	v, err := s.Pop()
	if err != nil {
		return uint256.Int{}, err
	}
	n, ok := v.Num()
	if !ok {
		return uint256.Int{}, ErrTypeMismatch
	}
	return n, nil
}

func (s *State) opAdd() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Add(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opMul() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Mul(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opSub() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	var z uint256.Int
	z.Sub(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opDiv() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if b.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.Div(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opSdiv() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if b.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.SDiv(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opMod() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if b.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.Mod(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opSmod() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if b.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.SMod(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opAddmod() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	c, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if c.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.AddMod(&a, &b, &c)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opMulmod() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	c, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if c.IsZero() {
		return ErrDivideByZero
	}
	var z uint256.Int
	z.MulMod(&a, &b, &c)
	s.Stack.Push(value.NewNum(z))
	return nil
}

func (s *State) opExp() error {
	a, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	b, err := popNum(s.Stack)
	if err != nil {
		return err
	}
	if !b.IsUint64() {
		return ErrExponentRange
	}
	var z uint256.Int
	z.Exp(&a, &b)
	s.Stack.Push(value.NewNum(z))
	return nil
}
