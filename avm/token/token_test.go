package token

import (
	"testing"

	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

func TestMessageRoundTrip(t *testing.T) {
	dest := uint256.NewInt(1)
	tok := uint256.NewInt(2)
	amt := uint256.NewInt(100)
	data := value.NewNumUint64(7)

	encoded := Message{Destination: *dest, Token: *tok, Amount: *amt, Data: data}.Encode()
	decoded, err := DecodeMessage(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Destination.Eq(dest) || !decoded.Token.Eq(tok) || !decoded.Amount.Eq(amt) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if !decoded.Data.Equal(data) {
		t.Fatalf("data mismatch")
	}
}

func TestDecodeMessage_WrongArity(t *testing.T) {
	bad := value.NewTupleValue(value.NewTuple(value.NewNumUint64(1)))
	if _, err := DecodeMessage(bad); err != ErrDecode {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestDecodeMessage_NonNumField(t *testing.T) {
	bad := value.NewTupleValue(value.NewTuple(
		value.NewTupleValue(value.EmptyTuple), // destination should be Num
		value.NewNumUint64(0),
		value.NewNumUint64(0),
		value.NewNumUint64(0),
	))
	if _, err := DecodeMessage(bad); err != ErrDecode {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestInMemoryTracker_SpendInsufficientLeavesBalanceUnchanged(t *testing.T) {
	tr := NewInMemoryTracker()
	tok := *uint256.NewInt(5)
	tr.Credit(tok, *uint256.NewInt(10))

	if tr.Spend(tok, *uint256.NewInt(20)) {
		t.Fatalf("spend should have failed on insufficient balance")
	}
	want := *uint256.NewInt(10)
	got := tr.BalanceOf(tok)
	if !got.Eq(&want) {
		t.Fatalf("balance changed after failed spend: got %s, want %s", got.Dec(), want.Dec())
	}

	if !tr.Spend(tok, *uint256.NewInt(10)) {
		t.Fatalf("spend should have succeeded")
	}
	zero := *uint256.NewInt(0)
	got = tr.BalanceOf(tok)
	if !got.Eq(&zero) {
		t.Fatalf("balance after exact spend = %s, want 0", got.Dec())
	}
}
