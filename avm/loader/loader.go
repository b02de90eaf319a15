// Package loader deserializes an AO bytecode file into a MachineState ready
// to Run (spec §4.I).
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/go-avm/avm/avm/code"
	"github.com/go-avm/avm/avm/machine"
	"github.com/go-avm/avm/avm/token"
	"github.com/go-avm/avm/avm/value"
	"github.com/holiman/uint256"
)

// CurrentAOVersion is the only bytecode format version this loader accepts.
const CurrentAOVersion uint32 = 1

// ErrVersionMismatch is a host error (spec §7b): the file's version does not
// match CurrentAOVersion. The load aborts cleanly; no machine is produced.
// This is never folded into a running machine's Status.
var ErrVersionMismatch = fmt.Errorf("loader: bytecode version does not match CURRENT_AO_VERSION %d", CurrentAOVersion)

// Load reads an AO bytecode file from r and returns a machine ready to Run,
// using balance as its token ledger. I/O and framing errors and a version
// mismatch are host errors: they are returned as plain Go errors, never as
// a machine in Status = Error.
func Load(r io.Reader, balance token.Tracker) (*machine.State, error) {
	br := &byteReader{r: r}

	version, err := br.readUint32()
	if err != nil {
		return nil, fmt.Errorf("loader: reading version: %w", err)
	}
	if version != CurrentAOVersion {
		log.Error("avm bytecode version mismatch", "got", version, "want", CurrentAOVersion)
		return nil, ErrVersionMismatch
	}

	for {
		id, err := br.readUint32()
		if err != nil {
			return nil, fmt.Errorf("loader: reading extension record: %w", err)
		}
		if id == 0 {
			break
		}
		// Non-zero extension ids are reserved and currently carry no
		// payload; skip with no further action.
		log.Debug("avm loader skipping unknown extension record", "id", id)
	}

	codeCount, err := br.readUint64()
	if err != nil {
		return nil, fmt.Errorf("loader: reading codeCount: %w", err)
	}

	ops := make([]value.Operation, codeCount)
	for i := range ops {
		op, err := readOperation(br)
		if err != nil {
			return nil, fmt.Errorf("loader: reading operation %d: %w", i, err)
		}
		ops[i] = op
	}

	static, err := readValue(br)
	if err != nil {
		return nil, fmt.Errorf("loader: reading static value: %w", err)
	}

	m := machine.New(balance)
	m.Code = code.BuildChain(ops)
	m.PC = 0
	m.StaticVal = static
	log.Info("avm bytecode loaded", "instructions", codeCount)
	return m, nil
}

// byteReader is a small framing helper over io.Reader; it exists so the
// read* helpers below can share one "stop at first error" convention
// without every call site checking err individually.
type byteReader struct {
	r   io.Reader
	err error
}

func (b *byteReader) readN(n int) []byte {
	if b.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		b.err = err
		return nil
	}
	return buf
}

func (b *byteReader) readUint32() (uint32, error) {
	buf := b.readN(4)
	if b.err != nil {
		return 0, b.err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (b *byteReader) readUint64() (uint64, error) {
	buf := b.readN(8)
	if b.err != nil {
		return 0, b.err
	}
	return binary.BigEndian.Uint64(buf), nil
}

func (b *byteReader) readByte() (byte, error) {
	buf := b.readN(1)
	if b.err != nil {
		return 0, b.err
	}
	return buf[0], nil
}

func (b *byteReader) readUint256() (out [32]byte, err error) {
	buf := b.readN(32)
	if b.err != nil {
		return out, b.err
	}
	copy(out[:], buf)
	return out, nil
}

// readOperation parses the wire form [hasImm: u8] || [opcode: u8] ||
// if hasImm then marshal(immediate) (spec §6).
func readOperation(br *byteReader) (value.Operation, error) {
	hasImm, err := br.readByte()
	if err != nil {
		return value.Operation{}, err
	}
	opByte, err := br.readByte()
	if err != nil {
		return value.Operation{}, err
	}
	opcode := value.Opcode(opByte)
	if !opcode.Known() {
		return value.Operation{}, fmt.Errorf("loader: unknown opcode byte 0x%x", opByte)
	}
	op := value.Operation{Opcode: opcode}
	if hasImm != 0 {
		imm, err := readValue(br)
		if err != nil {
			return value.Operation{}, err
		}
		op.Immediate = &imm
	}
	return op, nil
}

// readValue parses one value.Marshal-encoded Value (spec §6).
func readValue(br *byteReader) (value.Value, error) {
	tag, err := br.readByte()
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case tag == value.TagNum:
		be, err := br.readUint256()
		if err != nil {
			return value.Value{}, err
		}
		var n uint256.Int
		n.SetBytes(be[:])
		return value.NewNum(n), nil
	case tag == value.TagCodePt:
		opByte, err := br.readByte()
		if err != nil {
			return value.Value{}, err
		}
		hasImm, err := br.readByte()
		if err != nil {
			return value.Value{}, err
		}
		op := value.Operation{Opcode: value.Opcode(opByte)}
		if hasImm != 0 {
			imm, err := readValue(br)
			if err != nil {
				return value.Value{}, err
			}
			op.Immediate = &imm
		}
		nextHashBytes, err := br.readUint256()
		if err != nil {
			return value.Value{}, err
		}
		var nh uint256.Int
		nh.SetBytes(nextHashBytes[:])
		// A standalone embedded CodePoint value (one read as part of a
		// static value or an immediate, not produced by BuildChain) has no
		// array position of its own; pc is meaningless here and left 0.
		cp := value.NewCodePoint(0, op, nh)
		return value.NewCodePointValue(cp), nil
	case tag >= value.TagTuple && tag <= value.TagTuple+value.MaxArity:
		n := tag - value.TagTuple
		elems := make([]value.Value, n)
		for i := range elems {
			v, err := readValue(br)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewTupleValue(value.NewTuple(elems...)), nil
	default:
		return value.Value{}, fmt.Errorf("loader: unrecognized value tag 0x%x", tag)
	}
}

