package canvas

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// Wire format constants.
const (
	// MaxSlots is the number of registers in each VM buffer. Register
	// indices are single bytes, 0 through 255.
	MaxSlots = 256

	// MaxInitialValues is the most initial values one buffer section can
	// carry: the count field is a single byte. A full buffer of 256
	// registers is still addressable, but the 256th can only hold an
	// operation result, never a constant.
	MaxInitialValues = 255

	// UintWordSize is the encoded width of one unsigned-integer value.
	UintWordSize = 32
)

// Bytes serializes the program into the VM's wire format:
//
//	count of initial uint values        (1 byte)
//	initial uint values                 (32 bytes each, big-endian)
//	count of initial bool values        (1 byte)
//	initial bool values                 (1 byte each, 0x00 or 0x01)
//	instruction stream                  (opcode + operands + result)
//
// Instruction field widths follow each opcode's declared shape; one byte
// per operand register and one byte for the result register, when present.
//
// Each count field is a single byte, so a program carrying more than
// MaxInitialValues constants in either buffer cannot be encoded and fails
// with CapacityExceededError.
func (p *Program) Bytes() ([]byte, error) {
	if len(p.Uints) > MaxInitialValues {
		return nil, &CapacityExceededError{Buffer: BufferUint, Capacity: MaxInitialValues}
	}
	if len(p.Bools) > MaxInitialValues {
		return nil, &CapacityExceededError{Buffer: BufferBool, Capacity: MaxInitialValues}
	}

	size := 2 + len(p.Uints)*UintWordSize + len(p.Bools)
	for _, instr := range p.Instructions {
		operands, hasResult, ok := opcodeShape(instr.Op)
		if !ok {
			return nil, &InvalidOpcodeError{Opcode: byte(instr.Op)}
		}
		size += 1 + operands
		if hasResult {
			size++
		}
	}

	out := make([]byte, 0, size)

	out = append(out, byte(len(p.Uints)))
	for _, v := range p.Uints {
		if v == nil || v.Sign() < 0 || v.Cmp(math.MaxBig256) > 0 {
			return nil, &ValueOutOfRangeError{Value: v}
		}
		out = append(out, math.U256Bytes(new(big.Int).Set(v))...)
	}

	out = append(out, byte(len(p.Bools)))
	for _, v := range p.Bools {
		if v {
			out = append(out, 0x01)
		} else {
			out = append(out, 0x00)
		}
	}

	for _, instr := range p.Instructions {
		operands, hasResult, _ := opcodeShape(instr.Op)
		out = append(out, byte(instr.Op))
		for i := 0; i < operands; i++ {
			var slot uint8
			if i < len(instr.Operands) {
				slot = instr.Operands[i]
			}
			out = append(out, slot)
		}
		if hasResult {
			out = append(out, instr.Result)
		}
	}

	return out, nil
}

// DecodeProgram parses a serialized program back into its Program form.
// Useful for inspection and testing; DecodeProgram(p.Bytes()) reproduces p
// for any program this package emits.
func DecodeProgram(data []byte) (*Program, error) {
	p := &Program{}
	offset := 0

	if offset >= len(data) {
		return nil, ErrTruncatedProgram
	}
	uintCount := int(data[offset])
	offset++

	if len(data) < offset+uintCount*UintWordSize {
		return nil, ErrTruncatedProgram
	}
	for i := 0; i < uintCount; i++ {
		p.Uints = append(p.Uints, new(big.Int).SetBytes(data[offset:offset+UintWordSize]))
		offset += UintWordSize
	}

	if offset >= len(data) {
		return nil, ErrTruncatedProgram
	}
	boolCount := int(data[offset])
	offset++

	if len(data) < offset+boolCount {
		return nil, ErrTruncatedProgram
	}
	for i := 0; i < boolCount; i++ {
		p.Bools = append(p.Bools, data[offset] != 0)
		offset++
	}

	for offset < len(data) {
		op := Opcode(data[offset])
		operands, hasResult, ok := opcodeShape(op)
		if !ok {
			return nil, &InvalidOpcodeError{Opcode: data[offset], Offset: offset}
		}
		offset++

		width := operands
		if hasResult {
			width++
		}
		if len(data) < offset+width {
			return nil, ErrTruncatedProgram
		}

		instr := Instruction{Op: op, Operands: make([]uint8, operands)}
		copy(instr.Operands, data[offset:offset+operands])
		offset += operands
		if hasResult {
			instr.Result = data[offset]
			instr.HasResult = true
			offset++
		}
		p.Instructions = append(p.Instructions, instr)
	}

	return p, nil
}
