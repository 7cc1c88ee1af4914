// Package interp executes serialized canvas programs, mirroring the
// on-chain VM's semantics. It exists so compiled programs can be tested
// end to end without a deployed contract.
package interp

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/levihackerman-102/canvas"
)

// Execution faults.
var (
	// ErrTruncated indicates the program ends mid-instruction or
	// mid-value.
	ErrTruncated = errors.New("interp: program is truncated")

	// ErrUnderflow indicates a subtraction whose result would be
	// negative.
	ErrUnderflow = errors.New("interp: subtraction underflow")

	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("interp: division by zero")
)

// InvalidOpcodeError indicates an opcode the VM does not implement.
type InvalidOpcodeError struct {
	Opcode byte
	Offset int
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("interp: invalid opcode %d at offset %d", e.Opcode, e.Offset)
}

// Option configures one execution.
type Option func(*config)

type config struct {
	itemPrice *uint256.Int
}

// WithItemPrice supplies the runtime price parameter read by the itemPrice
// opcode. Defaults to zero.
func WithItemPrice(price *uint256.Int) Option {
	return func(c *config) {
		c.itemPrice = price
	}
}

// Run executes a serialized program and returns its result. A program with
// no return instruction yields zero, matching the VM. Boolean results are
// widened to 1 (true) or 0 (false).
func Run(program []byte, opts ...Option) (*uint256.Int, error) {
	cfg := &config{itemPrice: uint256.NewInt(0)}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		uints [canvas.MaxSlots]uint256.Int
		bools [canvas.MaxSlots]bool
	)

	offset := 0

	if offset >= len(program) {
		return nil, ErrTruncated
	}
	uintCount := int(program[offset])
	offset++
	if len(program) < offset+uintCount*canvas.UintWordSize {
		return nil, ErrTruncated
	}
	for i := 0; i < uintCount; i++ {
		uints[i].SetBytes(program[offset : offset+canvas.UintWordSize])
		offset += canvas.UintWordSize
	}

	if offset >= len(program) {
		return nil, ErrTruncated
	}
	boolCount := int(program[offset])
	offset++
	if len(program) < offset+boolCount {
		return nil, ErrTruncated
	}
	for i := 0; i < boolCount; i++ {
		bools[i] = program[offset] != 0
		offset++
	}

	two := uint256.NewInt(2)

	for offset < len(program) {
		opcodeAt := offset
		opcode := canvas.Opcode(program[offset])
		offset++

		switch opcode {
		case canvas.OpAdd:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			uints[ret].Add(&uints[a], &uints[b])

		case canvas.OpMul:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			uints[ret].Mul(&uints[a], &uints[b])

		case canvas.OpSub:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			if uints[a].Lt(&uints[b]) {
				return nil, ErrUnderflow
			}
			uints[ret].Sub(&uints[a], &uints[b])

		case canvas.OpDiv:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			if uints[b].IsZero() {
				return nil, ErrDivisionByZero
			}
			uints[ret].Div(&uints[a], &uints[b])

		case canvas.OpIsEven:
			a, ret, err := readUnary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 2
			bools[ret] = new(uint256.Int).Mod(&uints[a], two).IsZero()

		case canvas.OpEqual:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			bools[ret] = uints[a].Eq(&uints[b])

		case canvas.OpGreaterThan:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			bools[ret] = uints[a].Gt(&uints[b])

		case canvas.OpLessThan:
			a, b, ret, err := readBinary(program, offset)
			if err != nil {
				return nil, err
			}
			offset += 3
			bools[ret] = uints[a].Lt(&uints[b])

		case canvas.OpSpecial:
			ret, err := readNullary(program, offset)
			if err != nil {
				return nil, err
			}
			offset++
			uints[ret].SetUint64(69)

		case canvas.OpItemPrice:
			ret, err := readNullary(program, offset)
			if err != nil {
				return nil, err
			}
			offset++
			uints[ret].Set(cfg.itemPrice)

		case canvas.OpReturnUint:
			if offset >= len(program) {
				return nil, ErrTruncated
			}
			return new(uint256.Int).Set(&uints[program[offset]]), nil

		case canvas.OpReturnBool:
			if offset >= len(program) {
				return nil, ErrTruncated
			}
			if bools[program[offset]] {
				return uint256.NewInt(1), nil
			}
			return uint256.NewInt(0), nil

		default:
			return nil, &InvalidOpcodeError{Opcode: byte(opcode), Offset: opcodeAt}
		}
	}

	// No return instruction was reached.
	return uint256.NewInt(0), nil
}

func readBinary(program []byte, offset int) (a, b, ret uint8, err error) {
	if offset+3 > len(program) {
		return 0, 0, 0, ErrTruncated
	}
	return program[offset], program[offset+1], program[offset+2], nil
}

func readUnary(program []byte, offset int) (a, ret uint8, err error) {
	if offset+2 > len(program) {
		return 0, 0, ErrTruncated
	}
	return program[offset], program[offset+1], nil
}

func readNullary(program []byte, offset int) (ret uint8, err error) {
	if offset+1 > len(program) {
		return 0, ErrTruncated
	}
	return program[offset], nil
}
