package canvas

import "fmt"

// BufferKind identifies which of the VM's two register buffers a value
// lives in.
type BufferKind uint8

const (
	// BufferUint is the 256-bit unsigned integer buffer.
	BufferUint BufferKind = iota

	// BufferBool is the boolean buffer.
	BufferBool
)

// String returns "uint" or "bool".
func (b BufferKind) String() string {
	switch b {
	case BufferUint:
		return "uint"
	case BufferBool:
		return "bool"
	default:
		return fmt.Sprintf("BufferKind(%d)", uint8(b))
	}
}

// Opcode is the numeric instruction tag understood by the VM.
type Opcode uint8

// Opcodes, matching the VM's dispatch table.
const (
	OpAdd         Opcode = 0
	OpMul         Opcode = 1
	OpIsEven      Opcode = 2
	OpSpecial     Opcode = 3
	OpReturnUint  Opcode = 4
	OpEqual       Opcode = 5
	OpGreaterThan Opcode = 6
	OpLessThan    Opcode = 7
	OpReturnBool  Opcode = 8
	OpItemPrice   Opcode = 31
	OpSub         Opcode = 32
	OpDiv         Opcode = 33
)

// Kind is the closed set of node kinds a graph may contain. Constant kinds
// carry a literal value and compile to initial buffer contents; every other
// kind compiles to exactly one instruction.
type Kind uint8

const (
	// KindConst is an unsigned-integer literal.
	KindConst Kind = iota

	// KindConstBool is a boolean literal.
	KindConstBool

	// KindAdd is wrapping 256-bit addition.
	KindAdd

	// KindMul is wrapping 256-bit multiplication.
	KindMul

	// KindSub is subtraction; the VM faults on underflow.
	KindSub

	// KindDiv is integer division; the VM faults on a zero divisor.
	KindDiv

	// KindIsEven tests the low bit of its operand.
	KindIsEven

	// KindEqual compares two unsigned integers for equality.
	KindEqual

	// KindGreaterThan is strict greater-than over unsigned integers.
	KindGreaterThan

	// KindLessThan is strict less-than over unsigned integers.
	KindLessThan

	// KindSpecial produces the fixed value 69.
	KindSpecial

	// KindItemPrice produces the price parameter supplied at execution time.
	KindItemPrice

	// KindReturnUint terminates the program with an unsigned-integer result.
	KindReturnUint

	// KindReturnBool terminates the program with 1 (true) or 0 (false).
	KindReturnBool
)

// kindInfo describes the fixed shape of one node kind.
type kindInfo struct {
	name      string
	opcode    Opcode
	isConst   bool // literal node, no instruction emitted
	terminal  bool // ends the instruction stream
	operands  []BufferKind
	result    BufferKind
	hasResult bool
}

var kindTable = map[Kind]kindInfo{
	KindConst:       {name: "const", isConst: true, result: BufferUint, hasResult: true},
	KindConstBool:   {name: "constBool", isConst: true, result: BufferBool, hasResult: true},
	KindAdd:         {name: "add", opcode: OpAdd, operands: []BufferKind{BufferUint, BufferUint}, result: BufferUint, hasResult: true},
	KindMul:         {name: "mul", opcode: OpMul, operands: []BufferKind{BufferUint, BufferUint}, result: BufferUint, hasResult: true},
	KindSub:         {name: "sub", opcode: OpSub, operands: []BufferKind{BufferUint, BufferUint}, result: BufferUint, hasResult: true},
	KindDiv:         {name: "div", opcode: OpDiv, operands: []BufferKind{BufferUint, BufferUint}, result: BufferUint, hasResult: true},
	KindIsEven:      {name: "isEven", opcode: OpIsEven, operands: []BufferKind{BufferUint}, result: BufferBool, hasResult: true},
	KindEqual:       {name: "equal", opcode: OpEqual, operands: []BufferKind{BufferUint, BufferUint}, result: BufferBool, hasResult: true},
	KindGreaterThan: {name: "greaterThan", opcode: OpGreaterThan, operands: []BufferKind{BufferUint, BufferUint}, result: BufferBool, hasResult: true},
	KindLessThan:    {name: "lessThan", opcode: OpLessThan, operands: []BufferKind{BufferUint, BufferUint}, result: BufferBool, hasResult: true},
	KindSpecial:     {name: "special", opcode: OpSpecial, result: BufferUint, hasResult: true},
	KindItemPrice:   {name: "itemPrice", opcode: OpItemPrice, result: BufferUint, hasResult: true},
	KindReturnUint:  {name: "returnUint", opcode: OpReturnUint, operands: []BufferKind{BufferUint}, terminal: true},
	KindReturnBool:  {name: "returnBool", opcode: OpReturnBool, operands: []BufferKind{BufferBool}, terminal: true},
}

// String returns the kind's canonical name, as accepted by ParseKind.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsConst reports whether the kind is a literal-carrying constant.
func (k Kind) IsConst() bool {
	return kindTable[k].isConst
}

// IsTerminal reports whether the kind ends the instruction stream.
func (k Kind) IsTerminal() bool {
	return kindTable[k].terminal
}

// Arity returns the number of operands the kind consumes.
func (k Kind) Arity() int {
	return len(kindTable[k].operands)
}

// OperandBuffer returns the buffer an operand at the given position must
// come from.
func (k Kind) OperandBuffer(i int) BufferKind {
	return kindTable[k].operands[i]
}

// ResultBuffer returns the buffer the kind's result is written to, and
// false for terminal kinds, which produce no stored value.
func (k Kind) ResultBuffer() (BufferKind, bool) {
	info := kindTable[k]
	return info.result, info.hasResult
}

// Opcode returns the instruction tag for the kind. Constant kinds have no
// opcode and return false.
func (k Kind) Opcode() (Opcode, bool) {
	info := kindTable[k]
	return info.opcode, !info.isConst
}

// ParseKind resolves a canonical kind name ("add", "returnUint", ...).
func ParseKind(name string) (Kind, error) {
	for k, info := range kindTable {
		if info.name == name {
			return k, nil
		}
	}
	return 0, &UnknownKindError{Name: name}
}

// opcodeShape returns the operand count and result presence for an opcode,
// or ok=false for opcodes outside the instruction set. Used by the
// serializer and decoder to size each instruction.
func opcodeShape(op Opcode) (operands int, hasResult bool, ok bool) {
	for _, info := range kindTable {
		if info.isConst || info.opcode != op {
			continue
		}
		return len(info.operands), info.hasResult, true
	}
	return 0, false, false
}

// opcodeName returns a printable name for an opcode.
func opcodeName(op Opcode) string {
	for _, info := range kindTable {
		if !info.isConst && info.opcode == op {
			return info.name
		}
	}
	return fmt.Sprintf("op%d", uint8(op))
}

// opcodeInfo returns the full kind shape behind an opcode.
func opcodeInfo(op Opcode) (kindInfo, bool) {
	for _, info := range kindTable {
		if !info.isConst && info.opcode == op {
			return info, true
		}
	}
	return kindInfo{}, false
}
