package canvas

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrTooManyOperands indicates a node already has every operand
	// position its kind declares wired up.
	ErrTooManyOperands = errors.New("canvas: all operand positions already connected")

	// ErrNoResult indicates an edge's producer is a terminal node, which
	// stores no value.
	ErrNoResult = errors.New("canvas: producer node does not yield a value")

	// ErrConstNeedsValue indicates a constant kind was passed to AddNode;
	// constants are created with Const or ConstBool.
	ErrConstNeedsValue = errors.New("canvas: constant kinds require a literal value")

	// ErrTruncatedProgram indicates a serialized program ends in the
	// middle of a field.
	ErrTruncatedProgram = errors.New("canvas: serialized program is truncated")
)

// DuplicateNodeError indicates two nodes were declared with the same id.
type DuplicateNodeError struct {
	ID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("canvas: duplicate node id %q", e.ID)
}

// UnknownReferenceError indicates an edge names a node id absent from the
// graph.
type UnknownReferenceError struct {
	Ref string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("canvas: reference to unknown node %q", e.Ref)
}

// UnknownKindError indicates a kind name that is not in the kind table.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("canvas: unknown node kind %q", e.Name)
}

// CycleError indicates the graph contains a dependency cycle. Nodes holds
// the ids that could not be ordered, sorted.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("canvas: dependency cycle among nodes [%s]", strings.Join(e.Nodes, ", "))
}

// CapacityExceededError indicates a register buffer ran out of slots.
type CapacityExceededError struct {
	Buffer   BufferKind
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("canvas: %s buffer exceeds %d slots", e.Buffer, e.Capacity)
}

// MissingOperandError indicates an operation node has fewer connected
// producers than its arity requires.
type MissingOperandError struct {
	NodeID string
	Want   int
	Got    int
}

func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("canvas: node %q needs %d operands, %d connected", e.NodeID, e.Want, e.Got)
}

// ValueOutOfRangeError indicates a literal does not fit in an unsigned
// 256-bit word.
type ValueOutOfRangeError struct {
	NodeID string
	Value  *big.Int
}

func (e *ValueOutOfRangeError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("canvas: node %q has no literal value", e.NodeID)
	}
	return fmt.Sprintf("canvas: node %q literal %s does not fit in uint256", e.NodeID, e.Value)
}

// TypeMismatchError indicates a producer's value type doesn't match the
// buffer an operand position reads from.
type TypeMismatchError struct {
	NodeID   string
	Operand  int
	Expected BufferKind
	Got      BufferKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("canvas: node %q operand %d: expected %s, got %s", e.NodeID, e.Operand, e.Expected, e.Got)
}

// InvalidOpcodeError indicates a byte in the instruction stream is not a
// known opcode.
type InvalidOpcodeError struct {
	Opcode byte
	Offset int
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("canvas: invalid opcode %d at offset %d", e.Opcode, e.Offset)
}

// CompileError wraps errors that occur while compiling a specific node.
type CompileError struct {
	NodeID string
	Kind   Kind
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("canvas: node %q (%s): %v", e.NodeID, e.Kind, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
