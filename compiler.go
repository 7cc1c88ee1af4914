package canvas

import (
	"fmt"
	"math/big"
	"strings"
)

// Instruction is one fixed-shape operation record: an opcode, its operand
// registers in position order, and a result register for value-producing
// opcodes.
type Instruction struct {
	Op        Opcode
	Operands  []uint8
	Result    uint8
	HasResult bool
}

// String renders the instruction as e.g. "add u[0] u[1] -> u[3]".
func (in Instruction) String() string {
	info, ok := opcodeInfo(in.Op)
	if !ok {
		return fmt.Sprintf("op%d", uint8(in.Op))
	}

	var b strings.Builder
	b.WriteString(info.name)
	for i, slot := range in.Operands {
		buffer := BufferUint
		if i < len(info.operands) {
			buffer = info.operands[i]
		}
		fmt.Fprintf(&b, " %s[%d]", bufferLetter(buffer), slot)
	}
	if in.HasResult {
		fmt.Fprintf(&b, " -> %s[%d]", bufferLetter(info.result), in.Result)
	}
	return b.String()
}

func bufferLetter(buffer BufferKind) string {
	if buffer == BufferBool {
		return "b"
	}
	return "u"
}

// Program is a compiled workflow: the initial register contents for both
// buffers, in slot order, and the instruction stream. It serializes 1:1 to
// the VM's wire format via Bytes.
type Program struct {
	Uints        []*big.Int
	Bools        []bool
	Instructions []Instruction
}

// Compile transforms the graph into a Program.
//
// The pass sequences the graph (rejecting cycles), assigns every value a
// register, resolves each operation's operands from its incoming edges,
// and emits one instruction per operation node in sequence order. The
// instruction stream is cut after the first return-kind instruction;
// nodes sequenced later still compile (and constants still occupy
// registers) but contribute no instructions.
//
// Compile does not mutate the graph and shares no state across calls, so
// independent graphs may be compiled concurrently.
func (g *Graph) Compile(opts ...CompileOption) (*Program, error) {
	cfg := defaultCompileConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	ordered, err := sequence(g)
	if err != nil {
		return nil, err
	}

	slots, err := allocateSlots(ordered, cfg.slotCapacity)
	if err != nil {
		return nil, err
	}

	program := &Program{}
	for _, node := range ordered {
		if node.kind == KindConst {
			program.Uints = append(program.Uints, new(big.Int).Set(node.uintValue))
		}
	}
	for _, node := range ordered {
		if node.kind == KindConstBool {
			program.Bools = append(program.Bools, node.boolValue)
		}
	}

	for _, node := range ordered {
		if node.kind.IsConst() {
			continue
		}

		instr, err := emit(node, slots, cfg)
		if err != nil {
			return nil, &CompileError{NodeID: node.id, Kind: node.kind, Err: err}
		}
		program.Instructions = append(program.Instructions, instr)
	}

	program.Instructions = truncateAtReturn(program.Instructions)

	return program, nil
}

// emit builds the instruction for one operation node, resolving operand
// registers from the node's incoming edges.
func emit(node *Node, slots *slotMap, cfg *compileConfig) (Instruction, error) {
	opcode, _ := node.kind.Opcode()
	arity := node.kind.Arity()

	if len(node.inputs) < arity && !cfg.missingOperandFallback {
		return Instruction{}, &MissingOperandError{
			NodeID: node.id,
			Want:   arity,
			Got:    len(node.inputs),
		}
	}

	operands := make([]uint8, arity)
	for i := 0; i < arity; i++ {
		if i >= len(node.inputs) {
			operands[i] = 0 // legacy fallback register
			continue
		}
		ref, ok := slots.lookup(node.inputs[i])
		if !ok {
			return Instruction{}, &UnknownReferenceError{Ref: node.inputs[i]}
		}
		operands[i] = ref.index
	}

	instr := Instruction{Op: opcode, Operands: operands}
	if ref, ok := slots.lookup(node.id); ok {
		instr.Result = ref.index
		instr.HasResult = true
	}
	return instr, nil
}

// truncateAtReturn cuts the stream after the first terminal instruction;
// anything past it could never execute.
func truncateAtReturn(instructions []Instruction) []Instruction {
	for i, instr := range instructions {
		info, ok := opcodeInfo(instr.Op)
		if ok && info.terminal {
			return instructions[:i+1]
		}
	}
	return instructions
}
