// Package canvas compiles node-graph workflows into compact bytecode
// programs for the canvas VM.
//
// A workflow is a directed acyclic graph of typed operation nodes. Constant
// nodes carry literal values; operation nodes consume the outputs of other
// nodes through ordered edges. The compiler orders the graph, assigns each
// value a register ("slot") in one of two per-type buffers, resolves operand
// wiring from the edges, and serializes the result into the VM's binary
// program format.
//
// # Basic Usage
//
// Build a graph, compile it, and serialize:
//
//	g := canvas.NewGraph()
//
//	g.Const("a", big.NewInt(2))
//	g.Const("b", big.NewInt(3))
//	g.AddNode("sum", canvas.KindAdd)
//	g.Connect("a", "sum")
//	g.Connect("b", "sum")
//	g.AddNode("out", canvas.KindReturnUint)
//	g.Connect("sum", "out")
//
//	program, err := g.Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := program.Bytes()
//
// The byte sequence is executed by the VM contract (or by the reference
// interpreter in the interp package), which returns a single 256-bit scalar.
//
// # Value Types
//
// Exactly two scalar types exist: 256-bit unsigned integers and booleans.
// Each has its own register buffer with up to 256 slots, indexed from zero.
// Constants are loaded into the initial buffer contents; operation results
// are written to registers as instructions execute.
//
// # Program Encoding
//
// A serialized program is the initial unsigned-integer values (count byte
// followed by 32-byte big-endian words), the initial boolean values (count
// byte followed by one byte each), and the instruction stream. Every
// instruction is an opcode byte followed by its operand registers and, for
// value-producing opcodes, a result register.
//
// # Determinism
//
// Compiling the same graph twice yields byte-identical output. Nodes with
// no ordering constraint between them are sequenced by node id, so slot
// assignment depends only on the graph's contents.
package canvas
