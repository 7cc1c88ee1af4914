package canvas

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// Node is one computation step in a workflow graph. Nodes are created
// through the Graph builder and are immutable once compilation starts.
type Node struct {
	id        string
	kind      Kind
	uintValue *big.Int // KindConst literal
	boolValue bool     // KindConstBool literal
	inputs    []string // producer ids, in operand position order
}

// ID returns the node's unique identifier.
func (n *Node) ID() string {
	return n.id
}

// Kind returns the node's operation kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Inputs returns the ids of the producers wired into this node, in operand
// position order.
func (n *Node) Inputs() []string {
	out := make([]string, len(n.inputs))
	copy(out, n.inputs)
	return out
}

// UintValue returns the literal of a KindConst node, nil otherwise.
func (n *Node) UintValue() *big.Int {
	if n.uintValue == nil {
		return nil
	}
	return new(big.Int).Set(n.uintValue)
}

// BoolValue returns the literal of a KindConstBool node.
func (n *Node) BoolValue() bool {
	return n.boolValue
}

// Graph is a directed acyclic graph of operation nodes. The zero value is
// not usable; create graphs with NewGraph.
//
// Edge insertion order is significant: the first producer connected to a
// node supplies operand 0, the second operand 1, and so on.
type Graph struct {
	nodes map[string]*Node
	order []string // insertion order, for deterministic iteration
}

// NewGraph creates an empty workflow graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node, 16),
	}
}

// Const adds an unsigned-integer constant node. The value is copied and
// must fit in 256 bits.
func (g *Graph) Const(id string, value *big.Int) error {
	if value == nil || value.Sign() < 0 || value.Cmp(math.MaxBig256) > 0 {
		return &ValueOutOfRangeError{NodeID: id, Value: value}
	}
	return g.insert(&Node{
		id:        id,
		kind:      KindConst,
		uintValue: new(big.Int).Set(value),
	})
}

// ConstBool adds a boolean constant node.
func (g *Graph) ConstBool(id string, value bool) error {
	return g.insert(&Node{
		id:        id,
		kind:      KindConstBool,
		boolValue: value,
	})
}

// AddNode adds an operation node of the given kind. Constant kinds are
// rejected; use Const or ConstBool for those.
func (g *Graph) AddNode(id string, kind Kind) error {
	if _, ok := kindTable[kind]; !ok {
		return &UnknownKindError{Name: kind.String()}
	}
	if kind.IsConst() {
		return ErrConstNeedsValue
	}
	return g.insert(&Node{id: id, kind: kind})
}

// Connect wires the output of node from into the next free operand
// position of node to. Connections type-check against the consumer's
// declared operand buffers.
func (g *Graph) Connect(from, to string) error {
	producer, ok := g.nodes[from]
	if !ok {
		return &UnknownReferenceError{Ref: from}
	}
	consumer, ok := g.nodes[to]
	if !ok {
		return &UnknownReferenceError{Ref: to}
	}

	pos := len(consumer.inputs)
	if pos >= consumer.kind.Arity() {
		return ErrTooManyOperands
	}

	produced, hasResult := producer.kind.ResultBuffer()
	if !hasResult {
		return ErrNoResult
	}
	if expected := consumer.kind.OperandBuffer(pos); produced != expected {
		return &TypeMismatchError{
			NodeID:   to,
			Operand:  pos,
			Expected: expected,
			Got:      produced,
		}
	}

	consumer.inputs = append(consumer.inputs, from)
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ForEachNode iterates over all nodes in insertion order. Return false to
// stop iteration.
func (g *Graph) ForEachNode(fn func(*Node) bool) {
	for _, id := range g.order {
		if !fn(g.nodes[id]) {
			return
		}
	}
}

func (g *Graph) insert(n *Node) error {
	if _, exists := g.nodes[n.id]; exists {
		return &DuplicateNodeError{ID: n.id}
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n.id)
	return nil
}

// validate checks that every edge endpoint exists. The builder API cannot
// produce dangling references, but Compile revalidates so the property
// holds for any future graph source.
func (g *Graph) validate() error {
	for _, id := range g.order {
		for _, ref := range g.nodes[id].inputs {
			if _, ok := g.nodes[ref]; !ok {
				return &UnknownReferenceError{Ref: ref}
			}
		}
	}
	return nil
}
