package canvas

// slotRef locates one value in the VM's register buffers.
type slotRef struct {
	buffer BufferKind
	index  uint8
}

// slotArena hands out register indices for a single buffer. Arenas are
// local to one compilation pass; nothing is shared across compiles.
type slotArena struct {
	buffer   BufferKind
	capacity int
	next     int
}

func newSlotArena(buffer BufferKind, capacity int) *slotArena {
	return &slotArena{buffer: buffer, capacity: capacity}
}

func (a *slotArena) allocate() (uint8, error) {
	if a.next >= a.capacity {
		return 0, &CapacityExceededError{Buffer: a.buffer, Capacity: a.capacity}
	}
	slot := uint8(a.next)
	a.next++
	return slot, nil
}

// slotMap binds every value-producing node to its register.
type slotMap struct {
	uints  *slotArena
	bools  *slotArena
	byNode map[string]slotRef
}

// allocateSlots assigns a register to every value-producing node in the
// sequenced graph. Unsigned-integer constants are placed first, then
// boolean constants, then operation results, each group in sequencer
// order; the constant groups line up with the initial-value sections of
// the serialized program. Terminal nodes store nothing and get no slot.
func allocateSlots(ordered []*Node, capacity int) (*slotMap, error) {
	m := &slotMap{
		uints:  newSlotArena(BufferUint, capacity),
		bools:  newSlotArena(BufferBool, capacity),
		byNode: make(map[string]slotRef, len(ordered)),
	}

	for _, node := range ordered {
		if node.kind == KindConst {
			if err := m.bind(node, BufferUint); err != nil {
				return nil, err
			}
		}
	}
	for _, node := range ordered {
		if node.kind == KindConstBool {
			if err := m.bind(node, BufferBool); err != nil {
				return nil, err
			}
		}
	}
	for _, node := range ordered {
		if node.kind.IsConst() {
			continue
		}
		buffer, hasResult := node.kind.ResultBuffer()
		if !hasResult {
			continue
		}
		if err := m.bind(node, buffer); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *slotMap) bind(node *Node, buffer BufferKind) error {
	arena := m.uints
	if buffer == BufferBool {
		arena = m.bools
	}
	slot, err := arena.allocate()
	if err != nil {
		return err
	}
	m.byNode[node.id] = slotRef{buffer: buffer, index: slot}
	return nil
}

func (m *slotMap) lookup(id string) (slotRef, bool) {
	ref, ok := m.byNode[id]
	return ref, ok
}
