package canvas

import (
	"errors"
	"testing"
)

func orderedIDs(t *testing.T, g *Graph) []string {
	t.Helper()
	ordered, err := sequence(g)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	ids := make([]string, len(ordered))
	for i, n := range ordered {
		ids[i] = n.ID()
	}
	return ids
}

func TestSequenceProducersFirst(t *testing.T) {
	g := NewGraph()
	mustConst(t, g, "x", 1)
	mustConst(t, g, "y", 2)
	mustNode(t, g, "sum", KindAdd)
	mustNode(t, g, "out", KindReturnUint)
	mustConnect(t, g, "x", "sum")
	mustConnect(t, g, "y", "sum")
	mustConnect(t, g, "sum", "out")

	ids := orderedIDs(t, g)
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}

	if pos["x"] > pos["sum"] || pos["y"] > pos["sum"] {
		t.Errorf("Expected operands before sum, got %v", ids)
	}
	if pos["sum"] > pos["out"] {
		t.Errorf("Expected sum before out, got %v", ids)
	}
}

func TestSequenceTieBreak(t *testing.T) {
	t.Run("ready nodes ordered by id", func(t *testing.T) {
		g := NewGraph()
		mustConst(t, g, "zebra", 1)
		mustConst(t, g, "apple", 2)
		mustConst(t, g, "mango", 3)

		ids := orderedIDs(t, g)
		want := []string{"apple", "mango", "zebra"}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("Expected %v, got %v", want, ids)
			}
		}
	})

	t.Run("independent of insertion order", func(t *testing.T) {
		build := func(insertOrder []string) []string {
			g := NewGraph()
			for _, id := range insertOrder {
				mustConst(t, g, id, 1)
			}
			return orderedIDs(t, g)
		}

		first := build([]string{"a", "b", "c"})
		second := build([]string{"c", "a", "b"})

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("Expected identical orders, got %v and %v", first, second)
			}
		}
	})

	t.Run("unblocked node beats later constants", func(t *testing.T) {
		// "aa" unlocks "ab", which sorts before the untouched "zz".
		g := NewGraph()
		mustConst(t, g, "aa", 4)
		mustConst(t, g, "zz", 5)
		mustNode(t, g, "ab", KindIsEven)
		mustConnect(t, g, "aa", "ab")

		ids := orderedIDs(t, g)
		want := []string{"aa", "ab", "zz"}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("Expected %v, got %v", want, ids)
			}
		}
	})
}

func TestSequenceCycle(t *testing.T) {
	t.Run("two-node cycle", func(t *testing.T) {
		g := NewGraph()
		mustNode(t, g, "a", KindAdd)
		mustNode(t, g, "b", KindAdd)
		mustConnect(t, g, "a", "b")
		mustConnect(t, g, "b", "a")

		_, err := sequence(g)

		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("Expected CycleError, got %v", err)
		}
		if len(cycleErr.Nodes) != 2 {
			t.Errorf("Expected 2 nodes in cycle, got %v", cycleErr.Nodes)
		}
	})

	t.Run("self loop", func(t *testing.T) {
		g := NewGraph()
		mustConst(t, g, "c", 1)
		mustNode(t, g, "a", KindAdd)
		mustConnect(t, g, "c", "a")
		mustConnect(t, g, "a", "a")

		_, err := sequence(g)

		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("Expected CycleError, got %v", err)
		}
	})

	t.Run("cycle reported through Compile before any output", func(t *testing.T) {
		g := NewGraph()
		mustNode(t, g, "a", KindAdd)
		mustNode(t, g, "b", KindAdd)
		mustConnect(t, g, "a", "b")
		mustConnect(t, g, "b", "a")
		mustConnect(t, g, "b", "b")

		program, err := g.Compile()

		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("Expected CycleError, got %v", err)
		}
		if program != nil {
			t.Error("Expected no partial program on cycle")
		}
	})
}

func TestSequenceEmptyGraph(t *testing.T) {
	g := NewGraph()
	ordered, err := sequence(g)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if len(ordered) != 0 {
		t.Errorf("Expected empty order, got %d nodes", len(ordered))
	}
}
