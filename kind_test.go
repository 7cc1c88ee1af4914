package canvas

import (
	"errors"
	"testing"
)

func TestOpcodeValues(t *testing.T) {
	// The numeric values are the VM's dispatch table and must not drift.
	tests := []struct {
		kind Kind
		want Opcode
	}{
		{KindAdd, 0},
		{KindMul, 1},
		{KindIsEven, 2},
		{KindSpecial, 3},
		{KindReturnUint, 4},
		{KindEqual, 5},
		{KindGreaterThan, 6},
		{KindLessThan, 7},
		{KindReturnBool, 8},
		{KindItemPrice, 31},
		{KindSub, 32},
		{KindDiv, 33},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			op, ok := tt.kind.Opcode()
			if !ok {
				t.Fatalf("Expected %s to have an opcode", tt.kind)
			}
			if op != tt.want {
				t.Errorf("Expected opcode %d, got %d", tt.want, op)
			}
		})
	}
}

func TestKindShapes(t *testing.T) {
	t.Run("constants have no opcode", func(t *testing.T) {
		if _, ok := KindConst.Opcode(); ok {
			t.Error("Expected KindConst to have no opcode")
		}
		if _, ok := KindConstBool.Opcode(); ok {
			t.Error("Expected KindConstBool to have no opcode")
		}
	})

	t.Run("arity", func(t *testing.T) {
		tests := []struct {
			kind Kind
			want int
		}{
			{KindConst, 0},
			{KindAdd, 2},
			{KindSub, 2},
			{KindIsEven, 1},
			{KindSpecial, 0},
			{KindItemPrice, 0},
			{KindReturnUint, 1},
		}
		for _, tt := range tests {
			if got := tt.kind.Arity(); got != tt.want {
				t.Errorf("%s: expected arity %d, got %d", tt.kind, tt.want, got)
			}
		}
	})

	t.Run("result buffers", func(t *testing.T) {
		if buf, ok := KindAdd.ResultBuffer(); !ok || buf != BufferUint {
			t.Errorf("Expected add to produce into uint buffer, got %s/%t", buf, ok)
		}
		if buf, ok := KindIsEven.ResultBuffer(); !ok || buf != BufferBool {
			t.Errorf("Expected isEven to produce into bool buffer, got %s/%t", buf, ok)
		}
		if _, ok := KindReturnUint.ResultBuffer(); ok {
			t.Error("Expected returnUint to produce no stored value")
		}
		if _, ok := KindReturnBool.ResultBuffer(); ok {
			t.Error("Expected returnBool to produce no stored value")
		}
	})

	t.Run("terminals", func(t *testing.T) {
		for kind := range kindTable {
			terminal := kind == KindReturnUint || kind == KindReturnBool
			if kind.IsTerminal() != terminal {
				t.Errorf("%s: expected IsTerminal %t", kind, terminal)
			}
		}
	})
}

func TestParseKind(t *testing.T) {
	t.Run("round trips every kind", func(t *testing.T) {
		for kind := range kindTable {
			parsed, err := ParseKind(kind.String())
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", kind.String(), err)
			}
			if parsed != kind {
				t.Errorf("Expected %v, got %v", kind, parsed)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseKind("modulo")

		var kindErr *UnknownKindError
		if !errors.As(err, &kindErr) {
			t.Fatalf("Expected UnknownKindError, got %v", err)
		}
		if kindErr.Name != "modulo" {
			t.Errorf("Expected name %q, got %q", "modulo", kindErr.Name)
		}
	})
}

func TestOpcodeShape(t *testing.T) {
	tests := []struct {
		op        Opcode
		operands  int
		hasResult bool
	}{
		{OpAdd, 2, true},
		{OpMul, 2, true},
		{OpSub, 2, true},
		{OpDiv, 2, true},
		{OpIsEven, 1, true},
		{OpEqual, 2, true},
		{OpGreaterThan, 2, true},
		{OpLessThan, 2, true},
		{OpSpecial, 0, true},
		{OpItemPrice, 0, true},
		{OpReturnUint, 1, false},
		{OpReturnBool, 1, false},
	}

	for _, tt := range tests {
		t.Run(opcodeName(tt.op), func(t *testing.T) {
			operands, hasResult, ok := opcodeShape(tt.op)
			if !ok {
				t.Fatalf("Expected opcode %d to be known", tt.op)
			}
			if operands != tt.operands || hasResult != tt.hasResult {
				t.Errorf("Expected %d operands/result=%t, got %d/%t",
					tt.operands, tt.hasResult, operands, hasResult)
			}
		})
	}

	t.Run("unknown opcode", func(t *testing.T) {
		if _, _, ok := opcodeShape(Opcode(99)); ok {
			t.Error("Expected opcode 99 to be unknown")
		}
	})
}
