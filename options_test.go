package canvas

import "testing"

func TestDefaultCompileConfig(t *testing.T) {
	cfg := defaultCompileConfig()

	if cfg.slotCapacity != MaxSlots {
		t.Errorf("Expected default capacity %d, got %d", MaxSlots, cfg.slotCapacity)
	}
	if cfg.missingOperandFallback {
		t.Error("Expected missing operand fallback to default off")
	}
}

func TestWithSlotCapacity(t *testing.T) {
	t.Run("sets the capacity", func(t *testing.T) {
		cfg := defaultCompileConfig()
		WithSlotCapacity(16)(cfg)

		if cfg.slotCapacity != 16 {
			t.Errorf("Expected 16, got %d", cfg.slotCapacity)
		}
	})

	t.Run("clamps to the wire format maximum", func(t *testing.T) {
		cfg := defaultCompileConfig()
		WithSlotCapacity(1000)(cfg)

		if cfg.slotCapacity != MaxSlots {
			t.Errorf("Expected clamp to %d, got %d", MaxSlots, cfg.slotCapacity)
		}
	})
}

func TestWithMissingOperandFallback(t *testing.T) {
	cfg := defaultCompileConfig()
	WithMissingOperandFallback(true)(cfg)

	if !cfg.missingOperandFallback {
		t.Error("Expected fallback enabled")
	}
}
