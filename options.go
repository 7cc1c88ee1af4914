package canvas

// CompileOption configures the Compile() operation.
type CompileOption func(*compileConfig)

// compileConfig holds configuration for the Compile() method.
type compileConfig struct {
	slotCapacity           int
	missingOperandFallback bool
}

// defaultCompileConfig returns the default compile configuration.
func defaultCompileConfig() *compileConfig {
	return &compileConfig{
		slotCapacity:           MaxSlots,
		missingOperandFallback: false,
	}
}

// WithSlotCapacity lowers the per-buffer register limit below the wire
// format's maximum of 256. Values above the maximum are clamped.
func WithSlotCapacity(n int) CompileOption {
	return func(c *compileConfig) {
		if n > MaxSlots {
			n = MaxSlots
		}
		c.slotCapacity = n
	}
}

// WithMissingOperandFallback makes unconnected operand positions read
// register 0 instead of failing with MissingOperandError. This reproduces
// the legacy toolchain's behavior; leave it off unless byte-for-byte
// output compatibility with that toolchain is required.
func WithMissingOperandFallback(enabled bool) CompileOption {
	return func(c *compileConfig) {
		c.missingOperandFallback = enabled
	}
}
