package dispatcher

// Config controls optional dispatcher behavior.
type Config struct {
	// EnableMetrics turns on per-command counters and timings.
	EnableMetrics bool

	// RecoverFromPanic converts a panicking command into an error result
	// instead of crashing the host.
	RecoverFromPanic bool
}

// DefaultConfig recovers from panics and keeps no metrics.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true}
}

// WithMetrics returns c with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns c with panic recovery set to on.
func (c Config) WithPanicRecovery(on bool) Config {
	c.RecoverFromPanic = on
	return c
}
