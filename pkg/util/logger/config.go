package logger

import "go.uber.org/zap"

// Config allows changing an initialized Logger's severity threshold at
// runtime. A zero Config is usable but inert until bound by Logger.Init.
type Config struct {
	level zap.AtomicLevel
}

// SetLevel changes the minimum severity the bound Logger records.
// Calling SetLevel on a Config never bound via Logger.Init is a no-op.
func (c *Config) SetLevel(l Level) {
	if c.level == (zap.AtomicLevel{}) {
		return
	}
	c.level.SetLevel(zapLevel(l).Level())
}
