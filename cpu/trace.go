package cpu

import "log"

// SetLogger sets a logger that receives trace lines as they're produced.
// cmd/invaders wires this to a *log.Logger writing to stderr when --trace
// is requested; without a logger the lines are only kept for TraceLines.
func (c *CPU) SetLogger(l *log.Logger) {
	c.logger = l
}
