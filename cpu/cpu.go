// Package cpu implements the Intel 8080 microprocessor as used by the
// Space Invaders arcade board.

package cpu

import (
	"fmt"
	"log"
)

// MemRead reads one byte from the bus at addr.
type MemRead func(addr uint16) byte

// MemWrite writes one byte to the bus at addr.
type MemWrite func(addr uint16, data byte)

// PortIn reads one byte from an input port.
type PortIn func(port byte) byte

// PortOut writes one byte to an output port.
type PortOut func(port byte, data byte)

// TraceLevel controls how much of the execution is logged. It folds the
// original hardware's several compile-time trace flags into one runtime
// switch.
type TraceLevel int

const (
	TraceNone TraceLevel = iota
	TraceInstructions
	TraceInterrupts
)

// CPU has no memory of its own; it interfaces with whatever owns it (the
// arcade Bus) through four hooks bound at construction. This mirrors a
// hardware CPU's pin-level contract: it only ever reads/writes bytes and
// ports, never memory directly.
type CPU struct {
	memRead  MemRead
	memWrite MemWrite
	portIn   PortIn
	portOut  PortOut

	// Registers.
	A, B, C, D, E, H, L byte
	SP, PC              uint16

	Flags Flags

	// IE is the interrupt-enable latch. It starts true (the original
	// hardware boots with interrupts enabled) and is toggled by
	// DI/EI and by Interrupt's own bookkeeping.
	IE bool

	// Halted is set by HLT. Tick executes nothing (it only accounts
	// one cycle per call) until an interrupt wakes the CPU.
	Halted bool

	// Cycles is the running total of T-states consumed, used by
	// callers to pace frame timing against the real hardware's
	// ~2MHz clock.
	Cycles uint64

	lastOpcode byte
	lastPC     uint16

	Trace      TraceLevel
	traceLines []string
	logger     *log.Logger
}

// New constructs a CPU bound to the four given hooks. Interrupts start
// enabled, matching real 8080 reset behavior.
func New(memRead MemRead, memWrite MemWrite, portIn PortIn, portOut PortOut) *CPU {
	return &CPU{
		memRead:  memRead,
		memWrite: memWrite,
		portIn:   portIn,
		portOut:  portOut,
		IE:       true,
	}
}

// Reset zeroes every register and sets PC to 0, the 8080's cold-boot
// state. It does not touch the hooks.
func (c *CPU) Reset() {
	c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0
	c.SP = 0
	c.PC = 0
	c.Flags = Flags{}
	c.IE = true
	c.Halted = false
	c.Cycles = 0
	c.lastOpcode = 0
	c.lastPC = 0
}

func (c *CPU) read(addr uint16) byte       { return c.memRead(addr) }
func (c *CPU) write(addr uint16, data byte) { c.memWrite(addr, data) }
func (c *CPU) in(port byte) byte           { return c.portIn(port) }
func (c *CPU) out(port byte, data byte)    { c.portOut(port, data) }

// fetch8 reads the byte at PC and advances PC.
func (c *CPU) fetch8() byte {
	b := c.read(c.PC)
	c.PC++
	return b
}

// fetch16 reads a little-endian word starting at PC and advances PC by 2.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return word(hi, lo)
}

// word combines a high and low byte into a 16-bit value, little-endian.
func word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func hiByte(w uint16) byte { return byte(w >> 8) }
func loByte(w uint16) byte { return byte(w) }

// Register pairs, read and write. Named after the mnemonics that address
// them (BC, DE, HL, PSW via SP's A/Flags pairing on PUSH PSW).

func (c *CPU) getBC() uint16 { return word(c.B, c.C) }
func (c *CPU) setBC(v uint16) { c.B, c.C = hiByte(v), loByte(v) }

func (c *CPU) getDE() uint16 { return word(c.D, c.E) }
func (c *CPU) setDE(v uint16) { c.D, c.E = hiByte(v), loByte(v) }

func (c *CPU) getHL() uint16 { return word(c.H, c.L) }
func (c *CPU) setHL(v uint16) { c.H, c.L = hiByte(v), loByte(v) }

// push writes a 16-bit value to the stack, high byte first, and
// decrements SP by 2 — matching the 8080's downward-growing stack.
func (c *CPU) push(v uint16) {
	c.SP--
	c.write(c.SP, hiByte(v))
	c.SP--
	c.write(c.SP, loByte(v))
}

// pop reads a 16-bit value off the stack, low byte first, and increments
// SP by 2.
func (c *CPU) pop() uint16 {
	lo := c.read(c.SP)
	c.SP++
	hi := c.read(c.SP)
	c.SP++
	return word(hi, lo)
}

// Tick fetches, decodes and executes exactly one instruction, returning
// the number of T-states it consumed. If the opcode has no entry in the
// dispatch table, Tick panics with a diagnostic naming the opcode and the
// PC it was fetched from — an unimplemented opcode is a programming error
// (wrong ROM, corrupted decode), not a recoverable runtime condition.
func (c *CPU) Tick() int {
	if c.Halted {
		c.Cycles++
		return 1
	}

	pc := c.PC
	opcode := c.fetch8()
	c.lastOpcode = opcode
	c.lastPC = pc

	op := opcodeTable[opcode]
	if !op.Implemented {
		panic(fmt.Sprintf("cpu: unimplemented opcode %#02x at PC=%#04x", opcode, pc))
	}

	extra := c.execute(opcode)
	cycles := int(op.Cycles) + extra
	c.Cycles += uint64(cycles)

	if c.Trace >= TraceInstructions {
		c.trace(fmt.Sprintf("%04x  %-4s  A=%02x BC=%04x DE=%04x HL=%04x SP=%04x F=%08b",
			pc, op.Name, c.A, c.getBC(), c.getDE(), c.getHL(), c.SP, c.Flags.flagsByte()))
	}

	return cycles
}

// Interrupt asserts an edge-triggered interrupt with the given RST vector
// (0-7). If interrupts are disabled, the call is a no-op; otherwise the
// current PC is pushed and execution jumps to vector*8, matching the
// hardware's RST-n behavior used by the video interrupt generator.
func (c *CPU) Interrupt(vector byte) {
	if !c.IE {
		return
	}
	c.Halted = false
	c.IE = false
	c.push(c.PC)
	c.PC = uint16(vector) * 8
	c.Cycles += 11

	if c.Trace >= TraceInterrupts {
		c.trace(fmt.Sprintf("interrupt: RST %d -> PC=%04x", vector, c.PC))
	}
}

func (c *CPU) trace(line string) {
	c.traceLines = append(c.traceLines, line)
	if c.logger != nil {
		c.logger.Println(line)
	}
}

// TraceLines returns and clears whatever has been logged since the last
// call, for callers that want to read the trace without a logger.
func (c *CPU) TraceLines() []string {
	lines := c.traceLines
	c.traceLines = nil
	return lines
}

// LastOpcode reports the most recently fetched opcode and the PC it was
// fetched from, for diagnostics and the debugger.
func (c *CPU) LastOpcode() (opcode byte, pc uint16) {
	return c.lastOpcode, c.lastPC
}
