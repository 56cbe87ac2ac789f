// Package mem implements the arcade board's memory bus: a flat 64 KiB
// address space shared by ROM, working RAM and the video framebuffer,
// plus the port dispatch that connects the CPU to the I/O peripheral.
package mem

import (
	"fmt"
	"os"

	"invaders/cpu"
	"invaders/io8080"
)

// Framebuffer bounds, matching the arcade board's memory-mapped video
// RAM region (0x2400-0x3FFF): 256x224 pixels, 1 bit per pixel, rotated
// 90 degrees in memory.
const (
	VRAMStart = 0x2400
	VRAMEnd   = 0x4000
)

// Bus owns the full 64 KiB address space and the CPU that runs against
// it. Unlike the teacher's two-method, allocation-light 6502 bus, this
// one also dispatches port I/O to the arcade peripheral -- the 8080
// talks to the shift register and player inputs exclusively through IN
// and OUT, never through memory-mapped addresses.
type Bus struct {
	RAM [64 * 1024]byte

	IO *io8080.Peripheral

	CPU *cpu.CPU
}

// New constructs a Bus with its CPU wired to the four hook methods
// below, and a fresh I/O peripheral.
func New() *Bus {
	b := &Bus{
		IO: io8080.New(),
	}
	b.CPU = cpu.New(b.Read, b.Write, b.In, b.Out)
	return b
}

// Read returns the byte at addr. The full 64 KiB range wraps; addresses
// are always taken mod 65536 because addr is already a uint16.
func (b *Bus) Read(addr uint16) byte {
	return b.RAM[addr]
}

// Write stores data at addr. ROM regions are not write-protected here;
// the arcade board's program never writes to them, and self-modifying
// writes to ROM are, per the core's Non-goals, the ROM's problem.
func (b *Bus) Write(addr uint16, data byte) {
	b.RAM[addr] = data
}

// In dispatches an IN instruction to the I/O peripheral, or returns 0 for
// unmapped ports (the arcade board leaves ports 5 and 6 unconnected).
func (b *Bus) In(port byte) byte {
	return b.IO.In(port)
}

// Out dispatches an OUT instruction to the I/O peripheral.
func (b *Bus) Out(port byte, data byte) {
	b.IO.Out(port, data)
}

// Reset clears RAM and CPU state. ROM content is not reloaded; callers
// that want a fresh ROM should call LoadAt again after Reset.
func (b *Bus) Reset() {
	for i := range b.RAM {
		b.RAM[i] = 0
	}
	b.CPU.Reset()
	b.IO.Reset()
}

// LoadAt copies data into RAM starting at start. It is the caller's
// responsibility to ensure start+len(data) fits in the 64 KiB space;
// LoadAt panics on overflow rather than silently truncating a ROM.
func (b *Bus) LoadAt(data []byte, start uint16) {
	if int(start)+len(data) > len(b.RAM) {
		panic(fmt.Sprintf("mem: LoadAt(start=%#04x, len=%d) overflows the 64KiB address space", start, len(data)))
	}
	copy(b.RAM[start:], data)
}

// LoadFileAt reads the ROM file at path and places it at start via
// LoadAt. It returns an error (rather than aborting) on a missing or
// unreadable file, since a bad path is an ordinary, recoverable mistake a
// caller can report and retry.
func (b *Bus) LoadFileAt(path string, start uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mem: loading ROM: %w", err)
	}
	b.LoadAt(data, start)
	return nil
}

// TickCPU runs exactly one CPU instruction and returns the T-states it
// consumed.
func (b *Bus) TickCPU() int {
	return b.CPU.Tick()
}

// SetKeyboardState updates the player-1 input register for a single
// button, matching the board's active-high input convention.
func (b *Bus) SetKeyboardState(button io8080.Button, pressed bool) {
	b.IO.SetButton(button, pressed)
}

// Framebuffer returns the raw VRAM bytes (0x2400-0x3FFF), 1 bit per
// pixel, column-major and rotated 90 degrees -- exactly as the hardware
// lays it out. Translating that into an on-screen image is a rendering
// host's job, out of this core's scope; this accessor only hands over
// the bytes.
func (b *Bus) Framebuffer() []byte {
	return b.RAM[VRAMStart:VRAMEnd]
}

// RunFrame runs CPU instructions until cyclesPerHalf T-states have
// elapsed, delivers the given interrupt vector, then repeats for the
// second half of the frame with the other vector -- the two half-frame
// video interrupts (RST 1 at mid-screen, RST 2 at V-blank) the original
// hardware generates ~60 times a second.
func (b *Bus) RunFrame(cyclesPerHalf int) {
	b.runHalfFrame(cyclesPerHalf)
	b.CPU.Interrupt(1)
	b.runHalfFrame(cyclesPerHalf)
	b.CPU.Interrupt(2)
}

func (b *Bus) runHalfFrame(budget int) {
	spent := 0
	for spent < budget {
		spent += b.TickCPU()
	}
}
