package cpu

import "math/bits"

// The 8080 packs five condition flags into a single status byte, the low
// half of the PSW register pair (PUSH PSW / POP PSW). Unlike the 6502's
// status register, three of the eight bit positions are not flags at all:
// bit 1 is hardwired to 1, bits 3 and 5 are hardwired to 0. Any code that
// reconstructs the PSW byte (push, RST-vector diagnostics) must restore
// those fixed bits rather than leave them at their previous value.
const (
	FlagC  byte = 1 << 0 // carry
	fixed1 byte = 1 << 1 // always 1
	FlagP  byte = 1 << 2 // parity (even)
	fixed3 byte = 1 << 3 // always 0
	FlagAC byte = 1 << 4 // auxiliary carry (BCD half-carry)
	fixed5 byte = 1 << 5 // always 0
	FlagZ  byte = 1 << 6 // zero
	FlagS  byte = 1 << 7 // sign
)

// parityTable[v] is true when v has an even number of set bits, matching
// the 8080's parity flag convention (P=1 means even parity).
var parityTable [256]bool

func init() {
	for v := 0; v < 256; v++ {
		parityTable[v] = bits.OnesCount8(uint8(v))%2 == 0
	}
}

// Flags holds the five condition flags as individual bools. Keeping them
// unpacked makes the ALU helpers read naturally (c.Flags.Zero = ...)
// while flagsByte/setFlagsByte handle the packed representation whenever
// the PSW needs to cross the register boundary (PUSH PSW, diagnostics).
type Flags struct {
	Sign     bool
	Zero     bool
	AuxCarry bool
	Parity   bool
	Carry    bool
}

// flagsByte packs Flags into the 8080 status byte, restoring the fixed
// bits (1 at bit 1, 0 at bits 3 and 5) regardless of their previous value.
func (f Flags) flagsByte() byte {
	var b byte
	if f.Sign {
		b |= FlagS
	}
	if f.Zero {
		b |= FlagZ
	}
	if f.AuxCarry {
		b |= FlagAC
	}
	if f.Parity {
		b |= FlagP
	}
	if f.Carry {
		b |= FlagC
	}
	b |= fixed1
	b &^= fixed3
	b &^= fixed5
	return b
}

// setFlagsByte unpacks a status byte (as popped from the stack) into
// Flags. The fixed bits are read back but discarded; they are restored on
// the next flagsByte call regardless of what POP PSW supplied.
func (f *Flags) setFlagsByte(b byte) {
	f.Sign = b&FlagS != 0
	f.Zero = b&FlagZ != 0
	f.AuxCarry = b&FlagAC != 0
	f.Parity = b&FlagP != 0
	f.Carry = b&FlagC != 0
}

// setZSP sets Zero, Sign and Parity from the 8-bit result of an ALU
// operation. Carry and AuxCarry are operation-specific and set by the
// caller.
func (f *Flags) setZSP(result byte) {
	f.Zero = result == 0
	f.Sign = result&0x80 != 0
	f.Parity = parityTable[result]
}
