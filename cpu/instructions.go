package cpu

import "invaders/mask"

// Instruction decoding follows the 8080's own bit-field convention rather
// than enumerating 256 cases: most opcodes are built from a 2-bit group
// selector in bits 7:6, a 3-bit destination/operation selector in bits
// 5:3, and a 3-bit source selector in bits 2:0. operand/setOperand below
// implement the register-selector half of that decode (opcode & 0x07, or
// (opcode>>3) & 0x07), mirroring how the original hardware's MOV helper
// dereferences that same field. The two 3-bit fields are pulled out with
// mask.Range, whose 1-indexed, MSB-first convention reads naturally for
// opcode bit-fields (mask.I3-mask.I5 is exactly "bits 5 down to 3" in the
// usual big-endian instruction-set notation), and so is the 3-bit
// condition/RST field in bits 5:3; the 2-bit group and register-pair
// selectors are narrow enough that a plain shift-and-mask is clearer.

// operand returns the value addressed by a 3-bit register selector:
// 0-5 are B,C,D,E,H,L; 6 is the memory byte at HL; 7 is A.
func (c *CPU) operand(sel byte) byte {
	switch sel & 0x07 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read(c.getHL())
	default:
		return c.A
	}
}

// setOperand writes v to the register addressed by a 3-bit selector,
// using the same encoding as operand.
func (c *CPU) setOperand(sel byte, v byte) {
	switch sel & 0x07 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write(c.getHL(), v)
	default:
		c.A = v
	}
}

// regPair returns the value of a 2-bit register-pair selector: 0=BC,
// 1=DE, 2=HL, 3=SP (or, in the PUSH/POP PSW context, A+flags — handled
// separately since that case never shares this helper with SP).
func (c *CPU) regPair(sel byte) uint16 {
	switch sel & 0x03 {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	default:
		return c.SP
	}
}

func (c *CPU) setRegPair(sel byte, v uint16) {
	switch sel & 0x03 {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// condition evaluates one of the eight 3-bit branch conditions used by
// Jccc/Cccc/Rccc: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *CPU) condition(sel byte) bool {
	switch sel & 0x07 {
	case 0:
		return !c.Flags.Zero
	case 1:
		return c.Flags.Zero
	case 2:
		return !c.Flags.Carry
	case 3:
		return c.Flags.Carry
	case 4:
		return !c.Flags.Parity
	case 5:
		return c.Flags.Parity
	case 6:
		return !c.Flags.Sign
	default:
		return c.Flags.Sign
	}
}

// execute runs the instruction identified by opcode (already fetched;
// c.PC points just past it) and returns any additional cycles beyond the
// opcode table's base count — taken conditional calls/returns cost more
// than the untaken case; conditional jumps cost the same either way.
func (c *CPU) execute(opcode byte) int {
	switch {
	case opcode == 0x76:
		c.Halted = true
		return 0

	// MOV r1,r2 -- 01dddsss
	case opcode&0xC0 == 0x40:
		dst := mask.Range(opcode, mask.I3, mask.I5)
		src := mask.Range(opcode, mask.I6, mask.I8)
		c.setOperand(dst, c.operand(src))
		return 0

	// ALU a,r -- 10ooorrr
	case opcode&0xC0 == 0x80:
		op := mask.Range(opcode, mask.I3, mask.I5)
		v := c.operand(mask.Range(opcode, mask.I6, mask.I8))
		c.alu(op, v)
		return 0
	}

	switch opcode & 0xC7 {
	case 0x04: // INR r -- 00ddd100
		sel := mask.Range(opcode, mask.I3, mask.I5)
		v := c.inc8(c.operand(sel))
		c.setOperand(sel, v)
		return 0
	case 0x05: // DCR r -- 00ddd101
		sel := mask.Range(opcode, mask.I3, mask.I5)
		v := c.dec8(c.operand(sel))
		c.setOperand(sel, v)
		return 0
	case 0x06: // MVI r,d8 -- 00ddd110
		sel := mask.Range(opcode, mask.I3, mask.I5)
		c.setOperand(sel, c.fetch8())
		return 0
	}

	switch opcode & 0xCF {
	case 0x01: // LXI rp,d16
		c.setRegPair((opcode>>4)&0x03, c.fetch16())
		return 0
	case 0x03: // INX rp
		c.setRegPair((opcode>>4)&0x03, c.regPair((opcode>>4)&0x03)+1)
		return 0
	case 0x0B: // DCX rp
		c.setRegPair((opcode>>4)&0x03, c.regPair((opcode>>4)&0x03)-1)
		return 0
	case 0x09: // DAD rp
		c.dad((opcode >> 4) & 0x03)
		return 0
	}

	switch opcode & 0xC7 {
	case 0xC0: // Rccc
		if c.condition(mask.Range(opcode, mask.I3, mask.I5)) {
			c.PC = c.pop()
			return 6
		}
		return 0
	case 0xC2: // Jccc a16
		addr := c.fetch16()
		if c.condition(mask.Range(opcode, mask.I3, mask.I5)) {
			c.PC = addr
		}
		return 0
	case 0xC4: // Cccc a16
		addr := c.fetch16()
		if c.condition(mask.Range(opcode, mask.I3, mask.I5)) {
			c.push(c.PC)
			c.PC = addr
			return 6
		}
		return 0
	case 0xC7: // RST n
		vector := mask.Range(opcode, mask.I3, mask.I5)
		c.push(c.PC)
		c.PC = uint16(vector) * 8
		return 0
	}

	switch opcode & 0xCF {
	case 0xC5: // PUSH rp
		c.pushRP((opcode >> 4) & 0x03)
		return 0
	case 0xC1: // POP rp
		c.popRP((opcode >> 4) & 0x03)
		return 0
	}

	switch opcode {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38: // NOP and undocumented NOP aliases
		return 0

	case 0x02: // STAX B
		c.write(c.getBC(), c.A)
	case 0x12: // STAX D
		c.write(c.getDE(), c.A)
	case 0x0A: // LDAX B
		c.A = c.read(c.getBC())
	case 0x1A: // LDAX D
		c.A = c.read(c.getDE())

	case 0x22: // SHLD a16
		addr := c.fetch16()
		c.write(addr, c.L)
		c.write(addr+1, c.H)
	case 0x2A: // LHLD a16
		addr := c.fetch16()
		c.L = c.read(addr)
		c.H = c.read(addr + 1)
	case 0x32: // STA a16
		c.write(c.fetch16(), c.A)
	case 0x3A: // LDA a16
		c.A = c.read(c.fetch16())

	case 0x07: // RLC
		c.rlc()
	case 0x0F: // RRC
		c.rrc()
	case 0x17: // RAL
		c.ral()
	case 0x1F: // RAR
		c.rar()
	case 0x27: // DAA
		c.daa()
	case 0x2F: // CMA
		c.A = ^c.A
	case 0x37: // STC
		c.Flags.Carry = true
	case 0x3F: // CMC
		c.Flags.Carry = !c.Flags.Carry

	case 0xC3, 0xCB: // JMP a16 (0xCB undocumented alias)
		c.PC = c.fetch16()
	case 0xC9, 0xD9: // RET (0xD9 undocumented alias)
		c.PC = c.pop()
	case 0xCD, 0xDD, 0xED, 0xFD: // CALL a16 (aliases)
		addr := c.fetch16()
		c.push(c.PC)
		c.PC = addr

	case 0xE3: // XTHL
		lo := c.read(c.SP)
		hi := c.read(c.SP + 1)
		c.write(c.SP, c.L)
		c.write(c.SP+1, c.H)
		c.L, c.H = lo, hi
	case 0xE9: // PCHL
		c.PC = c.getHL()
	case 0xEB: // XCHG
		c.H, c.D = c.D, c.H
		c.L, c.E = c.E, c.L
	case 0xF9: // SPHL
		c.SP = c.getHL()

	case 0xF3: // DI
		c.IE = false
	case 0xFB: // EI
		c.IE = true

	case 0xDB: // IN d8
		port := c.fetch8()
		c.A = c.in(port)
	case 0xD3: // OUT d8
		port := c.fetch8()
		c.out(port, c.A)

	case 0xC6: // ADI d8
		c.alu(0, c.fetch8())
	case 0xCE: // ACI d8
		c.alu(1, c.fetch8())
	case 0xD6: // SUI d8
		c.alu(2, c.fetch8())
	case 0xDE: // SBI d8
		c.alu(3, c.fetch8())
	case 0xE6: // ANI d8
		c.alu(4, c.fetch8())
	case 0xEE: // XRI d8
		c.alu(5, c.fetch8())
	case 0xF6: // ORI d8
		c.alu(6, c.fetch8())
	case 0xFE: // CPI d8
		c.alu(7, c.fetch8())
	}

	return 0
}

// alu applies one of the eight ALU operations (0=ADD 1=ADC 2=SUB 3=SBB
// 4=ANA 5=XRA 6=ORA 7=CMP) to the accumulator and v, setting flags the
// way the hardware's arithmetic/logic unit does.
func (c *CPU) alu(op byte, v byte) {
	switch op & 0x07 {
	case 0:
		c.add(v, false)
	case 1:
		c.add(v, c.Flags.Carry)
	case 2:
		c.sub(v, false)
	case 3:
		c.sub(v, c.Flags.Carry)
	case 4:
		c.A &= v
		c.Flags.Carry = false
		c.Flags.AuxCarry = false
		c.Flags.setZSP(c.A)
	case 5:
		c.A ^= v
		c.Flags.Carry = false
		c.Flags.AuxCarry = false
		c.Flags.setZSP(c.A)
	case 6:
		c.A |= v
		c.Flags.Carry = false
		c.Flags.AuxCarry = false
		c.Flags.setZSP(c.A)
	case 7:
		c.cmp(v)
	}
}

// add performs A = A + v (+ carry if withCarry), setting Carry, AuxCarry
// and ZSP from the full-precision result.
func (c *CPU) add(v byte, withCarry bool) {
	var carryIn uint16
	if withCarry {
		carryIn = 1
	}
	a := uint16(c.A)
	sum := a + uint16(v) + carryIn
	c.Flags.AuxCarry = (a&0x0F)+(uint16(v)&0x0F)+carryIn > 0x0F
	c.Flags.Carry = sum > 0xFF
	c.A = byte(sum)
	c.Flags.setZSP(c.A)
}

// sub performs A = A - v (- borrow if withBorrow). Carry is set (not
// cleared) on borrow, matching the 8080's subtraction convention.
func (c *CPU) sub(v byte, withBorrow bool) {
	var borrowIn int
	if withBorrow {
		borrowIn = 1
	}
	a := int(c.A)
	diff := a - int(v) - borrowIn
	c.Flags.AuxCarry = (a&0x0F)-(int(v)&0x0F)-borrowIn >= 0
	c.Flags.Carry = diff < 0
	c.A = byte(diff)
	c.Flags.setZSP(c.A)
}

// cmp is SUB without writing the result back to A.
func (c *CPU) cmp(v byte) {
	saved := c.A
	c.sub(v, false)
	c.A = saved
}

// inc8/dec8 implement INR/DCR: they set AuxCarry and ZSP but, unlike
// ADD/SUB, never touch Carry -- a documented 8080 quirk preserved here.
func (c *CPU) inc8(v byte) byte {
	result := v + 1
	c.Flags.AuxCarry = (v & 0x0F) == 0x0F
	c.Flags.setZSP(result)
	return result
}

func (c *CPU) dec8(v byte) byte {
	result := v - 1
	c.Flags.AuxCarry = (v & 0x0F) != 0
	c.Flags.setZSP(result)
	return result
}

// dad adds a register pair to HL, affecting only Carry (no ZSP change).
func (c *CPU) dad(sel byte) {
	hl := uint32(c.getHL())
	rp := uint32(c.regPair(sel))
	sum := hl + rp
	c.Flags.Carry = sum > 0xFFFF
	c.setHL(uint16(sum))
}

// pushRP/popRP handle register-pair push/pop. Selector 3 means PSW
// (A + packed flags) rather than SP, unlike every other rp-selector use.
func (c *CPU) pushRP(sel byte) {
	switch sel & 0x03 {
	case 3:
		c.push(word(c.A, c.Flags.flagsByte()))
	default:
		c.push(c.regPair(sel))
	}
}

func (c *CPU) popRP(sel byte) {
	switch sel & 0x03 {
	case 3:
		v := c.pop()
		c.A = hiByte(v)
		c.Flags.setFlagsByte(loByte(v))
	default:
		c.setRegPair(sel, c.pop())
	}
}

// rlc/rrc/ral/rar implement the four rotate-accumulator instructions.
// Only Carry is affected; ZSP is left untouched, as on real hardware.
func (c *CPU) rlc() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | boolByte(carry)
	c.Flags.Carry = carry
}

func (c *CPU) rrc() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | boolByte(carry)<<7
	c.Flags.Carry = carry
}

func (c *CPU) ral() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | boolByte(c.Flags.Carry)
	c.Flags.Carry = carry
}

func (c *CPU) rar() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | boolByte(c.Flags.Carry)<<7
	c.Flags.Carry = carry
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// daa applies the decimal-adjust algorithm: correct the low nibble if it
// exceeds 9 or AuxCarry is set, then the high nibble if it exceeds 9 (or
// already did, post low-nibble correction) or Carry is set. This is the
// standard correction used across 8080/Z80-family emulators; cycle-exact
// hardware errata are out of scope.
func (c *CPU) daa() {
	correction := byte(0)
	carry := c.Flags.Carry

	lo := c.A & 0x0F
	if lo > 9 || c.Flags.AuxCarry {
		correction |= 0x06
	}

	hi := (c.A >> 4) & 0x0F
	if hi > 9 || c.Flags.Carry || (hi == 9 && lo > 9) {
		correction |= 0x60
		carry = true
	}

	a := uint16(c.A) + uint16(correction)
	c.Flags.AuxCarry = (c.A&0x0F)+(correction&0x0F) > 0x0F
	c.A = byte(a)
	c.Flags.Carry = carry
	c.Flags.setZSP(c.A)
}
