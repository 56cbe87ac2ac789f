package cpu

import "fmt"

// An Opcode carries the metadata execute needs to account for an
// instruction once it has already run: its mnemonic (for tracing and the
// debugger) and its base T-state count. Unlike the 6502 or Z80, the 8080
// has no illegal opcodes -- every byte value decodes to something, even
// if that something is just one of several undocumented NOP aliases --
// so Implemented is expected to be true across the whole table; it
// exists to make an impossible state (opcodeTable[x] with no entry)
// detectable instead of silently falling through to zero cycles.
type Opcode struct {
	Name        string
	Cycles      byte
	Implemented bool
}

var opcodeTable [256]Opcode

// individual names opcodes whose cycle count or mnemonic cannot be
// derived by the grouped loops in init() below: every non-MOV, non-ALU,
// non-INR/DCR/MVI, non-LXI/INX/DCX/DAD, non-branch/stack opcode.
var individual = map[byte]Opcode{
	0x00: {"NOP", 4, true},
	0x08: {"NOP", 4, true},
	0x10: {"NOP", 4, true},
	0x18: {"NOP", 4, true},
	0x20: {"NOP", 4, true},
	0x28: {"NOP", 4, true},
	0x30: {"NOP", 4, true},
	0x38: {"NOP", 4, true},

	0x02: {"STAX B", 7, true},
	0x0A: {"LDAX B", 7, true},
	0x12: {"STAX D", 7, true},
	0x1A: {"LDAX D", 7, true},

	0x22: {"SHLD", 16, true},
	0x2A: {"LHLD", 16, true},
	0x32: {"STA", 13, true},
	0x3A: {"LDA", 13, true},

	0x07: {"RLC", 4, true},
	0x0F: {"RRC", 4, true},
	0x17: {"RAL", 4, true},
	0x1F: {"RAR", 4, true},
	0x27: {"DAA", 4, true},
	0x2F: {"CMA", 4, true},
	0x37: {"STC", 4, true},
	0x3F: {"CMC", 4, true},

	0x76: {"HLT", 7, true},

	0xC3: {"JMP", 10, true},
	0xCB: {"JMP", 10, true},
	0xC9: {"RET", 10, true},
	0xD9: {"RET", 10, true},
	0xCD: {"CALL", 17, true},
	0xDD: {"CALL", 17, true},
	0xED: {"CALL", 17, true},
	0xFD: {"CALL", 17, true},

	0xE3: {"XTHL", 18, true},
	0xE9: {"PCHL", 5, true},
	0xEB: {"XCHG", 5, true},
	0xF9: {"SPHL", 5, true},

	0xF3: {"DI", 4, true},
	0xFB: {"EI", 4, true},

	0xDB: {"IN", 10, true},
	0xD3: {"OUT", 10, true},

	0xC6: {"ADI", 7, true},
	0xCE: {"ACI", 7, true},
	0xD6: {"SUI", 7, true},
	0xDE: {"SBI", 7, true},
	0xE6: {"ANI", 7, true},
	0xEE: {"XRI", 7, true},
	0xF6: {"ORI", 7, true},
	0xFE: {"CPI", 7, true},
}

var regName8 = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
var regPairName = [4]string{"B", "D", "H", "SP"}
var aluName = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
var condName = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func init() {
	// MOV r1,r2 -- 5 cycles, 7 if either operand touches memory (M=HL).
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			if op == 0x76 { // HLT occupies MOV M,M's slot
				continue
			}
			cycles := byte(5)
			if dst == 6 || src == 6 {
				cycles = 7
			}
			opcodeTable[op] = Opcode{"MOV " + regName8[dst] + "," + regName8[src], cycles, true}
		}
	}

	// ALU a,r -- 4 cycles, 7 if the operand is M.
	for aop := byte(0); aop < 8; aop++ {
		for src := byte(0); src < 8; src++ {
			op := 0x80 | aop<<3 | src
			cycles := byte(4)
			if src == 6 {
				cycles = 7
			}
			opcodeTable[op] = Opcode{aluName[aop] + " " + regName8[src], cycles, true}
		}
	}

	// INR/DCR r -- 5 cycles, 10 for M.
	for sel := byte(0); sel < 8; sel++ {
		cycles := byte(5)
		if sel == 6 {
			cycles = 10
		}
		opcodeTable[0x04|sel<<3] = Opcode{"INR " + regName8[sel], cycles, true}
		opcodeTable[0x05|sel<<3] = Opcode{"DCR " + regName8[sel], cycles, true}
		mvi := byte(7)
		if sel == 6 {
			mvi = 10
		}
		opcodeTable[0x06|sel<<3] = Opcode{"MVI " + regName8[sel], mvi, true}
	}

	// LXI/DAD/INX/DCX rp
	for rp := byte(0); rp < 4; rp++ {
		opcodeTable[0x01|rp<<4] = Opcode{"LXI " + regPairName[rp], 10, true}
		opcodeTable[0x09|rp<<4] = Opcode{"DAD " + regPairName[rp], 10, true}
		opcodeTable[0x03|rp<<4] = Opcode{"INX " + regPairName[rp], 5, true}
		opcodeTable[0x0B|rp<<4] = Opcode{"DCX " + regPairName[rp], 5, true}
	}

	// PUSH/POP rp (rp==3 is PSW here, not SP)
	pushPopName := [4]string{"B", "D", "H", "PSW"}
	for rp := byte(0); rp < 4; rp++ {
		opcodeTable[0xC5|rp<<4] = Opcode{"PUSH " + pushPopName[rp], 11, true}
		opcodeTable[0xC1|rp<<4] = Opcode{"POP " + pushPopName[rp], 10, true}
	}

	// Rccc / Jccc / Cccc: base cycles cover the untaken case; execute
	// adds the extra 6 T-states when an Rccc or Cccc is taken (Jccc
	// costs 10 either way).
	for cc := byte(0); cc < 8; cc++ {
		opcodeTable[0xC0|cc<<3] = Opcode{"R" + condName[cc], 5, true}
		opcodeTable[0xC2|cc<<3] = Opcode{"J" + condName[cc], 10, true}
		opcodeTable[0xC4|cc<<3] = Opcode{"C" + condName[cc], 11, true}
		opcodeTable[0xC7|cc<<3] = Opcode{fmt.Sprintf("RST %d", cc), 11, true}
	}

	for op, entry := range individual {
		opcodeTable[op] = entry
	}
}
