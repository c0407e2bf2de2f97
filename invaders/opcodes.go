package invaders

import "strconv"

// Register operand indices, as encoded in bits of the 8080 opcode byte:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=M(memory at HL) 7=A.
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

func (cpu *CPU) getReg(idx byte) byte {
	switch idx {
	case 0:
		return cpu.B
	case 1:
		return cpu.C
	case 2:
		return cpu.D
	case 3:
		return cpu.E
	case 4:
		return cpu.H
	case 5:
		return cpu.L
	case 6:
		return cpu.readM()
	default:
		return cpu.A
	}
}

func (cpu *CPU) setReg(idx byte, v byte) {
	switch idx {
	case 0:
		cpu.B = v
	case 1:
		cpu.C = v
	case 2:
		cpu.D = v
	case 3:
		cpu.E = v
	case 4:
		cpu.H = v
	case 5:
		cpu.L = v
	case 6:
		cpu.writeM(v)
	default:
		cpu.A = v
	}
}

// Register pair indices: 0=BC 1=DE 2=HL 3=SP (or PSW for PUSH/POP).
var rpNames = [4]string{"B", "D", "H", "SP"}
var pushNames = [4]string{"B", "D", "H", "PSW"}

func (cpu *CPU) getRP(rp byte) uint16 {
	switch rp {
	case 0:
		return cpu.bc()
	case 1:
		return cpu.de()
	case 2:
		return cpu.hl()
	default:
		return cpu.SP
	}
}

func (cpu *CPU) setRP(rp byte, v uint16) {
	switch rp {
	case 0:
		cpu.setBC(v)
	case 1:
		cpu.setDE(v)
	case 2:
		cpu.setHL(v)
	default:
		cpu.SP = v
	}
}

// Condition codes, as encoded in the CCC bits of conditional branch opcodes.
var condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func (cpu *CPU) condTrue(cc byte) bool {
	switch cc {
	case 0:
		return !cpu.Flags.has(FlagZ)
	case 1:
		return cpu.Flags.has(FlagZ)
	case 2:
		return !cpu.Flags.has(FlagC)
	case 3:
		return cpu.Flags.has(FlagC)
	case 4:
		return !cpu.Flags.has(FlagP)
	case 5:
		return cpu.Flags.has(FlagP)
	case 6:
		return !cpu.Flags.has(FlagS)
	default:
		return cpu.Flags.has(FlagS)
	}
}

////////////////////////////////////////////////////////////////////////////
// Arithmetic/logical cores, shared by the register, memory and immediate
// forms of each instruction family.

// addToA performs an 8-bit add into A (ADD/ADC/ADI/ACI), per the add-family
// contract: wide result, C from bit 8 overflow, A-flag from nibble carry.
func (cpu *CPU) addToA(b byte, carryIn byte) {
	wide := uint16(cpu.A) + uint16(b) + uint16(carryIn)
	result := byte(wide)

	cpu.Flags.set(FlagC, wide > 0xFF)
	cpu.Flags.set(FlagA, (cpu.A&0xF)+(b&0xF)+carryIn > 0xF)
	cpu.Flags.setSZP(result)

	cpu.A = result
}

// subtract performs A - b (- borrowIn), per the subtract-family contract
// (two's-complement addition, "borrow = no carry out" convention). It does
// not store the result, letting CMP/CPI discard it.
func (cpu *CPU) subtract(b byte, borrowIn byte) byte {
	effectiveB := b + borrowIn
	twos := byte(0) - effectiveB
	wide := uint16(cpu.A) + uint16(twos)
	result := byte(wide)

	cpu.Flags.set(FlagC, uint16(b)+uint16(borrowIn) > uint16(cpu.A))
	cpu.Flags.set(FlagA, (cpu.A&0xF)+(twos&0xF) > 0xF)
	cpu.Flags.setSZP(result)

	return result
}

func (cpu *CPU) opANA(b byte) {
	a := cpu.A
	// AC set if bit 3 of either operand was 1, per the documented 8080
	// quirk (ANA does not compute half-carry from the AND itself).
	acBit := (a|b)&0x08 != 0

	cpu.A = a & b
	cpu.Flags.set(FlagC, false)
	cpu.Flags.set(FlagA, acBit)
	cpu.Flags.setSZP(cpu.A)
}

func (cpu *CPU) opXRA(b byte) {
	cpu.A ^= b
	cpu.Flags.set(FlagC, false)
	cpu.Flags.set(FlagA, false)
	cpu.Flags.setSZP(cpu.A)
}

func (cpu *CPU) opORA(b byte) {
	cpu.A |= b
	cpu.Flags.set(FlagC, false)
	cpu.Flags.set(FlagA, false)
	cpu.Flags.setSZP(cpu.A)
}

// aluOp dispatches the 8 ALU sub-operations shared by opcodes 0x80-0xBF
// (register operand) and 0xC6+8n (immediate operand): ADD ADC SUB SBB ANA
// XRA ORA CMP, in that opcode-bit order.
func (cpu *CPU) aluOp(op byte, b byte) {
	switch op {
	case 0: // ADD
		cpu.addToA(b, 0)
	case 1: // ADC
		cpu.addToA(b, carryBit(cpu))
	case 2: // SUB
		cpu.A = cpu.subtract(b, 0)
	case 3: // SBB
		cpu.A = cpu.subtract(b, carryBit(cpu))
	case 4: // ANA
		cpu.opANA(b)
	case 5: // XRA
		cpu.opXRA(b)
	case 6: // ORA
		cpu.opORA(b)
	case 7: // CMP
		cpu.subtract(b, 0)
	}
}

func carryBit(cpu *CPU) byte {
	if cpu.Flags.has(FlagC) {
		return 1
	}
	return 0
}

var aluNames = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}

func (cpu *CPU) inr(idx byte) {
	v := cpu.getReg(idx)
	result := v + 1
	cpu.Flags.set(FlagA, v&0xF == 0xF)
	cpu.Flags.setSZP(result)
	cpu.setReg(idx, result)
}

func (cpu *CPU) dcr(idx byte) {
	v := cpu.getReg(idx)
	result := v - 1
	// Equivalent to subtract(1, 0)'s A-flag: clear only when the low
	// nibble was already 0 (no borrow needed into the nibble).
	cpu.Flags.set(FlagA, v&0xF != 0x0)
	cpu.Flags.setSZP(result)
	cpu.setReg(idx, result)
}

func (cpu *CPU) dad(rp byte) {
	wide := uint32(cpu.hl()) + uint32(cpu.getRP(rp))
	cpu.Flags.set(FlagC, wide > 0xFFFF)
	cpu.setHL(uint16(wide))
}

////////////////////////////////////////////////////////////////////////////
// DAA

func (cpu *CPU) daa() {
	a := cpu.A
	c := cpu.Flags.has(FlagC)

	if a&0x0F > 9 || cpu.Flags.has(FlagA) {
		carry := (a&0x0F)+6 > 0x0F
		a += 0x06
		cpu.Flags.set(FlagA, carry)
	} else {
		cpu.Flags.set(FlagA, false)
	}

	if a>>4 > 9 || c {
		wide := uint16(a) + 0x60
		a = byte(wide)
		cpu.Flags.set(FlagC, wide > 0xFF || c)
	}

	cpu.A = a
	cpu.Flags.setSZP(cpu.A)
}

////////////////////////////////////////////////////////////////////////////
// buildOpcodeTable constructs the flat 256-entry dispatch table once at
// startup. Regular instruction families (MOV, the 8 ALU ops, INR/DCR/MVI,
// the register-pair ops, the conditional branch family, RST) are populated
// by looping over their bit-field encodings; everything else is an explicit
// single-opcode entry. Opcodes with no entry remain the zero value (nil
// exec), which Step/execute treats as UnknownOpcode.

func buildOpcodeTable() [256]instruction {
	var table [256]instruction

	// MOV r,r' (0x40-0x7F). 0x76 is HLT, not MOV M,M.
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := 5
			if d == 6 || s == 6 {
				cycles = 7
			}
			table[op] = instruction{
				name:   "MOV " + regNames[d] + "," + regNames[s],
				cycles: cycles,
				exec: func(cpu *CPU) int {
					cpu.setReg(d, cpu.getReg(s))
					return 0
				},
			}
		}
	}
	table[0x76] = instruction{"HLT", 7, func(cpu *CPU) int {
		cpu.Halted = true
		return 0
	}}

	// ALU reg ops (0x80-0xBF).
	for op8 := byte(0); op8 < 8; op8++ {
		for src := byte(0); src < 8; src++ {
			op := 0x80 | op8<<3 | src
			o, s := op8, src
			cycles := 4
			if s == 6 {
				cycles = 7
			}
			table[op] = instruction{
				name:   aluNames[o] + " " + regNames[s],
				cycles: cycles,
				exec: func(cpu *CPU) int {
					cpu.aluOp(o, cpu.getReg(s))
					return 0
				},
			}
		}
	}

	// INR/DCR/MVI r (and M), one register argument each.
	for r := byte(0); r < 8; r++ {
		rr := r
		incDecCycles := 5
		mviCycles := 7
		if rr == 6 {
			incDecCycles = 10
			mviCycles = 10
		}
		table[0x04|rr<<3] = instruction{"INR " + regNames[rr], incDecCycles, func(cpu *CPU) int {
			cpu.inr(rr)
			return 0
		}}
		table[0x05|rr<<3] = instruction{"DCR " + regNames[rr], incDecCycles, func(cpu *CPU) int {
			cpu.dcr(rr)
			return 0
		}}
		table[0x06|rr<<3] = instruction{"MVI " + regNames[rr] + ",d8", mviCycles, func(cpu *CPU) int {
			cpu.setReg(rr, cpu.fetchByte())
			return 0
		}}
	}

	// Register-pair ops: LXI, INX, DCX, DAD.
	for rp := byte(0); rp < 4; rp++ {
		r := rp
		table[0x01|r<<4] = instruction{"LXI " + rpNames[r] + ",d16", 10, func(cpu *CPU) int {
			cpu.setRP(r, cpu.fetchWord())
			return 0
		}}
		table[0x03|r<<4] = instruction{"INX " + rpNames[r], 5, func(cpu *CPU) int {
			cpu.setRP(r, cpu.getRP(r)+1)
			return 0
		}}
		table[0x0B|r<<4] = instruction{"DCX " + rpNames[r], 5, func(cpu *CPU) int {
			cpu.setRP(r, cpu.getRP(r)-1)
			return 0
		}}
		table[0x09|r<<4] = instruction{"DAD " + rpNames[r], 10, func(cpu *CPU) int {
			cpu.dad(r)
			return 0
		}}
	}

	// PUSH/POP rp (rp==3 means PSW, not SP).
	for rp := byte(0); rp < 4; rp++ {
		r := rp
		table[0xC5|r<<4] = instruction{"PUSH " + pushNames[r], 11, func(cpu *CPU) int {
			if r == 3 {
				cpu.push(uint16(cpu.A)<<8 | uint16(cpu.Flags.Byte()))
			} else {
				cpu.push(cpu.getRP(r))
			}
			return 0
		}}
		table[0xC1|r<<4] = instruction{"POP " + pushNames[r], 10, func(cpu *CPU) int {
			v := cpu.pop()
			if r == 3 {
				cpu.A = byte(v >> 8)
				cpu.Flags.SetByte(byte(v))
			} else {
				cpu.setRP(r, v)
			}
			return 0
		}}
	}

	// STAX/LDAX B,D (no H/SP form — those opcode slots are SHLD/LHLD/STA/LDA).
	table[0x02] = instruction{"STAX B", 7, func(cpu *CPU) int { cpu.writeByte(cpu.bc(), cpu.A); return 0 }}
	table[0x12] = instruction{"STAX D", 7, func(cpu *CPU) int { cpu.writeByte(cpu.de(), cpu.A); return 0 }}
	table[0x0A] = instruction{"LDAX B", 7, func(cpu *CPU) int { cpu.A = cpu.readByte(cpu.bc()); return 0 }}
	table[0x1A] = instruction{"LDAX D", 7, func(cpu *CPU) int { cpu.A = cpu.readByte(cpu.de()); return 0 }}

	// Conditional Jcc/Ccc/Rcc and RST n.
	for cc := byte(0); cc < 8; cc++ {
		c := cc
		table[0xC2|c<<3] = instruction{"J" + condNames[c] + " a16", 10, func(cpu *CPU) int {
			addr := cpu.fetchWord()
			if cpu.condTrue(c) {
				cpu.PC = addr
			}
			return 0
		}}
		table[0xC4|c<<3] = instruction{"C" + condNames[c] + " a16", 11, func(cpu *CPU) int {
			addr := cpu.fetchWord()
			if cpu.condTrue(c) {
				cpu.push(cpu.PC)
				cpu.PC = addr
				return 6 // 17 total when taken
			}
			return 0
		}}
		table[0xC0|c<<3] = instruction{"R" + condNames[c], 5, func(cpu *CPU) int {
			if cpu.condTrue(c) {
				cpu.PC = cpu.pop()
				return 6 // 11 total when taken
			}
			return 0
		}}
	}
	for n := byte(0); n < 8; n++ {
		nn := n
		table[0xC7|nn<<3] = instruction{"RST " + strconv.Itoa(int(nn)), 11, func(cpu *CPU) int {
			cpu.push(cpu.PC)
			cpu.PC = uint16(nn) * 8
			return 0
		}}
	}

	// Immediate ALU ops.
	for op8 := byte(0); op8 < 8; op8++ {
		o := op8
		table[0xC6|o<<3] = instruction{aluNames[o] + " d8", 7, func(cpu *CPU) int {
			cpu.aluOp(o, cpu.fetchByte())
			return 0
		}}
	}

	// NOP and its documented alternate encodings.
	table[0x00] = instruction{"NOP", 4, func(cpu *CPU) int { return 0 }}
	for _, op := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		table[op] = instruction{"NOP", 4, func(cpu *CPU) int { return 0 }}
	}

	table[0x07] = instruction{"RLC", 4, func(cpu *CPU) int {
		oldBit7 := cpu.A >> 7
		cpu.Flags.set(FlagC, oldBit7 != 0)
		cpu.A = (cpu.A << 1) | oldBit7
		return 0
	}}
	table[0x0F] = instruction{"RRC", 4, func(cpu *CPU) int {
		oldBit0 := cpu.A & 1
		cpu.Flags.set(FlagC, oldBit0 != 0)
		cpu.A = (cpu.A >> 1) | (oldBit0 << 7)
		return 0
	}}
	table[0x17] = instruction{"RAL", 4, func(cpu *CPU) int {
		newBit0 := carryBit(cpu)
		oldBit7 := cpu.A >> 7
		cpu.A = (cpu.A << 1) | newBit0
		cpu.Flags.set(FlagC, oldBit7 != 0)
		return 0
	}}
	table[0x1F] = instruction{"RAR", 4, func(cpu *CPU) int {
		newBit7 := carryBit(cpu)
		oldBit0 := cpu.A & 1
		cpu.A = (cpu.A >> 1) | (newBit7 << 7)
		cpu.Flags.set(FlagC, oldBit0 != 0)
		return 0
	}}

	table[0x22] = instruction{"SHLD a16", 16, func(cpu *CPU) int {
		addr := cpu.fetchWord()
		cpu.writeByte(addr, cpu.L)
		cpu.writeByte(addr+1, cpu.H)
		return 0
	}}
	table[0x2A] = instruction{"LHLD a16", 16, func(cpu *CPU) int {
		addr := cpu.fetchWord()
		cpu.L = cpu.readByte(addr)
		cpu.H = cpu.readByte(addr + 1)
		return 0
	}}
	table[0x27] = instruction{"DAA", 4, func(cpu *CPU) int { cpu.daa(); return 0 }}
	table[0x2F] = instruction{"CMA", 4, func(cpu *CPU) int { cpu.A = ^cpu.A; return 0 }}
	table[0x32] = instruction{"STA a16", 13, func(cpu *CPU) int {
		cpu.writeByte(cpu.fetchWord(), cpu.A)
		return 0
	}}
	table[0x37] = instruction{"STC", 4, func(cpu *CPU) int { cpu.Flags.set(FlagC, true); return 0 }}
	table[0x3A] = instruction{"LDA a16", 13, func(cpu *CPU) int {
		cpu.A = cpu.readByte(cpu.fetchWord())
		return 0
	}}
	table[0x3F] = instruction{"CMC", 4, func(cpu *CPU) int {
		cpu.Flags.set(FlagC, !cpu.Flags.has(FlagC))
		return 0
	}}

	table[0xC3] = instruction{"JMP a16", 10, func(cpu *CPU) int { cpu.PC = cpu.fetchWord(); return 0 }}
	table[0xC9] = instruction{"RET", 10, func(cpu *CPU) int { cpu.PC = cpu.pop(); return 0 }}
	table[0xCD] = instruction{"CALL a16", 17, func(cpu *CPU) int {
		addr := cpu.fetchWord()
		cpu.push(cpu.PC)
		cpu.PC = addr
		return 0
	}}
	table[0xE3] = instruction{"XTHL", 18, func(cpu *CPU) int {
		top := cpu.readWord(cpu.SP)
		cpu.writeWord(cpu.SP, cpu.hl())
		cpu.setHL(top)
		return 0
	}}
	table[0xE9] = instruction{"PCHL", 5, func(cpu *CPU) int { cpu.PC = cpu.hl(); return 0 }}
	table[0xEB] = instruction{"XCHG", 5, func(cpu *CPU) int {
		h, l, d, e := cpu.H, cpu.L, cpu.D, cpu.E
		cpu.H, cpu.L = d, e
		cpu.D, cpu.E = h, l
		return 0
	}}
	table[0xF3] = instruction{"DI", 4, func(cpu *CPU) int { cpu.InterruptsEnabled = false; return 0 }}
	table[0xF9] = instruction{"SPHL", 5, func(cpu *CPU) int { cpu.SP = cpu.hl(); return 0 }}
	table[0xFB] = instruction{"EI", 4, func(cpu *CPU) int { cpu.InterruptsEnabled = true; return 0 }}

	table[0xDB] = instruction{"IN d8", 10, func(cpu *CPU) int {
		port := cpu.fetchByte()
		cpu.A = cpu.bus.ReadPort(port)
		return 0
	}}
	table[0xD3] = instruction{"OUT d8", 10, func(cpu *CPU) int {
		port := cpu.fetchByte()
		cpu.bus.WritePort(port, cpu.A)
		return 0
	}}

	return table
}
