package invaders

import "fmt"

// Disassemble returns the mnemonic for opcode as recorded in the dispatch
// table, or a placeholder for entries left unpopulated (undocumented
// duplicate opcodes). Used for the CLI's --debug trace output; it never
// runs a second copy of the decode logic.
func (cpu *CPU) Disassemble(opcode byte) string {
	name := cpu.table[opcode].name
	if name == "" {
		return fmt.Sprintf("??? (%#02x)", opcode)
	}
	return name
}

// DisassembleRange walks memory from start to end (inclusive), formatting
// one line per opcode byte encountered. It does not attempt to skip operand
// bytes of multi-byte instructions — a best-effort listing for diagnostics,
// not a disassembler that tracks instruction boundaries.
func (cpu *CPU) DisassembleRange(start, end uint16) []string {
	var lines []string
	addr := uint32(start)
	for addr <= uint32(end) {
		opcode := cpu.readByte(uint16(addr))
		lines = append(lines, fmt.Sprintf("$%04X: %s", uint16(addr), cpu.Disassemble(opcode)))
		addr++
	}
	return lines
}
