// Package disassemble renders the 151 legal 6502 opcodes as text. It
// does not interpret the instructions it prints - a JMP target is
// shown as an address, never followed - and it has no knowledge of the
// cpu package's cycle accounting; it exists purely as a diagnostic aid
// for the cmd/go6502 harness.
package disassemble

import (
	"fmt"

	"github.com/nwidger/go6502/memory"
)

const (
	modeImmediate = iota
	modeZP
	modeZPX
	modeZPY
	modeIndirectX
	modeIndirectY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeImplied
	modeRelative
)

// Step disassembles the instruction at pc, returning its text form and
// the number of bytes it occupies (1-3). Unrecognized bytes - illegal
// or undocumented opcodes, out of scope for the interpreter itself -
// disassemble as "???" and are treated as single-byte instructions so
// callers can keep stepping through a buffer of mixed code and data.
// Step always reads the two bytes after pc, so the caller must ensure
// those addresses are valid (the flat 64 KiB bank always is).
func Step(pc uint16, r memory.Bank) (string, int) {
	pc1 := r.Read(pc + 1)
	pc1Signed := uint16(int16(int8(pc1)))
	pc2 := r.Read(pc + 2)

	o := r.Read(pc)
	op, mode, ok := decode(o)
	if !ok {
		return fmt.Sprintf("%04X %02X      ???", pc, o), 1
	}

	count := 2
	out := fmt.Sprintf("%04X %02X ", pc, o)
	switch mode {
	case modeImmediate:
		out += fmt.Sprintf("%02X      %s #$%02X", pc1, op, pc1)
	case modeZP:
		out += fmt.Sprintf("%02X      %s $%02X", pc1, op, pc1)
	case modeZPX:
		out += fmt.Sprintf("%02X      %s $%02X,X", pc1, op, pc1)
	case modeZPY:
		out += fmt.Sprintf("%02X      %s $%02X,Y", pc1, op, pc1)
	case modeIndirectX:
		out += fmt.Sprintf("%02X      %s ($%02X,X)", pc1, op, pc1)
	case modeIndirectY:
		out += fmt.Sprintf("%02X      %s ($%02X),Y", pc1, op, pc1)
	case modeAbsolute:
		out += fmt.Sprintf("%02X %02X   %s $%02X%02X", pc1, pc2, op, pc2, pc1)
		count++
	case modeAbsoluteX:
		out += fmt.Sprintf("%02X %02X   %s $%02X%02X,X", pc1, pc2, op, pc2, pc1)
		count++
	case modeAbsoluteY:
		out += fmt.Sprintf("%02X %02X   %s $%02X%02X,Y", pc1, pc2, op, pc2, pc1)
		count++
	case modeIndirect:
		out += fmt.Sprintf("%02X %02X   %s ($%02X%02X)", pc1, pc2, op, pc2, pc1)
		count++
	case modeImplied:
		out += fmt.Sprintf("        %s", op)
		count--
	case modeRelative:
		out += fmt.Sprintf("%02X      %s $%02X (%04X)", pc1, op, pc1, pc+pc1Signed+2)
	}
	return out, count
}

// decode reports the mnemonic and addressing mode for a legal opcode
// byte, or ok=false if it names an illegal/undocumented opcode.
func decode(o uint8) (mnemonic string, mode int, ok bool) {
	switch o {
	case 0x69:
		return "ADC", modeImmediate, true
	case 0x65:
		return "ADC", modeZP, true
	case 0x75:
		return "ADC", modeZPX, true
	case 0x6D:
		return "ADC", modeAbsolute, true
	case 0x7D:
		return "ADC", modeAbsoluteX, true
	case 0x79:
		return "ADC", modeAbsoluteY, true
	case 0x61:
		return "ADC", modeIndirectX, true
	case 0x71:
		return "ADC", modeIndirectY, true

	case 0x29:
		return "AND", modeImmediate, true
	case 0x25:
		return "AND", modeZP, true
	case 0x35:
		return "AND", modeZPX, true
	case 0x2D:
		return "AND", modeAbsolute, true
	case 0x3D:
		return "AND", modeAbsoluteX, true
	case 0x39:
		return "AND", modeAbsoluteY, true
	case 0x21:
		return "AND", modeIndirectX, true
	case 0x31:
		return "AND", modeIndirectY, true

	case 0x0A:
		return "ASL", modeImplied, true
	case 0x06:
		return "ASL", modeZP, true
	case 0x16:
		return "ASL", modeZPX, true
	case 0x0E:
		return "ASL", modeAbsolute, true
	case 0x1E:
		return "ASL", modeAbsoluteX, true

	case 0x90:
		return "BCC", modeRelative, true
	case 0xB0:
		return "BCS", modeRelative, true
	case 0xF0:
		return "BEQ", modeRelative, true
	case 0x30:
		return "BMI", modeRelative, true
	case 0xD0:
		return "BNE", modeRelative, true
	case 0x10:
		return "BPL", modeRelative, true
	case 0x50:
		return "BVC", modeRelative, true
	case 0x70:
		return "BVS", modeRelative, true

	case 0x24:
		return "BIT", modeZP, true
	case 0x2C:
		return "BIT", modeAbsolute, true

	case 0x00:
		return "BRK", modeImplied, true

	case 0x18:
		return "CLC", modeImplied, true
	case 0xD8:
		return "CLD", modeImplied, true
	case 0x58:
		return "CLI", modeImplied, true
	case 0xB8:
		return "CLV", modeImplied, true
	case 0x38:
		return "SEC", modeImplied, true
	case 0xF8:
		return "SED", modeImplied, true
	case 0x78:
		return "SEI", modeImplied, true

	case 0xC9:
		return "CMP", modeImmediate, true
	case 0xC5:
		return "CMP", modeZP, true
	case 0xD5:
		return "CMP", modeZPX, true
	case 0xCD:
		return "CMP", modeAbsolute, true
	case 0xDD:
		return "CMP", modeAbsoluteX, true
	case 0xD9:
		return "CMP", modeAbsoluteY, true
	case 0xC1:
		return "CMP", modeIndirectX, true
	case 0xD1:
		return "CMP", modeIndirectY, true

	case 0xE0:
		return "CPX", modeImmediate, true
	case 0xE4:
		return "CPX", modeZP, true
	case 0xEC:
		return "CPX", modeAbsolute, true

	case 0xC0:
		return "CPY", modeImmediate, true
	case 0xC4:
		return "CPY", modeZP, true
	case 0xCC:
		return "CPY", modeAbsolute, true

	case 0xC6:
		return "DEC", modeZP, true
	case 0xD6:
		return "DEC", modeZPX, true
	case 0xCE:
		return "DEC", modeAbsolute, true
	case 0xDE:
		return "DEC", modeAbsoluteX, true

	case 0xCA:
		return "DEX", modeImplied, true
	case 0x88:
		return "DEY", modeImplied, true

	case 0x49:
		return "EOR", modeImmediate, true
	case 0x45:
		return "EOR", modeZP, true
	case 0x55:
		return "EOR", modeZPX, true
	case 0x4D:
		return "EOR", modeAbsolute, true
	case 0x5D:
		return "EOR", modeAbsoluteX, true
	case 0x59:
		return "EOR", modeAbsoluteY, true
	case 0x41:
		return "EOR", modeIndirectX, true
	case 0x51:
		return "EOR", modeIndirectY, true

	case 0xE6:
		return "INC", modeZP, true
	case 0xF6:
		return "INC", modeZPX, true
	case 0xEE:
		return "INC", modeAbsolute, true
	case 0xFE:
		return "INC", modeAbsoluteX, true

	case 0xE8:
		return "INX", modeImplied, true
	case 0xC8:
		return "INY", modeImplied, true

	case 0x4C:
		return "JMP", modeAbsolute, true
	case 0x6C:
		return "JMP", modeIndirect, true
	case 0x20:
		return "JSR", modeAbsolute, true

	case 0xA9:
		return "LDA", modeImmediate, true
	case 0xA5:
		return "LDA", modeZP, true
	case 0xB5:
		return "LDA", modeZPX, true
	case 0xAD:
		return "LDA", modeAbsolute, true
	case 0xBD:
		return "LDA", modeAbsoluteX, true
	case 0xB9:
		return "LDA", modeAbsoluteY, true
	case 0xA1:
		return "LDA", modeIndirectX, true
	case 0xB1:
		return "LDA", modeIndirectY, true

	case 0xA2:
		return "LDX", modeImmediate, true
	case 0xA6:
		return "LDX", modeZP, true
	case 0xB6:
		return "LDX", modeZPY, true
	case 0xAE:
		return "LDX", modeAbsolute, true
	case 0xBE:
		return "LDX", modeAbsoluteY, true

	case 0xA0:
		return "LDY", modeImmediate, true
	case 0xA4:
		return "LDY", modeZP, true
	case 0xB4:
		return "LDY", modeZPX, true
	case 0xAC:
		return "LDY", modeAbsolute, true
	case 0xBC:
		return "LDY", modeAbsoluteX, true

	case 0x4A:
		return "LSR", modeImplied, true
	case 0x46:
		return "LSR", modeZP, true
	case 0x56:
		return "LSR", modeZPX, true
	case 0x4E:
		return "LSR", modeAbsolute, true
	case 0x5E:
		return "LSR", modeAbsoluteX, true

	case 0xEA:
		return "NOP", modeImplied, true

	case 0x09:
		return "ORA", modeImmediate, true
	case 0x05:
		return "ORA", modeZP, true
	case 0x15:
		return "ORA", modeZPX, true
	case 0x0D:
		return "ORA", modeAbsolute, true
	case 0x1D:
		return "ORA", modeAbsoluteX, true
	case 0x19:
		return "ORA", modeAbsoluteY, true
	case 0x01:
		return "ORA", modeIndirectX, true
	case 0x11:
		return "ORA", modeIndirectY, true

	case 0x48:
		return "PHA", modeImplied, true
	case 0x08:
		return "PHP", modeImplied, true
	case 0x68:
		return "PLA", modeImplied, true
	case 0x28:
		return "PLP", modeImplied, true

	case 0x2A:
		return "ROL", modeImplied, true
	case 0x26:
		return "ROL", modeZP, true
	case 0x36:
		return "ROL", modeZPX, true
	case 0x2E:
		return "ROL", modeAbsolute, true
	case 0x3E:
		return "ROL", modeAbsoluteX, true

	case 0x6A:
		return "ROR", modeImplied, true
	case 0x66:
		return "ROR", modeZP, true
	case 0x76:
		return "ROR", modeZPX, true
	case 0x6E:
		return "ROR", modeAbsolute, true
	case 0x7E:
		return "ROR", modeAbsoluteX, true

	case 0x40:
		return "RTI", modeImplied, true
	case 0x60:
		return "RTS", modeImplied, true

	case 0xE9:
		return "SBC", modeImmediate, true
	case 0xE5:
		return "SBC", modeZP, true
	case 0xF5:
		return "SBC", modeZPX, true
	case 0xED:
		return "SBC", modeAbsolute, true
	case 0xFD:
		return "SBC", modeAbsoluteX, true
	case 0xF9:
		return "SBC", modeAbsoluteY, true
	case 0xE1:
		return "SBC", modeIndirectX, true
	case 0xF1:
		return "SBC", modeIndirectY, true

	case 0x85:
		return "STA", modeZP, true
	case 0x95:
		return "STA", modeZPX, true
	case 0x8D:
		return "STA", modeAbsolute, true
	case 0x9D:
		return "STA", modeAbsoluteX, true
	case 0x99:
		return "STA", modeAbsoluteY, true
	case 0x81:
		return "STA", modeIndirectX, true
	case 0x91:
		return "STA", modeIndirectY, true

	case 0x86:
		return "STX", modeZP, true
	case 0x96:
		return "STX", modeZPY, true
	case 0x8E:
		return "STX", modeAbsolute, true

	case 0x84:
		return "STY", modeZP, true
	case 0x94:
		return "STY", modeZPX, true
	case 0x8C:
		return "STY", modeAbsolute, true

	case 0xAA:
		return "TAX", modeImplied, true
	case 0xA8:
		return "TAY", modeImplied, true
	case 0xBA:
		return "TSX", modeImplied, true
	case 0x8A:
		return "TXA", modeImplied, true
	case 0x9A:
		return "TXS", modeImplied, true
	case 0x98:
		return "TYA", modeImplied, true
	}
	return "", 0, false
}
