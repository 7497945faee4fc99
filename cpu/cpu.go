// Package cpu implements the MOS 6502 instruction interpreter: the
// opcode dispatch loop, the thirteen addressing-mode resolvers, the
// arithmetic/logical primitives and the status-flag semantics, all
// accounted against a caller-supplied cycle budget.
package cpu

import (
	"fmt"
	"log"

	"github.com/nwidger/go6502/irq"
	"github.com/nwidger/go6502/memory"
)

// Status register bit masks (NV-BDIZC, bit 7 down to bit 0).
const (
	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_UNUSED    = uint8(0x20) // Always 1 when pushed by PHP/BRK.
	P_BREAK     = uint8(0x10) // Set in the byte pushed by PHP/BRK; BRK also sets it live.
	P_DECIMAL   = uint8(0x08) // Observable/settable; has no effect on ADC/SBC.
	P_INTERRUPT = uint8(0x04)
	P_ZERO      = uint8(0x02)
	P_CARRY     = uint8(0x01)
)

// Architecturally mandated memory locations.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// InvalidCPUState represents a precondition violation that should be
// impossible given how this package is constructed and driven. It
// exists so construction-time misuse fails loudly instead of silently
// corrupting architectural state.
type InvalidCPUState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Chip holds all 6502 architectural state plus the cycle budget it is
// currently executing against. The zero value is not usable; build one
// with Init.
type Chip struct {
	A uint8  // Accumulator
	X uint8  // X index register
	Y uint8  // Y index register
	S uint8  // Stack pointer (stack lives in page 0x0100-0x01FF)
	P uint8  // Status register
	PC uint16 // Program counter

	Cycles int // Remaining cycle budget for the current Execute call.

	ram memory.Bank
	brk irq.BreakSender
}

// ChipDef configures a new Chip.
type ChipDef struct {
	// Ram backs the entire 64 KiB address space.
	Ram memory.Bank
	// Brk, if non-nil, is notified every time a BRK instruction executes.
	Brk irq.BreakSender
}

// Init constructs a Chip wired to the given memory and immediately
// resets it (zeroing memory, seeding the reset vector location, and
// clearing registers).
func Init(def *ChipDef) (*Chip, error) {
	if def == nil || def.Ram == nil {
		return nil, InvalidCPUState{"ChipDef.Ram must be non-nil"}
	}
	c := &Chip{
		ram: def.Ram,
		brk: def.Brk,
	}
	c.Reset()
	return c, nil
}

// Reset zeroes memory and puts the CPU into its documented post-reset
// state: PC at the reset vector address, SP=0xFF, A=X=Y=0, all flags
// clear. Per spec.md §3, this implementation leaves PC pointing AT the
// reset vector rather than loading the vector's contents into PC; only
// LoadResetVector reads the vector's contents (BRK reads IRQVector
// instead). Callers that want PC loaded
// from the vector's contents (the more common emulator convention)
// should call LoadResetVector after writing their program and vector.
func (p *Chip) Reset() {
	p.ram.PowerOn()
	p.PC = ResetVector
	p.S = 0xFF
	p.A, p.X, p.Y = 0, 0, 0
	p.P = 0
	p.Cycles = 0
}

// LoadResetVector points PC at the 16 bit address stored at
// 0xFFFC/0xFFFD. Callers use this after writing a program and its
// vector into memory, before the first Execute call.
func (p *Chip) LoadResetVector() {
	p.PC = p.readWord(ResetVector)
}

// Execute runs instructions until the cycle budget is exhausted,
// mutating all architectural state and memory in place. The loop
// condition is checked only between instructions (per spec.md §5,
// cancellation is budget exhaustion only - no instruction is left
// mid-flight). Returns the number of cycles actually consumed, which
// may exceed budget since individual handlers can drive it negative.
func (p *Chip) Execute(budget int) int {
	p.Cycles = budget
	spent := 0
	for p.Cycles > 0 {
		before := p.Cycles
		op := p.fetchByte()
		p.dispatch(op)
		spent += before - p.Cycles
	}
	return spent
}

// spendCycle charges n cycles against the current budget directly,
// for addressing/instruction costs that are not modeled as a distinct
// memory access (index-add ticks, RMW ticks, branch-taken ticks, ...).
func (p *Chip) spendCycle(n int) {
	p.Cycles -= n
}

// --- Bus primitives (cycle-counting) ---------------------------------

// fetchByte reads the byte at PC, advances PC by one, and costs 1 cycle.
func (p *Chip) fetchByte() uint8 {
	v := p.ram.Read(p.PC)
	p.PC++
	p.spendCycle(1)
	return v
}

// fetchWord reads the little-endian word at PC/PC+1, advances PC by
// two, and costs 2 cycles.
func (p *Chip) fetchWord() uint16 {
	lo := p.ram.Read(p.PC)
	p.PC++
	hi := p.ram.Read(p.PC)
	p.PC++
	p.spendCycle(2)
	return uint16(hi)<<8 | uint16(lo)
}

// readByte reads addr and costs 1 cycle.
func (p *Chip) readByte(addr uint16) uint8 {
	p.spendCycle(1)
	return p.ram.Read(addr)
}

// writeByte writes val to addr and costs 1 cycle.
func (p *Chip) writeByte(addr uint16, val uint8) {
	p.spendCycle(1)
	p.ram.Write(addr, val)
}

// readWord reads a little-endian word starting at addr and costs 2
// cycles. No alignment or wraparound handling is needed since addr+1
// simply wraps within the uint16 space, matching spec.md §3.
func (p *Chip) readWord(addr uint16) uint16 {
	p.spendCycle(2)
	lo := p.ram.Read(addr)
	hi := p.ram.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// readWordZP reads a little-endian word starting at the zero-page
// address addr, wrapping the high byte fetch within page zero (so
// addr=0xFF reads low from 0x00FF and high from 0x0000, never 0x0100).
// Costs 2 cycles.
func (p *Chip) readWordZP(addr uint8) uint16 {
	p.spendCycle(2)
	lo := p.ram.Read(uint16(addr))
	hi := p.ram.Read(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// pushByte writes val to the stack and decrements S, costing 2 cycles.
func (p *Chip) pushByte(val uint8) {
	p.spendCycle(2)
	p.ram.Write(0x0100|uint16(p.S), val)
	p.S--
}

// pushWord pushes the high byte then the low byte of val (so memory
// order is ascending low,high) and costs 2 cycles total.
func (p *Chip) pushWord(val uint16) {
	p.spendCycle(2)
	p.ram.Write(0x0100|uint16(p.S), uint8(val>>8))
	p.S--
	p.ram.Write(0x0100|uint16(p.S), uint8(val))
	p.S--
}

// popByte increments S then reads the byte now on top of the stack.
// Costs 2 cycles.
func (p *Chip) popByte() uint8 {
	p.spendCycle(2)
	p.S++
	return p.ram.Read(0x0100 | uint16(p.S))
}

// popWord reads the little-endian word starting at S+1 and adds 2 to
// S. Costs 3 cycles.
func (p *Chip) popWord() uint16 {
	p.spendCycle(3)
	lo := p.ram.Read(0x0100 | uint16(p.S+1))
	hi := p.ram.Read(0x0100 | uint16(p.S+2))
	p.S += 2
	return uint16(hi)<<8 | uint16(lo)
}

// dispatch decodes a single opcode byte already fetched via fetchByte
// and runs its handler. Unrecognized bytes (illegal/undocumented
// opcodes, out of scope per spec.md §1) are logged and otherwise
// ignored - the fetch above has already charged its cycle and the loop
// simply continues.
func (p *Chip) dispatch(op uint8) {
	fn, ok := opcodes[op]
	if !ok {
		log.Printf("go6502: unimplemented opcode 0x%02X at PC=0x%04X", op, p.PC-1)
		return
	}
	fn(p)
}
