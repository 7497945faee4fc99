package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"

	"github.com/nwidger/go6502/memory"
)

// newChip returns a freshly reset Chip backed by a flat memory bank,
// with no BRK observer wired up.
func newChip(t *testing.T) *Chip {
	t.Helper()
	c, err := Init(&ChipDef{Ram: memory.NewFlat()})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c
}

// load writes prog into c's memory starting at addr.
func load(c *Chip, addr uint16, prog ...uint8) {
	for i, b := range prog {
		c.ram.Write(addr+uint16(i), b)
	}
}

// diffState compares two snapshots of architectural state with
// go-test/deep, dumping both sides via go-spew on failure so a
// mismatch is readable without re-running under a debugger.
func diffState(t *testing.T, label string, got, want *Chip) {
	t.Helper()
	gotCopy, wantCopy := *got, *want
	gotCopy.ram, wantCopy.ram = nil, nil
	gotCopy.brk, wantCopy.brk = nil, nil
	if diff := deep.Equal(gotCopy, wantCopy); diff != nil {
		t.Errorf("%s state mismatch: %v\ngot:  %s\nwant: %s",
			label, diff, spew.Sdump(gotCopy), spew.Sdump(wantCopy))
	}
}

func TestInitRejectsNilRam(t *testing.T) {
	_, err := Init(&ChipDef{})
	if _, ok := err.(InvalidCPUState); !ok {
		t.Fatalf("expected InvalidCPUState, got %v", err)
	}
}

func TestReset(t *testing.T) {
	c := newChip(t)
	assert.Equal(t, ResetVector, c.PC)
	assert.Equal(t, uint8(0xFF), c.S)
	assert.Equal(t, uint8(0), c.A)
	assert.Equal(t, uint8(0), c.P)
}

func TestLoadResetVector(t *testing.T) {
	c := newChip(t)
	load(c, ResetVector, 0x00, 0xF0)
	c.LoadResetVector()
	assert.Equal(t, uint16(0xF000), c.PC)
}

// --- concrete end-to-end scenarios -----------------------------------

func TestLDAImmediateZero(t *testing.T) {
	c := newChip(t)
	load(c, 0xFF00, 0xA9, 0x00)
	c.PC = 0xFF00
	spent := c.Execute(2)
	assert.Equal(t, 2, spent)
	assert.Equal(t, uint8(0), c.A)
	assert.True(t, c.flag(P_ZERO))
	assert.False(t, c.flag(P_NEGATIVE))
}

func TestLDAImmediateNegative(t *testing.T) {
	c := newChip(t)
	load(c, 0xFF00, 0xA9, 0x80)
	c.PC = 0xFF00
	c.Execute(2)
	assert.Equal(t, uint8(0x80), c.A)
	assert.False(t, c.flag(P_ZERO))
	assert.True(t, c.flag(P_NEGATIVE))
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c := newChip(t)
	load(c, 0x0600, 0x20, 0x09, 0x06) // JSR $0609
	load(c, 0x0603, 0xA9, 0x42)       // LDA #$42
	load(c, 0x0605, 0x00)             // BRK (unused vector target, never reached in budget)
	load(c, 0x0609, 0x60)             // RTS
	c.PC = 0x0600

	// JSR (6) + RTS (6) = 12, landing back at 0x0603.
	spent := c.Execute(12)
	assert.Equal(t, 12, spent)
	assert.Equal(t, uint16(0x0603), c.PC)

	// Continue into LDA #$42.
	c.Execute(2)
	assert.Equal(t, uint8(0x42), c.A)
}

func TestADCOverflow(t *testing.T) {
	c := newChip(t)
	c.A = 0x50
	load(c, 0xFF00, 0x69, 0x50)
	c.PC = 0xFF00
	c.Execute(2)
	assert.Equal(t, uint8(0xA0), c.A)
	assert.True(t, c.flag(P_NEGATIVE))
	assert.True(t, c.flag(P_OVERFLOW))
	assert.False(t, c.flag(P_ZERO))
	assert.False(t, c.flag(P_CARRY))
}

func TestADCCarryIn(t *testing.T) {
	c := newChip(t)
	c.A = 0x01
	c.P |= P_CARRY
	load(c, 0xFF00, 0x69, 0x01)
	c.PC = 0xFF00
	c.Execute(2)
	assert.Equal(t, uint8(0x03), c.A)
	assert.False(t, c.flag(P_CARRY))
	assert.False(t, c.flag(P_OVERFLOW))
	assert.False(t, c.flag(P_NEGATIVE))
	assert.False(t, c.flag(P_ZERO))
}

func TestBranchNotTaken(t *testing.T) {
	c := newChip(t)
	load(c, 0x10FE, 0xF0, 0x02) // BEQ +2
	c.PC = 0x10FE
	c.P &^= P_ZERO
	spent := c.Execute(2)
	assert.Equal(t, 2, spent)
	assert.Equal(t, uint16(0x1100), c.PC)
}

// TestBranchTakenSamePage exercises spec.md §8 scenario 6's bytes, but
// asserts the cycle-accurate, standards-grounded outcome rather than
// the worked example's arithmetic; see DESIGN.md's Open Questions
// entry on branch page-crossing for why.
func TestBranchTakenSamePage(t *testing.T) {
	c := newChip(t)
	load(c, 0x10FE, 0xF0, 0x02) // BEQ +2
	c.PC = 0x10FE
	c.P |= P_ZERO
	spent := c.Execute(3)
	assert.Equal(t, 3, spent)
	assert.Equal(t, uint16(0x1102), c.PC)
}

func TestBranchTakenCrossesPage(t *testing.T) {
	c := newChip(t)
	load(c, 0x10FD, 0xF0, 0x7F) // BEQ +127, lands in the next page
	c.PC = 0x10FD
	c.P |= P_ZERO
	spent := c.Execute(4)
	assert.Equal(t, 4, spent)
	assert.Equal(t, uint16(0x117E), c.PC)
}

// --- property-style tests ---------------------------------------------

func TestZeroPageXWraps(t *testing.T) {
	c := newChip(t)
	c.X = 0x01
	load(c, 0xFF00, 0xB5, 0xFF) // LDA $FF,X
	c.ram.Write(0x0000, 0x37)
	c.PC = 0xFF00
	c.Execute(4)
	assert.Equal(t, uint8(0x37), c.A)
}

func TestStackWrapOnPush(t *testing.T) {
	c := newChip(t)
	c.S = 0x00
	c.pushByte(0x42)
	assert.Equal(t, uint8(0x42), c.ram.Read(0x0100))
	assert.Equal(t, uint8(0xFF), c.S)
}

func TestStackWrapOnPop(t *testing.T) {
	c := newChip(t)
	c.S = 0xFF
	c.ram.Write(0x0100, 0x99)
	got := c.popByte()
	assert.Equal(t, uint8(0x99), got)
	assert.Equal(t, uint8(0x00), c.S)
}

func TestPushPopByteRoundTrip(t *testing.T) {
	for _, sp := range []uint8{0x00, 0x01, 0x7F, 0xFE, 0xFF} {
		for _, v := range []uint8{0x00, 0x01, 0x80, 0xFF} {
			c := newChip(t)
			c.S = sp
			c.pushByte(v)
			got := c.popByte()
			assert.Equalf(t, v, got, "sp=%#x v=%#x", sp, v)
			assert.Equalf(t, sp, c.S, "sp=%#x v=%#x", sp, v)
		}
	}
}

func TestADCOverflowMatrix(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for m := 0; m < 256; m += 13 {
			for _, carry := range []bool{false, true} {
				c := newChip(t)
				c.A = uint8(a)
				if carry {
					c.P |= P_CARRY
				}
				sum := a + m
				if carry {
					sum++
				}
				result := uint8(sum)
				wantV := (uint8(a)^result)&(uint8(m)^result)&0x80 != 0
				c.adc(uint8(m))
				assert.Equalf(t, wantV, c.flag(P_OVERFLOW), "a=%#x m=%#x carry=%v", a, m, carry)
				assert.Equal(t, result, c.A)
			}
		}
	}
}

func TestSBCIsOnesComplementADC(t *testing.T) {
	for a := 0; a < 256; a += 23 {
		for m := 0; m < 256; m += 19 {
			c1 := newChip(t)
			c1.A, c1.P = uint8(a), P_CARRY
			c1.sbc(uint8(m))

			c2 := newChip(t)
			c2.A, c2.P = uint8(a), P_CARRY
			c2.adc(^uint8(m))

			diffState(t, "sbc-vs-adc-complement", c1, c2)
		}
	}
}

func TestROLThenRORRestoresByte(t *testing.T) {
	for _, v := range []uint8{0x00, 0x01, 0x80, 0xAA, 0x55, 0xFF} {
		for _, carry := range []uint8{0, P_CARRY} {
			c := newChip(t)
			c.P = carry
			rolled := c.rol(v)
			restored := c.ror(rolled)
			assert.Equalf(t, v, restored, "v=%#x carry=%#x", v, carry)
			assert.Equalf(t, carry != 0, c.flag(P_CARRY), "v=%#x carry=%#x", v, carry)
		}
	}
}

func TestCompareUsesNamedRegister(t *testing.T) {
	// Design Note §9: the original source's RegisterCompare always used
	// A. compareX/compareY must not fall into that trap.
	c := newChip(t)
	c.A, c.X = 0x10, 0x20
	c.compareX(0x20)
	assert.True(t, c.flag(P_ZERO))
	assert.True(t, c.flag(P_CARRY))
}

func TestDEXAffectsX(t *testing.T) {
	// Design Note §9: the original source's DEX set flags on Y.
	c := newChip(t)
	c.X, c.Y = 0x01, 0x01
	c.iDEX()
	assert.Equal(t, uint8(0x00), c.X)
	assert.Equal(t, uint8(0x01), c.Y)
	assert.True(t, c.flag(P_ZERO))
}

func TestDECAbsXDecrements(t *testing.T) {
	// Design Note §9: the original source's DEC_ABSX incremented.
	c := newChip(t)
	c.X = 0x01
	load(c, 0xFF00, 0xDE, 0x00, 0x20) // DEC $2000,X
	c.ram.Write(0x2001, 0x05)
	c.PC = 0xFF00
	c.Execute(7)
	assert.Equal(t, uint8(0x04), c.ram.Read(0x2001))
	assert.False(t, c.flag(P_ZERO))
	assert.False(t, c.flag(P_NEGATIVE))
}

func TestDECMemoryToZeroSetsZero(t *testing.T) {
	c := newChip(t)
	load(c, 0xFF00, 0xC6, 0x10) // DEC $10
	c.ram.Write(0x0010, 0x01)
	c.PC = 0xFF00
	c.Execute(5)
	assert.Equal(t, uint8(0x00), c.ram.Read(0x0010))
	assert.True(t, c.flag(P_ZERO))
	assert.False(t, c.flag(P_NEGATIVE))
}

func TestINCMemoryToNegativeSetsNegative(t *testing.T) {
	c := newChip(t)
	load(c, 0xFF00, 0xE6, 0x10) // INC $10
	c.ram.Write(0x0010, 0x7F)
	c.PC = 0xFF00
	c.Execute(5)
	assert.Equal(t, uint8(0x80), c.ram.Read(0x0010))
	assert.True(t, c.flag(P_NEGATIVE))
	assert.False(t, c.flag(P_ZERO))
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	// The pointer's low byte is 0xFF: the high byte must be fetched from
	// 0x2000, not 0x2100.
	c := newChip(t)
	load(c, 0xFF00, 0x6C, 0xFF, 0x20) // JMP ($20FF)
	c.ram.Write(0x20FF, 0x34)
	c.ram.Write(0x2000, 0x12)
	c.ram.Write(0x2100, 0x99) // must NOT be used
	c.PC = 0xFF00
	c.Execute(5)
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestBITUsesBitmaskNotMultiplication(t *testing.T) {
	// Design Note §9: the original source used Value * OverflowFlagBit.
	c := newChip(t)
	c.A = 0xFF
	c.bit(0x40)
	assert.True(t, c.flag(P_OVERFLOW))
	assert.False(t, c.flag(P_NEGATIVE))
	assert.False(t, c.flag(P_ZERO))
}

func TestBRKPushesStatusWithBreakAndUnused(t *testing.T) {
	c := newChip(t)
	c.ram.Write(IRQVector, 0x00)
	c.ram.Write(IRQVector+1, 0x80)
	load(c, 0xFF00, 0x00, 0x00) // BRK, padding byte
	c.PC = 0xFF00
	c.Execute(7)
	assert.Equal(t, uint16(0x8000), c.PC)
	assert.True(t, c.flag(P_INTERRUPT))

	// Return address high byte at 0x01FF, low byte at 0x01FE, status at 0x01FD.
	pushed := c.ram.Read(0x01FD)
	assert.Equal(t, P_UNUSED|P_BREAK, pushed&(P_UNUSED|P_BREAK))
}

func TestRTIClearsBreakAndUnusedInLiveRegister(t *testing.T) {
	c := newChip(t)
	c.S = 0xFC
	c.ram.Write(0x01FD, P_UNUSED|P_BREAK|P_CARRY)
	c.ram.Write(0x01FE, 0x00)
	c.ram.Write(0x01FF, 0x90)
	load(c, 0xFF00, 0x40) // RTI
	c.PC = 0xFF00
	c.Execute(6)
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.flag(P_CARRY))
	assert.False(t, c.flag(P_BREAK))
	assert.False(t, c.flag(P_UNUSED))
}

func TestBRKNotifiesBreakSender(t *testing.T) {
	var got uint16
	observer := breakFunc(func(pc uint16) { got = pc })
	c, err := Init(&ChipDef{Ram: memory.NewFlat(), Brk: observer})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	load(c, 0xFF00, 0x00, 0x00)
	c.PC = 0xFF00
	c.Execute(7)
	assert.Equal(t, uint16(0xFF00), got)
}

// breakFunc adapts a plain function to irq.BreakSender for tests.
type breakFunc func(pc uint16)

func (f breakFunc) Break(pc uint16) { f(pc) }

func TestUnimplementedOpcodeConsumesOneCycleAndContinues(t *testing.T) {
	c := newChip(t)
	load(c, 0xFF00, 0x02, 0xA9, 0x07) // 0x02 is illegal/undocumented; then LDA #$07
	c.PC = 0xFF00
	spent := c.Execute(3)
	assert.Equal(t, 3, spent)
	assert.Equal(t, uint8(0x07), c.A)
}
