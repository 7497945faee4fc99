package cpu

// zeroCheck sets or clears Z based on whether reg is zero.
func (p *Chip) zeroCheck(reg uint8) {
	p.setFlag(P_ZERO, reg == 0)
}

// negativeCheck sets or clears N from bit 7 of reg.
func (p *Chip) negativeCheck(reg uint8) {
	p.setFlag(P_NEGATIVE, reg&0x80 != 0)
}

// setFlag sets mask in P if set is true, otherwise clears it.
func (p *Chip) setFlag(mask uint8, set bool) {
	if set {
		p.P |= mask
	} else {
		p.P &^= mask
	}
}

// flag reports whether every bit in mask is currently set.
func (p *Chip) flag(mask uint8) bool {
	return p.P&mask == mask
}

// adc implements ADC and, via one's-complementing the operand, SBC.
// Decimal mode is an explicit non-goal (spec.md §1): D is observable
// and settable but never consulted here.
func (p *Chip) adc(val uint8) {
	carry := uint16(p.P & P_CARRY)
	sum := uint16(p.A) + uint16(val) + carry
	result := uint8(sum)
	// Overflow iff the operand signs agreed but the result sign disagreed.
	p.setFlag(P_OVERFLOW, (p.A^result)&(val^result)&0x80 != 0)
	p.setFlag(P_CARRY, sum > 0xFF)
	p.A = result
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
}

// sbc implements SBC as ADC of the one's complement of the operand,
// per spec.md §4.4, preserving the "C=1 means no borrow" convention.
func (p *Chip) sbc(val uint8) {
	p.adc(^val)
}

// and implements AND.
func (p *Chip) and(val uint8) {
	p.A &= val
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
}

// ora implements ORA.
func (p *Chip) ora(val uint8) {
	p.A |= val
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
}

// eor implements EOR.
func (p *Chip) eor(val uint8) {
	p.A ^= val
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
}

// asl shifts val left by one, setting C from the old bit 7.
func (p *Chip) asl(val uint8) uint8 {
	p.setFlag(P_CARRY, val&0x80 != 0)
	res := val << 1
	p.zeroCheck(res)
	p.negativeCheck(res)
	return res
}

// lsr shifts val right by one, setting C from the old bit 0. N is
// always cleared since the new bit 7 is always 0.
func (p *Chip) lsr(val uint8) uint8 {
	p.setFlag(P_CARRY, val&0x01 != 0)
	res := val >> 1
	p.zeroCheck(res)
	p.P &^= P_NEGATIVE
	return res
}

// rol rotates val left through carry: new bit 0 is the old C, new C is
// the old bit 7.
func (p *Chip) rol(val uint8) uint8 {
	oldCarry := p.P & P_CARRY
	p.setFlag(P_CARRY, val&0x80 != 0)
	res := val<<1 | oldCarry
	p.zeroCheck(res)
	p.negativeCheck(res)
	return res
}

// ror rotates val right through carry: new bit 7 is the old C, new C
// is the old bit 0. The original C++ source this was ported from
// forgot to return the rotated value (Design Note §9); this does not
// repeat that bug.
func (p *Chip) ror(val uint8) uint8 {
	oldCarry := p.P & P_CARRY
	p.setFlag(P_CARRY, val&0x01 != 0)
	res := val>>1 | (oldCarry << 7)
	p.zeroCheck(res)
	p.negativeCheck(res)
	return res
}

// bit implements BIT: Z from A&M, N and V copied directly from bits 7
// and 6 of M. A is never modified. The original source used
// multiplication where a mask was intended for V (Design Note §9);
// this uses a bit test.
func (p *Chip) bit(val uint8) {
	p.setFlag(P_ZERO, p.A&val == 0)
	p.setFlag(P_NEGATIVE, val&0x80 != 0)
	p.setFlag(P_OVERFLOW, val&0x40 != 0)
}

// compare implements the shared CMP/CPX/CPY semantics against the
// register actually named by the opcode. The original C++ source's
// RegisterCompare always compared against A regardless of which
// register's opcode called it (Design Note §9); compareA/compareX/
// compareY below each pass their own register instead.
func (p *Chip) compare(reg, val uint8) {
	diff := uint16(reg) - uint16(val)
	p.setFlag(P_CARRY, reg >= val)
	p.setFlag(P_ZERO, reg == val)
	p.negativeCheck(uint8(diff))
}

func (p *Chip) compareA(val uint8) { p.compare(p.A, val) }
func (p *Chip) compareX(val uint8) { p.compare(p.X, val) }
func (p *Chip) compareY(val uint8) { p.compare(p.Y, val) }
