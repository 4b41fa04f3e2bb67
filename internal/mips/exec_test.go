package mips

import "testing"

// encodeR builds an R-type SPECIAL instruction word.
func encodeR(rs, rt, rd Register, shamt uint32, funct uint32) uint32 {
	return (uint32(rs) << 21) | (uint32(rt) << 16) | (uint32(rd) << 11) | (shamt << 6) | funct
}

func encodeI(op uint32, rs, rt Register, imm uint32) uint32 {
	return (op << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | (imm & 0xFFFF)
}

func setReg(c *CPU, r Register, v uint32) {
	c.regs.writeOut(r, v)
	c.regs.promote()
}

func TestORCommutative(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0x0F0F)
	setReg(c, V0, 0xF0F0)

	inst1 := Instruction{Word: encodeR(At, V0, A0, 0, 0x25)} // OR $a0, $at, $v0
	c.execSpecial(inst1)
	c.regs.promote()
	want := c.Reg(A0)

	setReg(c, At, 0x0F0F)
	setReg(c, V0, 0xF0F0)
	inst2 := Instruction{Word: encodeR(V0, At, A1, 0, 0x25)} // OR $a1, $v0, $at
	c.execSpecial(inst2)
	c.regs.promote()
	if got := c.Reg(A1); got != want {
		t.Errorf("OR not commutative: rs,rt = %#08x, rt,rs = %#08x", want, got)
	}
}

func TestDivLaw(t *testing.T) {
	cases := []struct{ s, t int32 }{
		{100, 7}, {-100, 7}, {100, -7}, {-100, -7}, {7, 100}, {0, 5},
	}
	for _, tc := range cases {
		bus := newFakeBus()
		c := New(bus)
		setReg(c, At, uint32(tc.s))
		setReg(c, V0, uint32(tc.t))
		c.execDiv(Instruction{Word: encodeR(At, V0, 0, 0, 0x1A)})
		lo := int32(c.lo)
		hi := int32(c.hi)
		if got := lo*tc.t + hi; got != tc.s {
			t.Errorf("DIV(%d,%d): LO*t+HI = %d, want %d", tc.s, tc.t, got, tc.s)
		}
	}
}

func TestDivMinIntByNegOne(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0x8000_0000) // MinInt32
	setReg(c, V0, 0xFFFF_FFFF) // -1
	c.execDiv(Instruction{Word: encodeR(At, V0, 0, 0, 0x1A)})
	if c.lo != 0x8000_0000 || c.hi != 0 {
		t.Errorf("DIV(MinInt32,-1): LO=%#08x HI=%#08x, want LO=0x80000000 HI=0", c.lo, c.hi)
	}
}

func TestSLT(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0xFFFF_FFFF) // -1
	setReg(c, V0, 1)
	c.execSpecial(Instruction{Word: encodeR(At, V0, A0, 0, 0x2A)}) // SLT $a0,$at,$v0
	c.regs.promote()
	if got := c.Reg(A0); got != 1 {
		t.Errorf("SLT(-1,1) = %d, want 1", got)
	}
}

func TestSLTU(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0xFFFF_FFFF) // -1: huge as unsigned
	setReg(c, V0, 1)
	c.execSpecial(Instruction{Word: encodeR(At, V0, A0, 0, 0x2B)}) // SLTU $a0,$at,$v0
	c.regs.promote()
	if got := c.Reg(A0); got != 0 {
		t.Errorf("SLTU(huge,1) = %d, want 0", got)
	}
}

func TestShifts(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0x8000_0001)

	c.execSpecial(Instruction{Word: encodeR(0, At, V0, 1, 0x00)}) // SLL $v0,$at,1
	c.regs.promote()
	if got := c.Reg(V0); got != 0x0000_0002 {
		t.Errorf("SLL = %#08x, want 0x00000002", got)
	}

	c.execSpecial(Instruction{Word: encodeR(0, At, V1, 1, 0x02)}) // SRL $v1,$at,1
	c.regs.promote()
	if got := c.Reg(V1); got != 0x4000_0000 {
		t.Errorf("SRL = %#08x, want 0x40000000", got)
	}

	c.execSpecial(Instruction{Word: encodeR(0, At, A0, 1, 0x03)}) // SRA $a0,$at,1
	c.regs.promote()
	if got := c.Reg(A0); got != 0xC000_0000 {
		t.Errorf("SRA = %#08x, want 0xC0000000", got)
	}
}

func TestMult(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0xFFFF_FFFE) // -2
	setReg(c, V0, 3)
	c.execSpecial(Instruction{Word: encodeR(At, V0, 0, 0, 0x18)}) // MULT
	if got := int64(c.hi)<<32 | int64(c.lo); got != -6 {
		t.Errorf("MULT(-2,3) = %d, want -6", got)
	}
}

func TestMultu(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	setReg(c, At, 0xFFFF_FFFF)
	setReg(c, V0, 2)
	c.execSpecial(Instruction{Word: encodeR(At, V0, 0, 0, 0x19)}) // MULTU
	got := uint64(c.hi)<<32 | uint64(c.lo)
	want := uint64(0xFFFF_FFFF) * 2
	if got != want {
		t.Errorf("MULTU(0xFFFFFFFF,2) = %#016x, want %#016x", got, want)
	}
}

func TestRFERestoresModeStack(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.cop0.setSR(0x01) // only the current interrupt-enable bit set
	c.cop0.pushMode()  // simulate an exception having pushed the stack
	c.execCop0(Instruction{Word: encodeR(0x10, 0, 0, 0, 0x10)})
	if got := c.cop0.sr() & 0x3F; got != 0x01 {
		t.Errorf("SR mode stack after RFE = %#02x, want 0x01", got)
	}
}
