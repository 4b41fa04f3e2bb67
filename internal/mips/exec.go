package mips

import "fmt"

// execute decodes and dispatches a single instruction via a two-level
// match (primary opcode, then funct/branch-op/cop-op), per spec.md's
// design note that this is clearer than a flat opcode table at this
// interpretive speed. Unimplemented primary opcodes raise Ri, as do
// unrecognized REGIMM branch-ops and COP0 cop-ops; an unrecognized
// SPECIAL funct panics with the funct and PC, since it indicates
// either a decode bug or an instruction genuinely outside MIPS-I.
func (c *CPU) execute(inst Instruction) {
	switch inst.op() {
	case 0x00:
		c.execSpecial(inst)
	case 0x01:
		c.execRegimm(inst)
	case 0x02:
		c.setPendingBranch((c.pc &^ 0x0FFF_FFFF) | (inst.target() << 2))
	case 0x03:
		c.writeReg(Ra, c.pc+4)
		c.setPendingBranch((c.pc &^ 0x0FFF_FFFF) | (inst.target() << 2))
	case 0x04: // BEQ
		c.branchIf(inst, c.regs.read(inst.rs()) == c.regs.read(inst.rt()))
	case 0x05: // BNE
		c.branchIf(inst, c.regs.read(inst.rs()) != c.regs.read(inst.rt()))
	case 0x06: // BLEZ
		c.branchIf(inst, int32(c.regs.read(inst.rs())) <= 0)
	case 0x07: // BGTZ
		c.branchIf(inst, int32(c.regs.read(inst.rs())) > 0)
	case 0x08: // ADDI
		c.execAddImmediate(inst, true)
	case 0x09: // ADDIU
		c.execAddImmediate(inst, false)
	case 0x0A: // SLTI
		v := int32(c.regs.read(inst.rs())) < int32(inst.signExtImm())
		c.writeReg(inst.rt(), boolToWord(v))
	case 0x0B: // SLTIU
		v := c.regs.read(inst.rs()) < inst.signExtImm()
		c.writeReg(inst.rt(), boolToWord(v))
	case 0x0C: // ANDI
		c.writeReg(inst.rt(), c.regs.read(inst.rs())&inst.zeroExtImm())
	case 0x0D: // ORI
		c.writeReg(inst.rt(), c.regs.read(inst.rs())|inst.zeroExtImm())
	case 0x0E: // XORI
		c.writeReg(inst.rt(), c.regs.read(inst.rs())^inst.zeroExtImm())
	case 0x0F: // LUI
		c.writeReg(inst.rt(), inst.zeroExtImm()<<16)
	case 0x10: // COP0
		c.execCop0(inst)
	case 0x11, 0x13: // COP1, COP3: no such coprocessor in this core
		c.raise(inst, ExcCpu)
	case 0x12: // COP2 (GTE): omitted by this spec
		c.raise(inst, ExcCpu)
	case 0x20: // LB
		c.execLoadByte(inst, true)
	case 0x21: // LH
		c.execLoadHalf(inst, true)
	case 0x22: // LWL
		c.execLoadUnaligned(inst, true)
	case 0x23: // LW
		c.execLoadWord(inst)
	case 0x24: // LBU
		c.execLoadByte(inst, false)
	case 0x25: // LHU
		c.execLoadHalf(inst, false)
	case 0x26: // LWR
		c.execLoadUnaligned(inst, false)
	case 0x28: // SB
		addr := c.regs.read(inst.rs()) + inst.signExtImm()
		c.storeByte(inst, addr, uint8(c.regs.read(inst.rt())))
	case 0x29: // SH
		addr := c.regs.read(inst.rs()) + inst.signExtImm()
		c.storeHalf(inst, addr, uint16(c.regs.read(inst.rt())))
	case 0x2A: // SWL
		c.execStoreUnaligned(inst, true)
	case 0x2B: // SW
		addr := c.regs.read(inst.rs()) + inst.signExtImm()
		c.storeWord(inst, addr, c.regs.read(inst.rt()))
	case 0x2E: // SWR
		c.execStoreUnaligned(inst, false)
	default:
		c.raise(inst, ExcRi)
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) branchIf(inst Instruction, taken bool) {
	if taken {
		target := inst.PC + 4 + (inst.signExtImm() << 2)
		c.setPendingBranch(target)
	}
}

func (c *CPU) execAddImmediate(inst Instruction, checkOverflow bool) {
	a := c.regs.read(inst.rs())
	b := inst.signExtImm()
	sum := a + b
	if checkOverflow && addOverflows(a, b, sum) {
		c.raise(inst, ExcOv)
		return
	}
	c.writeReg(inst.rt(), sum)
}

// addOverflows reports signed 32-bit overflow of a+b=sum: operands of
// the same sign producing a result of the opposite sign.
func addOverflows(a, b, sum uint32) bool {
	return (a^sum)&(b^sum)&0x8000_0000 != 0
}

func subOverflows(a, b, diff uint32) bool {
	return (a^b)&(a^diff)&0x8000_0000 != 0
}

func (c *CPU) execLoadByte(inst Instruction, signed bool) {
	addr := c.regs.read(inst.rs()) + inst.signExtImm()
	v, ok := c.loadByte(inst, addr)
	if !ok {
		return
	}
	var ext uint32
	if signed {
		ext = uint32(int32(int8(v)))
	} else {
		ext = uint32(v)
	}
	c.setPendingLoad(inst.rt(), ext)
}

func (c *CPU) execLoadHalf(inst Instruction, signed bool) {
	addr := c.regs.read(inst.rs()) + inst.signExtImm()
	v, ok := c.loadHalf(inst, addr)
	if !ok {
		return
	}
	var ext uint32
	if signed {
		ext = uint32(int32(int16(v)))
	} else {
		ext = uint32(v)
	}
	c.setPendingLoad(inst.rt(), ext)
}

func (c *CPU) execLoadWord(inst Instruction) {
	addr := c.regs.read(inst.rs()) + inst.signExtImm()
	v, ok := c.loadWord(inst, addr)
	if !ok {
		return
	}
	c.setPendingLoad(inst.rt(), v)
}

// execLoadUnaligned implements LWL (left=true) / LWR (left=false):
// an unaligned 32-bit load that merges bytes of the aligned word
// containing addr with the destination register's current value,
// per the little-endian byte-merge table in the MIPS R3000 reference.
func (c *CPU) execLoadUnaligned(inst Instruction, left bool) {
	addr := c.regs.read(inst.rs()) + inst.signExtImm()
	aligned := addr &^ 3
	word, ok := c.loadWord(inst, aligned)
	if !ok {
		return
	}
	// LWL/LWR merge into the destination register's value as seen
	// by this instruction, which follows the same load-delay
	// visibility rule as any other source-register read.
	cur := c.regs.read(inst.rt())

	var result uint32
	if left {
		switch addr & 3 {
		case 0:
			result = (cur & 0x00FF_FFFF) | (word << 24)
		case 1:
			result = (cur & 0x0000_FFFF) | (word << 16)
		case 2:
			result = (cur & 0x0000_00FF) | (word << 8)
		case 3:
			result = (cur & 0x0000_0000) | (word << 0)
		}
	} else {
		switch addr & 3 {
		case 0:
			result = (cur & 0x0000_0000) | (word >> 0)
		case 1:
			result = (cur & 0xFF00_0000) | (word >> 8)
		case 2:
			result = (cur & 0xFFFF_0000) | (word >> 16)
		case 3:
			result = (cur & 0xFFFF_FF00) | (word >> 24)
		}
	}
	c.setPendingLoad(inst.rt(), result)
}

// execStoreUnaligned implements SWL (left=true) / SWR (left=false).
func (c *CPU) execStoreUnaligned(inst Instruction, left bool) {
	addr := c.regs.read(inst.rs()) + inst.signExtImm()
	aligned := addr &^ 3
	mem, ok := c.loadWord(inst, aligned)
	if !ok {
		return
	}
	rt := c.regs.read(inst.rt())

	var result uint32
	if left {
		switch addr & 3 {
		case 0:
			result = (mem & 0xFFFF_FF00) | (rt >> 24)
		case 1:
			result = (mem & 0xFFFF_0000) | (rt >> 16)
		case 2:
			result = (mem & 0xFF00_0000) | (rt >> 8)
		case 3:
			result = (mem & 0x0000_0000) | (rt >> 0)
		}
	} else {
		switch addr & 3 {
		case 0:
			result = (mem & 0x0000_0000) | (rt << 0)
		case 1:
			result = (mem & 0x0000_00FF) | (rt << 8)
		case 2:
			result = (mem & 0x0000_FFFF) | (rt << 16)
		case 3:
			result = (mem & 0x00FF_FFFF) | (rt << 24)
		}
	}
	c.storeWord(inst, aligned, result)
}

func (c *CPU) execSpecial(inst Instruction) {
	switch inst.funct() {
	case 0x00: // SLL
		c.writeReg(inst.rd(), c.regs.read(inst.rt())<<inst.shamt())
	case 0x02: // SRL
		c.writeReg(inst.rd(), c.regs.read(inst.rt())>>inst.shamt())
	case 0x03: // SRA
		c.writeReg(inst.rd(), uint32(int32(c.regs.read(inst.rt()))>>inst.shamt()))
	case 0x04: // SLLV
		c.writeReg(inst.rd(), c.regs.read(inst.rt())<<(c.regs.read(inst.rs())&0x1F))
	case 0x06: // SRLV
		c.writeReg(inst.rd(), c.regs.read(inst.rt())>>(c.regs.read(inst.rs())&0x1F))
	case 0x07: // SRAV
		c.writeReg(inst.rd(), uint32(int32(c.regs.read(inst.rt()))>>(c.regs.read(inst.rs())&0x1F)))
	case 0x08: // JR
		c.setPendingBranch(c.regs.read(inst.rs()))
	case 0x09: // JALR
		target := c.regs.read(inst.rs())
		c.writeReg(inst.rd(), c.pc+4)
		c.setPendingBranch(target)
	case 0x0C: // SYSCALL
		c.raise(inst, ExcSyscall)
	case 0x0D: // BREAK
		c.raise(inst, ExcBp)
	case 0x10: // MFHI
		c.writeReg(inst.rd(), c.hi)
	case 0x11: // MTHI
		c.hi = c.regs.read(inst.rs())
	case 0x12: // MFLO
		c.writeReg(inst.rd(), c.lo)
	case 0x13: // MTLO
		c.lo = c.regs.read(inst.rs())
	case 0x18: // MULT
		result := int64(int32(c.regs.read(inst.rs()))) * int64(int32(c.regs.read(inst.rt())))
		c.lo = uint32(result)
		c.hi = uint32(result >> 32)
	case 0x19: // MULTU
		result := uint64(c.regs.read(inst.rs())) * uint64(c.regs.read(inst.rt()))
		c.lo = uint32(result)
		c.hi = uint32(result >> 32)
	case 0x1A: // DIV
		c.execDiv(inst)
	case 0x1B: // DIVU
		c.execDivu(inst)
	case 0x20: // ADD
		a, b := c.regs.read(inst.rs()), c.regs.read(inst.rt())
		sum := a + b
		if addOverflows(a, b, sum) {
			c.raise(inst, ExcOv)
			return
		}
		c.writeReg(inst.rd(), sum)
	case 0x21: // ADDU
		c.writeReg(inst.rd(), c.regs.read(inst.rs())+c.regs.read(inst.rt()))
	case 0x22: // SUB
		a, b := c.regs.read(inst.rs()), c.regs.read(inst.rt())
		diff := a - b
		if subOverflows(a, b, diff) {
			c.raise(inst, ExcOv)
			return
		}
		c.writeReg(inst.rd(), diff)
	case 0x23: // SUBU
		c.writeReg(inst.rd(), c.regs.read(inst.rs())-c.regs.read(inst.rt()))
	case 0x24: // AND
		c.writeReg(inst.rd(), c.regs.read(inst.rs())&c.regs.read(inst.rt()))
	case 0x25: // OR
		c.writeReg(inst.rd(), c.regs.read(inst.rs())|c.regs.read(inst.rt()))
	case 0x26: // XOR
		c.writeReg(inst.rd(), c.regs.read(inst.rs())^c.regs.read(inst.rt()))
	case 0x27: // NOR
		c.writeReg(inst.rd(), ^(c.regs.read(inst.rs()) | c.regs.read(inst.rt())))
	case 0x2A: // SLT
		v := int32(c.regs.read(inst.rs())) < int32(c.regs.read(inst.rt()))
		c.writeReg(inst.rd(), boolToWord(v))
	case 0x2B: // SLTU
		v := c.regs.read(inst.rs()) < c.regs.read(inst.rt())
		c.writeReg(inst.rd(), boolToWord(v))
	default:
		panic(fmt.Sprintf("mips: unimplemented SPECIAL funct %#02x at pc %#08x", inst.funct(), inst.PC))
	}
}

// execDiv implements signed division with the documented fixups for
// divide-by-zero and the (MinInt32, -1) overflow case.
func (c *CPU) execDiv(inst Instruction) {
	s := int32(c.regs.read(inst.rs()))
	t := int32(c.regs.read(inst.rt()))
	switch {
	case t == 0:
		if s >= 0 {
			c.lo = 0xFFFF_FFFF
		} else {
			c.lo = 1
		}
		c.hi = uint32(s)
	case s == -0x8000_0000 && t == -1:
		c.lo = 0x8000_0000
		c.hi = 0
	default:
		c.lo = uint32(s / t)
		c.hi = uint32(s % t)
	}
}

func (c *CPU) execDivu(inst Instruction) {
	s := c.regs.read(inst.rs())
	t := c.regs.read(inst.rt())
	if t == 0 {
		c.lo = 0xFFFF_FFFF
		c.hi = s
		return
	}
	c.lo = s / t
	c.hi = s % t
}

func (c *CPU) execRegimm(inst Instruction) {
	s := int32(c.regs.read(inst.rs()))
	switch inst.branchOp() {
	case 0x00: // BLTZ
		c.branchIf(inst, s < 0)
	case 0x01: // BGEZ
		c.branchIf(inst, s >= 0)
	case 0x10: // BLTZAL
		c.writeReg(Ra, c.pc+4)
		c.branchIf(inst, s < 0)
	case 0x11: // BGEZAL
		c.writeReg(Ra, c.pc+4)
		c.branchIf(inst, s >= 0)
	default:
		c.raise(inst, ExcRi)
	}
}

func (c *CPU) execCop0(inst Instruction) {
	switch inst.copOp() {
	case 0x00: // MFC0
		c.setPendingLoad(inst.rt(), c.cop0.read(uint32(inst.rd())))
	case 0x04: // MTC0
		c.cop0.write(uint32(inst.rd()), c.regs.read(inst.rt()))
	case 0x10: // cop-op field is rs=0x10: either RFE or unimplemented
		if inst.funct() == 0x10 {
			c.cop0.popMode()
		} else {
			c.raise(inst, ExcRi)
		}
	default:
		c.raise(inst, ExcRi)
	}
}
