// Package mips implements a MIPS R3000A interpreter: the instruction
// set, branch/load delay slots, COP0 system control, and exception
// dispatch needed to execute the PSX boot ROM.
package mips

import (
	"fmt"
)

// BootPC is the virtual address the CPU starts executing at,
// mirroring the PSX boot vector.
const BootPC = 0xBFC0_0000

// Bus is the memory-mapped device bus the CPU fetches instructions
// and performs loads/stores through. Addresses are virtual; the bus
// is responsible for region masking and device dispatch. Callers
// (the CPU) are responsible for alignment checks before calling the
// Word/Half variants.
type Bus interface {
	ReadByte(addr uint32) uint8
	WriteByte(addr uint32, v uint8)
	ReadHalf(addr uint32) uint16
	WriteHalf(addr uint32, v uint16)
	ReadWord(addr uint32) uint32
	WriteWord(addr uint32, v uint32)
}

type pendingLoad struct {
	reg Register
	val uint32
}

// CPU holds all MIPS R3000A execution state: the register file, PC,
// HI/LO, COP0, and the one-slot pending-branch/pending-load buffers
// that realize the architecture's delay slots.
type CPU struct {
	regs registerFile
	pc   uint32
	hi   uint32
	lo   uint32
	cop0 cop0

	pendingBranch *uint32
	pendingLoad   *pendingLoad

	bus Bus

	// lastFetch records the instruction currently executing, so an
	// exception raised mid-instruction can report its PC.
	lastFetch Instruction
	// inDelaySlot is true when lastFetch is the instruction
	// occupying a branch delay slot.
	inDelaySlot bool
}

// New constructs a CPU wired to bus, with PC at the boot vector and
// COP0/register state zeroed (register 0 is permanently zero; all
// other state starts at zero per architectural reset behavior).
func New(bus Bus) *CPU {
	return &CPU{
		pc:  BootPC,
		bus: bus,
	}
}

func (c *CPU) PC() uint32 { return c.pc }

func (c *CPU) Reg(r Register) uint32 { return c.regs.read(r) }

func (c *CPU) COP0(index uint32) uint32 { return c.cop0.read(index) }

// Step executes exactly one instruction, implementing spec.md's
// seven-step algorithm: alignment check, fetch, PC advance, branch
// delay consumption, load delay consumption, decode/dispatch,
// register-file promotion.
func (c *CPU) Step() {
	if c.pc%4 != 0 {
		panic(fmt.Sprintf("mips: unaligned PC %#08x", c.pc))
	}

	fetchPC := c.pc
	word := c.bus.ReadWord(c.pc)
	inst := Instruction{Word: word, PC: fetchPC}
	c.pc += 4

	c.inDelaySlot = c.pendingBranch != nil
	branching := c.pendingBranch
	c.pendingBranch = nil
	if branching != nil {
		c.pc = *branching
	}

	c.regs.sync()

	if c.pendingLoad != nil {
		c.regs.writeOut(c.pendingLoad.reg, c.pendingLoad.val)
		c.pendingLoad = nil
	}

	c.lastFetch = inst
	c.execute(inst)

	c.regs.promote()
}

// setPendingBranch records the target of a taken branch/jump, to be
// consumed at the start of the next Step (realizing the one
// instruction branch-delay slot).
func (c *CPU) setPendingBranch(target uint32) {
	t := target
	c.pendingBranch = &t
}

// setPendingLoad records a load's destination/value, to be applied to
// the shadow register file at the start of the next Step (realizing
// the load-delay slot).
func (c *CPU) setPendingLoad(r Register, v uint32) {
	c.pendingLoad = &pendingLoad{reg: r, val: v}
}

// writeReg writes directly into the current instruction's shadow
// file, for non-load register writes (arithmetic, etc).
func (c *CPU) writeReg(r Register, v uint32) {
	c.regs.writeOut(r, v)
}

// raise reports exc for the instruction currently executing. inst.PC
// is the address Step fetched it from; whether that instruction
// itself occupies a branch delay slot was latched into
// c.inDelaySlot when Step consumed the pending branch.
func (c *CPU) raise(inst Instruction, exc Exception) {
	c.raiseException(inst, exc, c.inDelaySlot)
}
