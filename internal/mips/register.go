package mips

// Register names general-purpose registers per the standard MIPS
// convention, used only for diagnostics and logging.
type Register uint8

const (
	Zero Register = iota
	At
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	Gp
	Sp
	Fp
	Ra
)

var registerNames = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

func (r Register) String() string {
	if int(r) >= len(registerNames) {
		return "$?"
	}
	return registerNames[r]
}

// registerFile holds the 32 general-purpose registers plus the
// shadow ("out") copy that the current instruction writes into.
// Register 0 is wired to zero: reads always return 0, writes are
// silently absorbed.
type registerFile struct {
	regs [32]uint32
	out  [32]uint32
}

func (rf *registerFile) read(r Register) uint32 {
	if r == Zero {
		return 0
	}
	return rf.regs[r]
}

// writeOut writes to the shadow file, visible only after promote.
func (rf *registerFile) writeOut(r Register, v uint32) {
	if r == Zero {
		return
	}
	rf.out[r] = v
}

// promote copies the shadow file over the visible file, completing
// the current instruction's register writes.
func (rf *registerFile) promote() {
	rf.regs = rf.out
}

// sync brings the shadow file up to date with the visible file; call
// at the start of a step before any writes land in out, so writes
// that didn't happen this instruction don't get clobbered by a stale
// shadow copy.
func (rf *registerFile) sync() {
	rf.out = rf.regs
}
