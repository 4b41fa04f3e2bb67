package mips

import "testing"

func TestDecodeFields(t *testing.T) {
	// ADD $3,$1,$2 -> op=0, rs=1, rt=2, rd=3, shamt=0, funct=0x20
	i := Instruction{Word: 0x00221820}
	if got := i.op(); got != 0 {
		t.Errorf("op = %#x, want 0", got)
	}
	if got := i.rs(); got != At {
		t.Errorf("rs = %v, want At", got)
	}
	if got := i.rt(); got != V0 {
		t.Errorf("rt = %v, want V0", got)
	}
	if got := i.rd(); got != V1 {
		t.Errorf("rd = %v, want V1", got)
	}
	if got := i.funct(); got != 0x20 {
		t.Errorf("funct = %#x, want 0x20", got)
	}
}

func TestSignAndZeroExtend(t *testing.T) {
	i := Instruction{Word: 0xFFFF8000}
	if got := i.signExtImm(); got != 0xFFFF8000 {
		t.Errorf("signExtImm(0x8000) = %#08x, want 0xFFFF8000", got)
	}
	if got := i.zeroExtImm(); got != 0x8000 {
		t.Errorf("zeroExtImm(0x8000) = %#08x, want 0x8000", got)
	}
}

func TestSignExtendMaskRoundTrip(t *testing.T) {
	for imm := uint32(0); imm <= 0xFFFF; imm += 97 {
		i := Instruction{Word: imm}
		if got := i.signExtImm() & 0xFFFF; got != imm {
			t.Errorf("sext(%#04x)&0xFFFF = %#04x, want %#04x", imm, got, imm)
		}
	}
}

func TestTargetAndJumpField(t *testing.T) {
	i := Instruction{Word: 0x0BF00000}
	if got := i.op(); got != 0x02 {
		t.Errorf("op = %#x, want 0x02 (J)", got)
	}
	if got := i.target(); got != 0x03F0_0000 {
		t.Errorf("target = %#x, want 0x3F00000", got)
	}
}
