package mips

// Instruction is an opaque 32-bit MIPS-I word plus the PC it was
// fetched from, used for exception reporting and logging. Decoder
// accessors below are pure functions of the word.
type Instruction struct {
	Word uint32
	PC   uint32
}

func (i Instruction) op() uint32     { return (i.Word >> 26) & 0x3F }
func (i Instruction) rs() Register   { return Register((i.Word >> 21) & 0x1F) }
func (i Instruction) rt() Register   { return Register((i.Word >> 16) & 0x1F) }
func (i Instruction) rd() Register   { return Register((i.Word >> 11) & 0x1F) }
func (i Instruction) shamt() uint32  { return (i.Word >> 6) & 0x1F }
func (i Instruction) funct() uint32  { return i.Word & 0x3F }
func (i Instruction) imm() uint32    { return i.Word & 0xFFFF }
func (i Instruction) target() uint32 { return i.Word & 0x03FFFFFF }
func (i Instruction) copOp() uint32  { return (i.Word >> 21) & 0x1F }
func (i Instruction) branchOp() uint32 { return (i.Word >> 16) & 0x1F }

// signExtImm performs a 16->32 arithmetic sign-extension of the
// instruction's immediate field.
func (i Instruction) signExtImm() uint32 {
	return uint32(int32(int16(i.imm())))
}

// zeroExtImm performs a logical (zero) 16->32 extension of the
// instruction's immediate field.
func (i Instruction) zeroExtImm() uint32 {
	return i.imm()
}
