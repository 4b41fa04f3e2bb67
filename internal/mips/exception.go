package mips

// Exception identifies a MIPS architectural exception by its CAUSE
// code. Only a subset is ever raised by this core; the rest are
// storage-only values a BIOS might poke at but this core never
// produces.
type Exception uint32

const (
	ExcInt     Exception = 0x00
	ExcMod     Exception = 0x01
	ExcTlbl    Exception = 0x02
	ExcTlbs    Exception = 0x03
	ExcAdel    Exception = 0x04
	ExcAdes    Exception = 0x05
	ExcIbe     Exception = 0x06
	ExcDbe     Exception = 0x07
	ExcSyscall Exception = 0x08
	ExcBp      Exception = 0x09
	ExcRi      Exception = 0x0A
	ExcCpu     Exception = 0x0B
	ExcOv      Exception = 0x0C
)

func (e Exception) String() string {
	switch e {
	case ExcInt:
		return "Int"
	case ExcMod:
		return "Mod"
	case ExcTlbl:
		return "TLBL"
	case ExcTlbs:
		return "TLBS"
	case ExcAdel:
		return "AdEL"
	case ExcAdes:
		return "AdES"
	case ExcIbe:
		return "IBE"
	case ExcDbe:
		return "DBE"
	case ExcSyscall:
		return "Syscall"
	case ExcBp:
		return "Bp"
	case ExcRi:
		return "RI"
	case ExcCpu:
		return "CpU"
	case ExcOv:
		return "Ov"
	default:
		return "?"
	}
}

const (
	causeExcCodeShift = 2
	causeExcCodeMask  = 0x1F << causeExcCodeShift
	causeBD           = 1 << 31

	handlerRAM  = 0x8000_0080
	handlerBoot = 0xBFC0_0180
)

// raiseException implements spec.md's exception dispatch algorithm:
// set CAUSE.BD only when the excepting instruction sits in a branch
// delay slot (given by inDelaySlot, which Step latches when it
// consumes a pending branch, since by the time the exception is
// raised PC has already been redirected), back up EPC by 4 in that
// case, push the
// exception code into CAUSE, push the SR mode stack, and jump to the
// boot or RAM exception handler depending on SR.BEV.
func (c *CPU) raiseException(inst Instruction, exc Exception, inDelaySlot bool) {
	epc := inst.PC
	cause := c.cop0.read(Cop0Cause)
	cause &^= causeBD
	if inDelaySlot {
		cause |= causeBD
		epc -= 4
	}
	cause &^= causeExcCodeMask
	cause |= (uint32(exc) << causeExcCodeShift) & causeExcCodeMask
	c.cop0.write(Cop0Cause, cause)
	c.cop0.write(Cop0Epc, epc)
	c.cop0.pushMode()

	if c.cop0.bev() {
		c.pc = handlerBoot
	} else {
		c.pc = handlerRAM
	}
	// An exception discards whatever branch/load was pending for
	// the instruction that follows the handler jump.
	c.pendingBranch = nil
	c.pendingLoad = nil
}
