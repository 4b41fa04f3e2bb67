package mips

// CPU-initiated memory access: enforces alignment (raising Adel/Ades
// rather than aborting, per spec.md §4.6) and the cache-isolation
// shortcut (SR bit 16), under which loads/stores become no-ops.
//
// ok is false when an exception was raised; callers must not proceed
// with register/memory side effects in that case.

func (c *CPU) loadByte(inst Instruction, addr uint32) (v uint8, ok bool) {
	if c.cop0.cacheIsolated() {
		return 0, true
	}
	return c.bus.ReadByte(addr), true
}

func (c *CPU) loadHalf(inst Instruction, addr uint32) (v uint16, ok bool) {
	if addr%2 != 0 {
		c.raise(inst, ExcAdel)
		return 0, false
	}
	if c.cop0.cacheIsolated() {
		return 0, true
	}
	return c.bus.ReadHalf(addr), true
}

func (c *CPU) loadWord(inst Instruction, addr uint32) (v uint32, ok bool) {
	if addr%4 != 0 {
		c.raise(inst, ExcAdel)
		return 0, false
	}
	if c.cop0.cacheIsolated() {
		return 0, true
	}
	return c.bus.ReadWord(addr), true
}

func (c *CPU) storeByte(inst Instruction, addr uint32, v uint8) (ok bool) {
	if c.cop0.cacheIsolated() {
		return true
	}
	c.bus.WriteByte(addr, v)
	return true
}

func (c *CPU) storeHalf(inst Instruction, addr uint32, v uint16) (ok bool) {
	if addr%2 != 0 {
		c.raise(inst, ExcAdes)
		return false
	}
	if c.cop0.cacheIsolated() {
		return true
	}
	c.bus.WriteHalf(addr, v)
	return true
}

func (c *CPU) storeWord(inst Instruction, addr uint32, v uint32) (ok bool) {
	if addr%4 != 0 {
		c.raise(inst, ExcAdes)
		return false
	}
	if c.cop0.cacheIsolated() {
		return true
	}
	c.bus.WriteWord(addr, v)
	return true
}
