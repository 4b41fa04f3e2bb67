package mips

import "testing"

func TestCacheIsolationBit(t *testing.T) {
	var c cop0
	if c.cacheIsolated() {
		t.Fatal("cacheIsolated() true before SR bit 16 set")
	}
	c.setSR(srIsC)
	if !c.cacheIsolated() {
		t.Fatal("cacheIsolated() false after SR bit 16 set")
	}
}

func TestBEVBit(t *testing.T) {
	var c cop0
	if c.bev() {
		t.Fatal("bev() true before SR bit 22 set")
	}
	c.setSR(srBEV)
	if !c.bev() {
		t.Fatal("bev() false after SR bit 22 set")
	}
}

func TestExceptionHandlerSelection(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.raiseException(Instruction{PC: 0x100}, ExcRi, false)
	if c.pc != handlerRAM {
		t.Errorf("handler with BEV clear = %#08x, want %#08x", c.pc, handlerRAM)
	}

	c2 := New(bus)
	c2.cop0.setSR(srBEV)
	c2.raiseException(Instruction{PC: 0x100}, ExcRi, false)
	if c2.pc != handlerBoot {
		t.Errorf("handler with BEV set = %#08x, want %#08x", c2.pc, handlerBoot)
	}
}

func TestExceptionEPCAndBD(t *testing.T) {
	bus := newFakeBus()
	c := New(bus)
	c.raiseException(Instruction{PC: 0x1000}, ExcOv, false)
	if got := c.cop0.read(Cop0Epc); got != 0x1000 {
		t.Errorf("EPC (no delay slot) = %#08x, want 0x1000", got)
	}
	if c.cop0.read(Cop0Cause)&causeBD != 0 {
		t.Error("CAUSE.BD set for a non-delay-slot exception")
	}

	c2 := New(bus)
	c2.raiseException(Instruction{PC: 0x1000}, ExcOv, true)
	if got := c2.cop0.read(Cop0Epc); got != 0x0FFC {
		t.Errorf("EPC (delay slot) = %#08x, want 0x0FFC", got)
	}
	if c2.cop0.read(Cop0Cause)&causeBD == 0 {
		t.Error("CAUSE.BD not set for a delay-slot exception")
	}
}
