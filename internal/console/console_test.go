package console

import (
	"testing"

	"github.com/bdwalton/gopsx/internal/bios"
)

func TestLayoutIsFixed(t *testing.T) {
	c := New(&bios.BIOS{})
	w, h := c.Layout(1920, 1080)
	if w != 1024 || h != 512 {
		t.Errorf("Layout = %dx%d, want 1024x512", w, h)
	}
}

func TestUpdateStepsCPUWithoutPanicking(t *testing.T) {
	c := New(&bios.BIOS{})
	startPC := c.cpu.PC()
	if err := c.Update(); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	// A BIOS of all-zero bytes decodes as SPECIAL/SLL $0,$0,0 (a
	// harmless NOP encoding) for as long as PC stays inside the BIOS
	// image; either way, PC must have advanced past the boot vector,
	// and a walk off the end of the image must be recovered rather
	// than panicking out of Update.
	if c.cpu.PC() == startPC {
		t.Error("Update did not advance the CPU")
	}
}
