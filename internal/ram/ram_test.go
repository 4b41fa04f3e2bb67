package ram

import "testing"

func TestZeroedOnConstruction(t *testing.T) {
	r := New()
	for _, off := range []uint32{0, 1, Size - 1} {
		if got := r.ReadByte(off); got != 0 {
			t.Errorf("ReadByte(%#x) = %#x, want 0", off, got)
		}
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	r := New()
	r.WriteByte(0x1234, 0xAB)
	if got := r.ReadByte(0x1234); got != 0xAB {
		t.Errorf("ReadByte(0x1234) = %#x, want 0xAB", got)
	}
	if got := r.ReadByte(0x1235); got != 0 {
		t.Errorf("unrelated byte disturbed: ReadByte(0x1235) = %#x, want 0", got)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	r := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range read")
		}
	}()
	r.ReadByte(Size)
}
