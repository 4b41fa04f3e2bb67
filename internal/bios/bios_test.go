package bios

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, dir string, size int) string {
	t.Helper()
	path := filepath.Join(dir, "test.bin")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != MissingFile {
		t.Fatalf("Load(missing) = %v, want MissingFile", err)
	}
}

func TestLoadTooSmall(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), Size/2)
	_, err := Load(path)
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ReadFailure {
		t.Fatalf("Load(short file) = %v, want ReadFailure", err)
	}
}

func TestLoadAndRead(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), Size)
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.ReadByte(0x10); got != 0x10 {
		t.Errorf("ReadByte(0x10) = %#x, want 0x10", got)
	}
}

func TestWriteAbsorbed(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), Size)
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b.WriteByte(0x10, 0xFF)
	if got := b.ReadByte(0x10); got != 0x10 {
		t.Errorf("write was not absorbed: ReadByte(0x10) = %#x, want unchanged 0x10", got)
	}
}
