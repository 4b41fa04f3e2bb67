// Package bus implements the PSX address space: virtual-to-physical
// region masking, an ordered decode table, and byte/half/word
// synthesis over the backing RAM, BIOS, DMA, and GPU.
package bus

import (
	"fmt"

	"github.com/bdwalton/gopsx/internal/bios"
	"github.com/bdwalton/gopsx/internal/dma"
	"github.com/bdwalton/gopsx/internal/gpu"
	"github.com/bdwalton/gopsx/internal/ram"
)

// regionMasks is indexed by bits 31..29 of a virtual address: 4
// entries for KUSEG, one for KSEG0, one for KSEG1, two for KSEG2.
var regionMasks = [8]uint32{
	0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, // KUSEG
	0x7FFF_FFFF, // KSEG0
	0x1FFF_FFFF, // KSEG1
	0xFFFF_FFFF, 0xFFFF_FFFF, // KSEG2
}

func maskAddress(vaddr uint32) uint32 {
	return vaddr & regionMasks[vaddr>>29]
}

// rng is a half-open [start, start+length) byte range.
type rng struct {
	start  uint32
	length uint32
}

func (r rng) contains(addr uint32) (uint32, bool) {
	if addr < r.start || addr >= r.start+r.length {
		return 0, false
	}
	return addr - r.start, true
}

type region int

const (
	regionRAM region = iota
	regionExpansion1
	regionScratchpad
	regionMemControl1
	regionPeripheralIO
	regionMemControl2
	regionInterruptControl
	regionDMA
	regionTimers
	regionCDROM
	regionGPU
	regionMDEC
	regionSPU
	regionExpansion2
	regionExpansion3
	regionBIOS
	regionMemControl3
)

type decodeEntry struct {
	name   string
	rng    rng
	region region
}

// decodeTable is walked in declaration order, matching spec.md's
// memory-map table.
var decodeTable = []decodeEntry{
	{"RAM", rng{0x0000_0000, 0x1F00_0000}, regionRAM},
	{"Expansion region 1", rng{0x1F00_0000, 0x0080_0000}, regionExpansion1},
	{"Scratchpad", rng{0x1F80_0000, 0x0000_0400}, regionScratchpad},
	{"Memory control 1", rng{0x1F80_1000, 0x0000_0024}, regionMemControl1},
	{"Peripheral I/O", rng{0x1F80_1040, 0x0000_0020}, regionPeripheralIO},
	{"Memory control 2", rng{0x1F80_1060, 0x0000_0004}, regionMemControl2},
	{"Interrupt control", rng{0x1F80_1070, 0x0000_0008}, regionInterruptControl},
	{"DMA registers", rng{0x1F80_1080, 0x0000_0080}, regionDMA},
	{"Timers", rng{0x1F80_1100, 0x0000_0030}, regionTimers},
	{"CDROM", rng{0x1F80_1800, 0x0000_0004}, regionCDROM},
	{"GPU", rng{0x1F80_1810, 0x0000_0008}, regionGPU},
	{"MDEC", rng{0x1F80_1820, 0x0000_0008}, regionMDEC},
	{"SPU", rng{0x1F80_1C00, 0x0000_0400}, regionSPU},
	{"Expansion region 2", rng{0x1F80_2000, 0x0000_0088}, regionExpansion2},
	{"Expansion region 3", rng{0x1FA0_0000, 0x0020_0000}, regionExpansion3},
	{"BIOS", rng{0x1FC0_0000, 0x0008_0000}, regionBIOS},
	{"Memory control 3", rng{0xFFFE_0130, 0x0000_0004}, regionMemControl3},
}

// Bus wires RAM, BIOS, DMA, and GPU behind the PSX's address decode
// table. Everything else is a stub: reads return a documented
// constant, writes are silently absorbed.
type Bus struct {
	ram  *ram.RAM
	bios *bios.BIOS
	dma  *dma.Controller
	gpu  *gpu.GPU
}

func New(r *ram.RAM, b *bios.BIOS, d *dma.Controller, g *gpu.GPU) *Bus {
	return &Bus{ram: r, bios: b, dma: d, gpu: g}
}

// decode finds the table entry and in-region offset for a physical
// address, panicking (an implementation abort, per spec.md §7) on an
// unmapped address.
func (b *Bus) decode(vaddr uint32) (decodeEntry, uint32) {
	addr := maskAddress(vaddr)
	for _, e := range decodeTable {
		if off, ok := e.rng.contains(addr); ok {
			return e, off
		}
	}
	panic(fmt.Sprintf("bus: unmapped address %#08x (physical %#08x)", vaddr, addr))
}

func (b *Bus) ReadByte(vaddr uint32) uint8 {
	e, off := b.decode(vaddr)
	switch e.region {
	case regionRAM:
		return b.ram.ReadByte(off & (ram.Size - 1))
	case regionBIOS:
		return b.bios.ReadByte(off)
	case regionExpansion1:
		return 0xFF
	case regionDMA:
		return b.dma.ReadByte(off)
	case regionGPU:
		return b.readGPU(off)
	default:
		return 0x00
	}
}

func (b *Bus) WriteByte(vaddr uint32, v uint8) {
	e, off := b.decode(vaddr)
	switch e.region {
	case regionRAM:
		b.ram.WriteByte(off&(ram.Size-1), v)
	case regionBIOS:
		b.bios.WriteByte(off, v)
	case regionDMA:
		b.dma.WriteByte(off, v)
	case regionGPU:
		b.writeGPU(off, v)
	default:
		// stub: writes absorbed
	}
}

// readGPU/writeGPU split the 8-byte GPU window: offsets 0..3 are
// GP0/GPUREAD, offsets 4..7 are GP1/GPUSTAT.
func (b *Bus) readGPU(off uint32) uint8 {
	if off < 4 {
		return b.gpu.ReadGPUREADByte(off)
	}
	return b.gpu.ReadStatusByte(off - 4)
}

func (b *Bus) writeGPU(off uint32, v uint8) {
	if off < 4 {
		b.gpu.WriteGP0Byte(off, v)
	} else {
		b.gpu.WriteGP1Byte(off-4, v)
	}
}

func (b *Bus) ReadHalf(vaddr uint32) uint16 {
	lo := uint16(b.ReadByte(vaddr))
	hi := uint16(b.ReadByte(vaddr + 1))
	return lo | hi<<8
}

func (b *Bus) WriteHalf(vaddr uint32, v uint16) {
	b.WriteByte(vaddr, uint8(v))
	b.WriteByte(vaddr+1, uint8(v>>8))
}

func (b *Bus) ReadWord(vaddr uint32) uint32 {
	return uint32(b.ReadByte(vaddr)) | uint32(b.ReadByte(vaddr+1))<<8 |
		uint32(b.ReadByte(vaddr+2))<<16 | uint32(b.ReadByte(vaddr+3))<<24
}

func (b *Bus) WriteWord(vaddr uint32, v uint32) {
	b.WriteByte(vaddr, uint8(v))
	b.WriteByte(vaddr+1, uint8(v>>8))
	b.WriteByte(vaddr+2, uint8(v>>16))
	b.WriteByte(vaddr+3, uint8(v>>24))
}
