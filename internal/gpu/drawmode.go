package gpu

// drawMode holds the fields unpacked by GP0(E1) "texpage" and
// reported back through GPUSTAT; GP1(00) resets them.
type drawMode struct {
	texPageBaseX     uint8 // 4-bit, in 64-halfword units
	texPageBaseY     uint8 // 1-bit, in 256-line units
	semiTransparency uint8 // 2-bit blend mode
	texColorDepth    uint8 // 2-bit: 4/8/15 bit
	dither           bool
	drawToDisplay    bool
	texDisableFlip   bool // "texture-rectangle flip" bits, stored raw
	texDisableFlipY  bool
}

func (d *drawMode) writeE1(v uint32) {
	d.texPageBaseX = uint8(v & 0xF)
	d.texPageBaseY = uint8((v >> 4) & 0x1)
	d.semiTransparency = uint8((v >> 5) & 0x3)
	d.texColorDepth = uint8((v >> 7) & 0x3)
	d.dither = v&(1<<9) != 0
	d.drawToDisplay = v&(1<<10) != 0
	d.texDisableFlip = v&(1<<12) != 0
	d.texDisableFlipY = v&(1<<13) != 0
}

type textureWindow struct {
	maskX, maskY   uint8
	offsetX, offY  uint8
}

func (t *textureWindow) write(v uint32) {
	t.maskX = uint8(v & 0x1F)
	t.maskY = uint8((v >> 5) & 0x1F)
	t.offsetX = uint8((v >> 10) & 0x1F)
	t.offY = uint8((v >> 15) & 0x1F)
}

type rect struct {
	x1, y1 int32
	x2, y2 int32
}

type offset struct {
	x, y int32
}

type maskSettings struct {
	setMaskBit bool
	checkMask  bool
}

func (m *maskSettings) write(v uint32) {
	m.setMaskBit = v&1 != 0
	m.checkMask = v&2 != 0
}
