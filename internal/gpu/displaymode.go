package gpu

// displayMode holds the fields touched by GP1(05..08) and reported
// back through GPUSTAT.
type displayMode struct {
	originX, originY int32

	hRangeStart, hRangeEnd uint32
	vRangeStart, vRangeEnd uint32

	horizontalRes uint8 // 0,1,2,3 encode 256/320/512/640; overridden by wide
	wide          bool  // bit 6: 368 px
	verticalRes   uint8 // 0 = 240, 1 = 480 (only when interlaced)
	videoMode     uint8 // 0 = NTSC/60Hz, 1 = PAL/50Hz
	colorDepth    uint8 // 0 = 15bit, 1 = 24bit
	interlace     bool
	reverse       bool

	displayDisabled bool
	dmaDirection    uint8 // 0 off, 1 FIFO, 2 CPU->GPU, 3 GPU->CPU
	irq             bool
}

func defaultDisplayMode() displayMode {
	return displayMode{
		originX: 0, originY: 0,
		hRangeStart: 0x200, hRangeEnd: 0x200 + 256*10,
		vRangeStart: 0x010, vRangeEnd: 0x010 + 240,
		verticalRes:     0,
		videoMode:       0,
		colorDepth:      0,
		interlace:       false,
		horizontalRes:   0,
		reverse:         false,
		displayDisabled: true,
		dmaDirection:    0,
		irq:             false,
	}
}

func (d *displayMode) writeMode08(v uint32) {
	d.horizontalRes = uint8(v & 0x3)
	d.verticalRes = uint8((v >> 2) & 0x1)
	d.videoMode = uint8((v >> 3) & 0x1)
	d.colorDepth = uint8((v >> 4) & 0x1)
	d.interlace = v&(1<<5) != 0
	d.wide = v&(1<<6) != 0
	d.reverse = v&(1<<7) != 0
}

// verticalLines returns the reported vertical resolution: 480 is
// promoted only when both vertical-resolution and interlace bits are
// set, per spec.
func (d *displayMode) verticalLines() int {
	if d.verticalRes == 1 && d.interlace {
		return 480
	}
	return 240
}
