// Package gpu implements the GPU command front end: the GP0/GP1
// ports' word-assembly state machine and GPUSTAT, wired to a
// renderer.Sink for the primitives it decodes.
package gpu

import (
	"fmt"

	"github.com/bdwalton/gopsx/internal/renderer"
)

const bufferSize = 12

const (
	modeAwaitingCommand = iota
	modeAwaitingData
)

// GPU holds the command-assembly buffer and all draw/display state
// touched by GP0/GP1, and forwards decoded primitives to a sink.
type GPU struct {
	sink renderer.Sink

	mode     int
	buffer   [bufferSize]uint32
	bufLen   int
	remain   int
	// dataRemain counts the data words (two 16-bit pixels each)
	// still to be absorbed in a CPU->VRAM copy.
	dataRemain int

	draw    drawMode
	window  textureWindow
	drawTL  rect
	drawOff offset
	mask    maskSettings

	display displayMode

	// port assembly: four bytes accumulate per word at GP0/GP1.
	gp0Partial uint32
	gp0Byte    int
	gp1Partial uint32
	gp1Byte    int
}

func New(sink renderer.Sink) *GPU {
	g := &GPU{sink: sink}
	g.resetToPowerOnState()
	return g
}

func (g *GPU) resetToPowerOnState() {
	g.mode = modeAwaitingCommand
	g.bufLen = 0
	g.remain = 0
	g.dataRemain = 0
	g.draw = drawMode{}
	g.window = textureWindow{}
	g.drawTL = rect{}
	g.drawOff = offset{}
	g.mask = maskSettings{}
	g.display = defaultDisplayMode()
}

// WriteGP0Byte accumulates one byte of a GP0 word at the given
// address offset (0..3); the word commits on the top byte (offset 3).
func (g *GPU) WriteGP0Byte(offset uint32, v uint8) {
	shift := 8 * (offset & 0x3)
	g.gp0Partial = (g.gp0Partial &^ (0xFF << shift)) | uint32(v)<<shift
	if offset&0x3 == 3 {
		g.WriteGP0(g.gp0Partial)
		g.gp0Partial = 0
	}
}

func (g *GPU) WriteGP1Byte(offset uint32, v uint8) {
	shift := 8 * (offset & 0x3)
	g.gp1Partial = (g.gp1Partial &^ (0xFF << shift)) | uint32(v)<<shift
	if offset&0x3 == 3 {
		g.WriteGP1(g.gp1Partial)
		g.gp1Partial = 0
	}
}

// WriteGP0 feeds one fully-assembled command word into the front end.
func (g *GPU) WriteGP0(word uint32) {
	if g.mode == modeAwaitingData {
		g.dataRemain--
		if g.dataRemain <= 0 {
			g.mode = modeAwaitingCommand
		}
		return
	}

	if g.bufLen == 0 {
		g.remain = argCount(word) - 1
		g.buffer[0] = word
		g.bufLen = 1
	} else {
		g.buffer[g.bufLen] = word
		g.bufLen++
		g.remain--
	}

	if g.remain <= 0 {
		g.execGP0(g.buffer[:g.bufLen])
		g.bufLen = 0
		g.remain = 0
	}
}

// argCount returns the total word count (including the opcode word
// itself) for a GP0 command, keyed on the top byte of the first word.
func argCount(first uint32) int {
	switch first >> 24 {
	case 0x28:
		return 5
	case 0x30:
		return 6
	case 0x38:
		return 8
	case 0xA0:
		return 3
	default:
		return 1
	}
}

func (g *GPU) execGP0(words []uint32) {
	op := words[0] >> 24
	switch op {
	case 0x00: // NOP
	case 0x01: // clear cache
	case 0x28:
		g.gp0MonoQuad(words)
	case 0x30:
		g.gp0ShadedTriangle(words)
	case 0x38:
		g.gp0ShadedQuad(words)
	case 0xA0:
		g.gp0CopyRectToVRAM(words)
	case 0xE1:
		g.draw.writeE1(words[0])
	case 0xE2:
		g.window.write(words[0])
	case 0xE3:
		g.drawTL.x1 = int32(words[0] & 0x3FF)
		g.drawTL.y1 = int32((words[0] >> 10) & 0x3FF)
	case 0xE4:
		g.drawTL.x2 = int32(words[0] & 0x3FF)
		g.drawTL.y2 = int32((words[0] >> 10) & 0x3FF)
	case 0xE5:
		g.drawOff.x = signExtend11(words[0] & 0x7FF)
		g.drawOff.y = signExtend11((words[0] >> 11) & 0x7FF)
	case 0xE6:
		g.mask.write(words[0])
	default:
		panic(fmt.Sprintf("gpu: unimplemented GP0 opcode %#02x at word %#08x", op, words[0]))
	}
}

func signExtend11(v uint32) int32 {
	if v&0x400 != 0 {
		return int32(v | 0xFFFF_F800)
	}
	return int32(v)
}

func unpackColor(v uint32) renderer.Color {
	return renderer.Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
}

func unpackPosition(v uint32) renderer.Position {
	x := int32(int16(uint16(v)))
	y := int32(int16(uint16(v >> 16)))
	return renderer.Position{X: x, Y: y}
}

func (g *GPU) gp0MonoQuad(words []uint32) {
	c := unpackColor(words[0])
	var positions [4]renderer.Position
	var colors [4]renderer.Color
	for i := 0; i < 4; i++ {
		positions[i] = unpackPosition(words[1+i])
		colors[i] = c
	}
	g.sink.DrawQuad(positions, colors)
}

func (g *GPU) gp0ShadedTriangle(words []uint32) {
	// word layout: color0, pos0, color1, pos1, color2, pos2.
	var positions [3]renderer.Position
	var colors [3]renderer.Color
	for i := 0; i < 3; i++ {
		colors[i] = unpackColor(words[2*i])
		positions[i] = unpackPosition(words[2*i+1])
	}
	g.sink.DrawTriangle(positions, colors)
}

func (g *GPU) gp0ShadedQuad(words []uint32) {
	var positions [4]renderer.Position
	var colors [4]renderer.Color
	for i := 0; i < 4; i++ {
		colors[i] = unpackColor(words[2*i])
		positions[i] = unpackPosition(words[2*i+1])
	}
	g.sink.DrawQuad(positions, colors)
}

func (g *GPU) gp0CopyRectToVRAM(words []uint32) {
	size := words[2]
	width := size & 0xFFFF
	height := (size >> 16) & 0xFFFF
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	pixels := width * height
	g.dataRemain = int((pixels + 1) / 2)
	if g.dataRemain > 0 {
		g.mode = modeAwaitingData
	}
}

// WriteGP1 dispatches one control command, keyed on its top byte.
func (g *GPU) WriteGP1(word uint32) {
	op := word >> 24
	switch op {
	case 0x00:
		g.resetToPowerOnState()
	case 0x01:
		g.bufLen = 0
		g.remain = 0
		g.mode = modeAwaitingCommand
	case 0x02:
		g.display.irq = false
	case 0x03:
		g.display.displayDisabled = word&1 != 0
	case 0x04:
		g.display.dmaDirection = uint8(word & 0x3)
	case 0x05:
		g.display.originX = int32(word & 0x3FF)
		g.display.originY = int32((word >> 10) & 0x3FF)
	case 0x06:
		g.display.hRangeStart = word & 0xFFF
		g.display.hRangeEnd = (word >> 12) & 0xFFF
	case 0x07:
		g.display.vRangeStart = word & 0x3FF
		g.display.vRangeEnd = (word >> 10) & 0x3FF
	case 0x08:
		g.display.writeMode08(word)
	default:
		panic(fmt.Sprintf("gpu: unimplemented GP1 opcode %#02x", op))
	}
}

// GPUREAD (offsets 0..3) always returns 0: VRAM readback is not
// implemented.
func (g *GPU) ReadGPUREADByte(offset uint32) uint8 {
	return 0
}

// ReadStatusByte reads one byte of the packed GPUSTAT word at offset
// 0..3 (GPU register offsets 4..7 in the bus's address space).
func (g *GPU) ReadStatusByte(offset uint32) uint8 {
	return byte(g.status() >> (8 * offset))
}

func (g *GPU) status() uint32 {
	var v uint32
	v |= uint32(g.draw.texPageBaseX) & 0xF
	v |= uint32(g.draw.texPageBaseY&0x1) << 4
	v |= uint32(g.draw.semiTransparency&0x3) << 5
	v |= uint32(g.draw.texColorDepth&0x3) << 7
	if g.draw.dither {
		v |= 1 << 9
	}
	if g.draw.drawToDisplay {
		v |= 1 << 10
	}
	if g.mask.setMaskBit {
		v |= 1 << 11
	}
	if g.mask.checkMask {
		v |= 1 << 12
	}
	v |= uint32(g.display.horizontalRes&0x3) << 17
	if g.display.wide {
		v |= 1 << 16
	}
	if g.display.verticalRes == 1 {
		v |= 1 << 19
	}
	v |= uint32(g.display.videoMode&0x1) << 20
	v |= uint32(g.display.colorDepth&0x1) << 21
	if g.display.interlace {
		v |= 1 << 22
	}
	if g.display.displayDisabled {
		v |= 1 << 23
	}
	if g.display.irq {
		v |= 1 << 24
	}
	v |= uint32(g.display.dmaDirection&0x3) << 29

	// Ready flags: the BIOS boot path never waits on these, so all
	// three stay asserted.
	v |= 1 << 26 // ready to receive command
	v |= 1 << 27 // ready to send VRAM to CPU
	v |= 1 << 28 // ready to receive DMA block

	return v
}
