package dma

import (
	"fmt"

	"github.com/bdwalton/gopsx/internal/ram"
)

// OTC is the only channel wired to direct memory access; the rest
// (MDEC, GPU, CD-ROM, SPU, PIO) are modeled as register blocks a BIOS
// or game can probe and configure, but runIfReady aborts when one of
// them becomes ready to transfer.

// Controller is the 7-channel DMA block at 0x1F801080, plus the
// shared DPCR/DICR control registers.
type Controller struct {
	ram *ram.RAM

	channels [numChannels]channel

	dpcr uint32
	dicr uint32
}

func New(r *ram.RAM) *Controller {
	c := &Controller{ram: r, dpcr: 0x0765_4321}
	for i := range c.channels {
		c.channels[i].id = uint32(i)
	}
	return c
}

// ReadByte/WriteByte address the controller's 0x80-byte register
// window: channels 0..6 occupy 0x00..0x6F (0x10 bytes each), DPCR is
// at 0x70..0x73, DICR at 0x74..0x77. The remainder reads as zero and
// absorbs writes.
func (c *Controller) ReadByte(offset uint32) uint8 {
	switch {
	case offset < 0x70:
		return c.channels[offset/0x10].readByte(offset % 0x10)
	case offset < 0x74:
		return byte(c.dpcr >> (8 * (offset - 0x70)))
	case offset < 0x78:
		return byte(c.dicr >> (8 * (offset - 0x74)))
	default:
		return 0
	}
}

func (c *Controller) WriteByte(offset uint32, v uint8) {
	switch {
	case offset < 0x70:
		idx := offset / 0x10
		rel := offset % 0x10
		c.channels[idx].writeByte(rel, v)
		// Trigger policy: any write landing within a channel's
		// base-address, block-size/count, or control byte range
		// (0x00..0x0C of its 0x10-byte block) re-checks readiness
		// and, if ready, runs the transfer immediately.
		if rel <= 0x0C {
			c.runIfReady(idx)
		}
	case offset < 0x74:
		shift := 8 * (offset - 0x70)
		c.dpcr = (c.dpcr &^ (0xFF << shift)) | uint32(v)<<shift
	case offset < 0x78:
		shift := 8 * (offset - 0x74)
		c.dicr = (c.dicr &^ (0xFF << shift)) | uint32(v)<<shift
	}
}

func (c *Controller) runIfReady(idx uint32) {
	ch := &c.channels[idx]
	if !ch.ready() {
		return
	}
	switch idx {
	case ChanOTC:
		c.runOTC(ch)
	default:
		// Channels 0..5 are not wired to a functional transfer
		// engine: starting a transfer on one is an implementation
		// abort.
		panic(fmt.Sprintf("dma: transfer requested on unimplemented channel %d (%v)", idx, ch))
	}
}

// runOTC executes the OTC channel's immediate-mode transfer: a
// descending linked list of block_size entries, each pointing at the
// previous entry's address, terminated by the end-of-list marker
// 0x00FF_FFFF.
func (c *Controller) runOTC(ch *channel) {
	if ch.syncMode != syncImmediate || ch.direction != dirToRAM {
		ch.busy = false
		ch.trigger = false
		return
	}

	address := ch.baseAddress
	last := address
	n := uint32(ch.blockSize)
	if n == 0 {
		n = 0x10000
	}
	for i := uint32(1); i <= n; i++ {
		if ch.addressStep == stepBackward {
			address -= 4
		} else {
			address += 4
		}
		if i == n {
			c.ram.WriteWord(address&0x1F_FFFF, 0x00FF_FFFF)
		} else {
			c.ram.WriteWord(address&0x1F_FFFF, last)
		}
		last = address
	}

	ch.busy = false
	ch.trigger = false
}
