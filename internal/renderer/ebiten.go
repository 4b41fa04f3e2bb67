package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	vramWidth  = 1024
	vramHeight = 512
)

// EbitenSink rasterizes submitted primitives onto an in-memory ebiten
// image sized to the PSX's VRAM framebuffer, which the console's
// Draw() then blits to the window.
type EbitenSink struct {
	screen *ebiten.Image
	white  *ebiten.Image
	width  int
	height int
}

func NewEbitenSink() *EbitenSink {
	es := &EbitenSink{width: vramWidth, height: vramHeight}
	es.screen = ebiten.NewImage(es.width, es.height)
	es.white = ebiten.NewImage(3, 3)
	es.white.Fill(color.White)
	return es
}

// DrawTriangle fills the triangle flat with colors[0]; colors[1] and
// colors[2] are ignored, so no per-vertex shading is drawn.
func (es *EbitenSink) DrawTriangle(positions [3]Position, colors [3]Color) {
	es.fillTriangle(positions[0], positions[1], positions[2], colors[0])
}

// DrawQuad splits into triangles {0,2,1} and {1,2,3}, matching the
// vertex order the GP0 command layer assembles. Each half is filled
// flat: the first with colors[0], the second with colors[1].
func (es *EbitenSink) DrawQuad(positions [4]Position, colors [4]Color) {
	es.fillTriangle(positions[0], positions[2], positions[1], colors[0])
	es.fillTriangle(positions[1], positions[2], positions[3], colors[1])
}

func (es *EbitenSink) fillTriangle(a, b, c Position, clr Color) {
	var path vector.Path
	path.MoveTo(float32(a.X), float32(a.Y))
	path.LineTo(float32(b.X), float32(b.Y))
	path.LineTo(float32(c.X), float32(c.Y))
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = 1
	}

	op := &ebiten.DrawTrianglesOptions{}
	es.screen.DrawTriangles(vs, is, es.white, op)
}

func (es *EbitenSink) Render() {
	// Primitives are drawn directly onto es.screen as they are
	// submitted; Render is a no-op hook for a future double-buffer.
}

func (es *EbitenSink) Resize(width, height int) {
	es.width, es.height = width, height
}

// Image returns the backing framebuffer for the console's Draw().
func (es *EbitenSink) Image() *ebiten.Image {
	return es.screen
}
