package renderer

// Triangle records one DrawTriangle call.
type Triangle struct {
	Positions [3]Position
	Colors    [3]Color
}

// Quad records one DrawQuad call.
type Quad struct {
	Positions [4]Position
	Colors    [4]Color
}

// RecordingSink is a test double that records submitted primitives
// instead of rasterizing them.
type RecordingSink struct {
	Triangles []Triangle
	Quads     []Quad
	Renders   int
	Width     int
	Height    int
}

func (rs *RecordingSink) DrawTriangle(positions [3]Position, colors [3]Color) {
	rs.Triangles = append(rs.Triangles, Triangle{Positions: positions, Colors: colors})
}

func (rs *RecordingSink) DrawQuad(positions [4]Position, colors [4]Color) {
	rs.Quads = append(rs.Quads, Quad{Positions: positions, Colors: colors})
}

func (rs *RecordingSink) Render() {
	rs.Renders++
}

func (rs *RecordingSink) Resize(width, height int) {
	rs.Width, rs.Height = width, height
}
