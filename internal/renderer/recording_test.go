package renderer

import "testing"

func TestRecordingSinkDrawQuad(t *testing.T) {
	rs := &RecordingSink{}
	positions := [4]Position{{16, 16}, {16, 64}, {64, 16}, {64, 64}}
	colors := [4]Color{{0, 0xFF, 0}, {0, 0xFF, 0}, {0, 0xFF, 0}, {0, 0xFF, 0}}
	rs.DrawQuad(positions, colors)

	if len(rs.Quads) != 1 {
		t.Fatalf("len(Quads) = %d, want 1", len(rs.Quads))
	}
	if rs.Quads[0].Positions != positions {
		t.Errorf("recorded positions = %+v, want %+v", rs.Quads[0].Positions, positions)
	}
}

func TestRecordingSinkRenderCount(t *testing.T) {
	rs := &RecordingSink{}
	rs.Render()
	rs.Render()
	if rs.Renders != 2 {
		t.Errorf("Renders = %d, want 2", rs.Renders)
	}
}

func TestRecordingSinkResize(t *testing.T) {
	rs := &RecordingSink{}
	rs.Resize(320, 240)
	if rs.Width != 320 || rs.Height != 240 {
		t.Errorf("Resize: got %dx%d, want 320x240", rs.Width, rs.Height)
	}
}
