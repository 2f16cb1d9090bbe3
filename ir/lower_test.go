package ir

import (
	"testing"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/scene"
)

func lowered(t *testing.T, d *scene.Desktop) *Buffer {
	t.Helper()
	buf := NewBuffer()
	if err := LowerDesktop(buf, d); err != nil {
		t.Fatalf("LowerDesktop failed: %v", err)
	}
	return buf
}

func ops(buf *Buffer) []Op {
	instrs := buf.Instructions()
	out := make([]Op, len(instrs))
	for i, in := range instrs {
		out[i] = in.Op
	}
	return out
}

func colorRef(c swen.Color) *swen.Color { return &c }

func TestLowerEmptyDesktop(t *testing.T) {
	d := &scene.Desktop{
		Size:       swen.Vector{X: 64, Y: 64},
		Background: colorRef(swen.Black),
	}
	buf := lowered(t, d)

	if buf.Frame() != 1 {
		t.Errorf("frame = %d, want 1", buf.Frame())
	}
	if buf.Len() != 0 {
		t.Errorf("instructions = %d, want 0 (background is not lowered)", buf.Len())
	}
}

func TestLowerRect(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Rect{
				NodeID:     1,
				Size:       swen.Vector{X: 16, Y: 16},
				Background: colorRef(swen.Color{R: 255, A: 255}),
			},
		},
	}
	buf := lowered(t, d)

	instrs := buf.Instructions()
	if len(instrs) != 1 {
		t.Fatalf("instructions = %d, want 1", len(instrs))
	}
	in := instrs[0]
	if in.Op != OpDrawRect {
		t.Errorf("op = %v, want draw_rect", in.Op)
	}
	if in.Node != 1 {
		t.Errorf("node = %d, want 1", in.Node)
	}
	want := swen.Bounds{X: 0, Y: 0, Width: 16, Height: 16}
	if in.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", in.Bounds, want)
	}
	if in.Paint != SolidPaint(swen.Color{R: 255, A: 255}) {
		t.Errorf("paint = %+v", in.Paint)
	}
}

// A rect without a background emits nothing itself but its children
// still lower.
func TestLowerBackgroundlessRect(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Rect{
				NodeID: 1,
				Size:   swen.Vector{X: 32, Y: 32},
				Kids: []scene.Node{
					&scene.Rect{
						NodeID:     2,
						Size:       swen.Vector{X: 4, Y: 4},
						Background: colorRef(swen.White),
					},
				},
			},
		},
	}
	buf := lowered(t, d)
	instrs := buf.Instructions()
	if len(instrs) != 1 {
		t.Fatalf("instructions = %d, want 1", len(instrs))
	}
	if instrs[0].Node != 2 {
		t.Errorf("drawn node = %d, want child 2", instrs[0].Node)
	}
}

// Nested coordinates: rect at (10,10) with a child at (3,4) puts the
// child's bounds at (13,14).
func TestLowerNestedCoordinates(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Rect{
				NodeID: 1,
				Size:   swen.Vector{X: 20, Y: 20},
				Pos:    swen.Vector{X: 10, Y: 10},
				Kids: []scene.Node{
					&scene.Rect{
						NodeID:     2,
						Size:       swen.Vector{X: 5, Y: 5},
						Pos:        swen.Vector{X: 3, Y: 4},
						LocalPos:   swen.Vector{X: 10, Y: 10},
						Background: colorRef(swen.Color{G: 255, A: 255}),
					},
				},
			},
		},
	}
	buf := lowered(t, d)
	instrs := buf.Instructions()
	if len(instrs) != 1 {
		t.Fatalf("instructions = %d, want 1", len(instrs))
	}
	want := swen.Bounds{X: 13, Y: 14, Width: 5, Height: 5}
	if instrs[0].Bounds != want {
		t.Errorf("bounds = %+v, want %+v", instrs[0].Bounds, want)
	}
}

func TestLowerText(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Text{
				NodeID:   1,
				Body:     "hi",
				Color:    swen.White,
				Pos:      swen.Vector{X: 4, Y: 8},
				TextSize: 12,
			},
		},
	}
	buf := lowered(t, d)
	instrs := buf.Instructions()
	if len(instrs) != 1 || instrs[0].Op != OpDrawText {
		t.Fatalf("instructions = %v, want one draw_text", ops(buf))
	}
	in := instrs[0]
	// Estimated bounds: width = len * size / 2, height = size.
	want := swen.Bounds{X: 4, Y: 8, Width: 12, Height: 12}
	if in.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", in.Bounds, want)
	}
	if in.TextSize != 12 {
		t.Errorf("text size = %d, want 12", in.TextSize)
	}
	if got := in.Text.Resolve(buf.InternTable()); got != "hi" {
		t.Errorf("text body = %q, want \"hi\"", got)
	}
}

// Transform with a matrix brackets its subtree:
// push_state, set_transform, draw_rect, pop_state.
func TestLowerTransform(t *testing.T) {
	m := swen.Identity()
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Transform{
				NodeID: 1,
				Matrix: &m,
				Kids: []scene.Node{
					&scene.Rect{
						NodeID:     2,
						Size:       swen.Vector{X: 4, Y: 4},
						Background: colorRef(swen.White),
					},
				},
			},
		},
	}
	buf := lowered(t, d)

	want := []Op{OpPushState, OpSetTransform, OpDrawRect, OpPopState}
	got := ops(buf)
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}
	if buf.StateDepth() != 0 {
		t.Errorf("state depth = %d, want 0 after lowering", buf.StateDepth())
	}
	if buf.ClipDepth() != 0 {
		t.Errorf("clip depth = %d, want 0 after lowering", buf.ClipDepth())
	}
}

// Transform without a matrix emits no state ops; its position still
// offsets children.
func TestLowerTransformWithoutMatrix(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 64, Y: 64},
		Nodes: []scene.Node{
			&scene.Transform{
				NodeID: 1,
				Pos:    swen.Vector{X: 7, Y: 9},
				Kids: []scene.Node{
					&scene.Rect{
						NodeID:     2,
						Size:       swen.Vector{X: 4, Y: 4},
						Pos:        swen.Vector{X: 1, Y: 1},
						Background: colorRef(swen.White),
					},
				},
			},
		},
	}
	buf := lowered(t, d)
	instrs := buf.Instructions()
	if len(instrs) != 1 || instrs[0].Op != OpDrawRect {
		t.Fatalf("ops = %v, want one draw_rect", ops(buf))
	}
	want := swen.Bounds{X: 8, Y: 10, Width: 4, Height: 4}
	if instrs[0].Bounds != want {
		t.Errorf("bounds = %+v, want %+v", instrs[0].Bounds, want)
	}
}

// IR completeness: every backgrounded rect and every text reachable
// through the desktop yields exactly one draw.
func TestLowerCompleteness(t *testing.T) {
	d := &scene.Desktop{
		Size: swen.Vector{X: 128, Y: 128},
		Nodes: []scene.Node{
			&scene.Rect{
				NodeID:     1,
				Size:       swen.Vector{X: 64, Y: 64},
				Background: colorRef(swen.Black),
				Kids: []scene.Node{
					&scene.Rect{NodeID: 2, Size: swen.Vector{X: 8, Y: 8}, Background: colorRef(swen.White)},
					&scene.Text{NodeID: 3, Body: "a", Color: swen.White, TextSize: 10},
					&scene.Rect{NodeID: 4, Size: swen.Vector{X: 8, Y: 8}}, // no background
				},
			},
			&scene.Text{NodeID: 5, Body: "b", Color: swen.White, TextSize: 10},
		},
	}
	buf := lowered(t, d)

	rects, texts := 0, 0
	for _, in := range buf.Instructions() {
		switch in.Op {
		case OpDrawRect:
			rects++
		case OpDrawText:
			texts++
		}
	}
	if rects != 2 {
		t.Errorf("draw_rect count = %d, want 2", rects)
	}
	if texts != 2 {
		t.Errorf("draw_text count = %d, want 2", texts)
	}
}

func TestLowerFrameAdvances(t *testing.T) {
	d := &scene.Desktop{Size: swen.Vector{X: 16, Y: 16}}
	buf := NewBuffer()
	LowerDesktop(buf, d)
	LowerDesktop(buf, d)
	if buf.Frame() != 2 {
		t.Errorf("frame = %d, want 2", buf.Frame())
	}
}
