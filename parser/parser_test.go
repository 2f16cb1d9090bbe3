package parser

import (
	"errors"
	"testing"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/scene"
)

func parse(t *testing.T, src string) *scene.Root {
	t.Helper()
	root, err := ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	return root
}

func parseErr(t *testing.T, src string) *Error {
	t.Helper()
	_, err := ParseSource([]byte(src))
	if err == nil {
		t.Fatal("parse succeeded, want error")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parser.Error", err)
	}
	return perr
}

const minimal = `root {
  desktop {
    size (1024, 768)
    background (20, 20, 28, 255)
    nodes [
      rect { id "panel" size (200, 100) position (10, 10) background (128, 64, 255, 255) }
    ]
  }
  system { }
}`

func TestParseMinimal(t *testing.T) {
	root := parse(t, minimal)

	d := root.Desktop
	if d == nil {
		t.Fatal("no desktop")
	}
	if d.Size != (swen.Vector{X: 1024, Y: 768}) {
		t.Errorf("desktop size = %+v, want (1024, 768)", d.Size)
	}
	if d.Background == nil || *d.Background != (swen.Color{R: 20, G: 20, B: 28, A: 255}) {
		t.Errorf("desktop background = %+v", d.Background)
	}
	if len(d.Nodes) != 1 {
		t.Fatalf("desktop nodes = %d, want 1", len(d.Nodes))
	}

	r, ok := d.Nodes[0].(*scene.Rect)
	if !ok {
		t.Fatalf("node is %T, want *scene.Rect", d.Nodes[0])
	}
	if r.Name != "panel" {
		t.Errorf("rect name = %q, want \"panel\"", r.Name)
	}
	if r.Size != (swen.Vector{X: 200, Y: 100}) {
		t.Errorf("rect size = %+v", r.Size)
	}
	if r.Pos != (swen.Vector{X: 10, Y: 10}) {
		t.Errorf("rect position = %+v", r.Pos)
	}
	if r.Background == nil || *r.Background != (swen.Color{R: 128, G: 64, B: 255, A: 255}) {
		t.Errorf("rect background = %+v", r.Background)
	}
	if r.NodeID == 0 {
		t.Error("rect has no node id")
	}

	if root.System == nil {
		t.Fatal("no system")
	}
}

func TestParseNestedCoordinates(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    nodes [
      rect { size (20, 20) position (10, 10) nodes [
        rect { size (5, 5) position (3, 4) background (0, 255, 0, 255) }
      ] }
    ]
  }
  system { }
}`)

	outer := root.Desktop.Nodes[0].(*scene.Rect)
	if len(outer.Kids) != 1 {
		t.Fatalf("outer kids = %d, want 1", len(outer.Kids))
	}
	inner := outer.Kids[0].(*scene.Rect)

	// Child local = parent local + parent position.
	if inner.LocalPos != (swen.Vector{X: 10, Y: 10}) {
		t.Errorf("inner local = %+v, want (10, 10)", inner.LocalPos)
	}
	// World = local + position.
	if got := inner.WorldPosition(); got != (swen.Vector{X: 13, Y: 14}) {
		t.Errorf("inner world = %+v, want (13, 14)", got)
	}
	// Coordinate additivity: world(N) = world(P) + position(N).
	if got := outer.WorldPosition().Add(inner.Pos); got != inner.WorldPosition() {
		t.Errorf("additivity violated: %+v != %+v", got, inner.WorldPosition())
	}
}

// TestParseTreePurity checks that no node appears as a child of two
// parents after root filtering.
func TestParseTreePurity(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    nodes [
      rect { size (20, 20) position (0, 0) nodes [
        rect { size (5, 5) position (1, 1) }
        rect { size (5, 5) position (2, 2) }
      ] }
      rect { size (10, 10) position (30, 30) }
    ]
  }
  system { }
}`)

	if len(root.Desktop.Nodes) != 2 {
		t.Fatalf("top-level nodes = %d, want 2 (children filtered out)", len(root.Desktop.Nodes))
	}

	parents := map[swen.NodeID]int{}
	var walkParents func(nodes []scene.Node)
	walkParents = func(nodes []scene.Node) {
		for _, n := range nodes {
			for _, kid := range n.Children() {
				parents[kid.ID()]++
			}
			if n.Children() != nil {
				walkParents(n.Children())
			}
		}
	}
	walkParents(root.Desktop.Nodes)
	for id, count := range parents {
		if count > 1 {
			t.Errorf("node %d has %d parents", id, count)
		}
	}
}

func TestParseDeterminism(t *testing.T) {
	a := parse(t, minimal)
	b := parse(t, minimal)

	ra := a.Desktop.Nodes[0].(*scene.Rect)
	rb := b.Desktop.Nodes[0].(*scene.Rect)
	if ra.NodeID != rb.NodeID {
		t.Errorf("node ids differ across runs: %d != %d", ra.NodeID, rb.NodeID)
	}
	if ra.Pos != rb.Pos || ra.Size != rb.Size || ra.LocalPos != rb.LocalPos {
		t.Error("node geometry differs across runs")
	}
}

func TestParseNodeIDsUnique(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    nodes [
      rect { size (1, 1) position (0, 0) nodes [
        text { position (0, 0) text_size 12 }
        transform { position (0, 0) }
      ] }
      rect { size (1, 1) position (5, 5) }
    ]
  }
  system { }
}`)

	seen := map[swen.NodeID]bool{}
	scene.Walk(root.Desktop.Nodes, func(n scene.Node) bool {
		if n.ID() == 0 {
			t.Error("node with zero id")
		}
		if seen[n.ID()] {
			t.Errorf("duplicate node id %d", n.ID())
		}
		seen[n.ID()] = true
		return true
	})
	if len(seen) != 4 {
		t.Errorf("distinct ids = %d, want 4", len(seen))
	}
}

func TestParseText(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    nodes [
      text { id "label" body "hello" color (255, 0, 0, 255) position (5, 6) text_size 14 }
    ]
  }
  system { }
}`)

	txt := root.Desktop.Nodes[0].(*scene.Text)
	if txt.Body != "hello" {
		t.Errorf("body = %q", txt.Body)
	}
	if txt.Color != (swen.Color{R: 255, A: 255}) {
		t.Errorf("color = %+v", txt.Color)
	}
	if txt.TextSize != 14 {
		t.Errorf("text_size = %d, want 14", txt.TextSize)
	}
}

func TestParseTextDefaults(t *testing.T) {
	root := parse(t, `root {
  desktop { size (64, 64) nodes [ text { position (0, 0) text_size 10 } ] }
  system { }
}`)
	txt := root.Desktop.Nodes[0].(*scene.Text)
	if txt.Body != "" {
		t.Errorf("default body = %q, want empty", txt.Body)
	}
	if txt.Color != swen.White {
		t.Errorf("default color = %+v, want white", txt.Color)
	}
}

func TestParseTransformMatrix(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    nodes [
      transform { position (0, 0) matrix (1, 0, 0, 1, 5.5, -2,) nodes [
        rect { size (4, 4) position (1, 1) background (0, 0, 255, 255) }
      ] }
    ]
  }
  system { }
}`)

	tr := root.Desktop.Nodes[0].(*scene.Transform)
	if tr.Matrix == nil {
		t.Fatal("transform has no matrix")
	}
	want := swen.Matrix{A: 1, B: 0, C: 0, D: 1, E: 5.5, F: -2}
	if *tr.Matrix != want {
		t.Errorf("matrix = %+v, want %+v", *tr.Matrix, want)
	}
	if len(tr.Kids) != 1 {
		t.Errorf("transform kids = %d, want 1", len(tr.Kids))
	}
}

func TestParseWorkspacesAndApps(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    workspaces [
      { app { id "term" size (40, 30) position (2, 2) background (0, 0, 0, 255) nodes [
          rect { size (5, 5) position (1, 1) }
      ] } }
    ]
  }
  system {
    app { id "bar" size (64, 8) position (0, 0) background (9, 9, 9, 255) }
  }
}`)

	if len(root.Desktop.Workspaces) != 1 {
		t.Fatalf("workspaces = %d, want 1", len(root.Desktop.Workspaces))
	}
	if root.Desktop.ActiveWorkspace != root.Desktop.Workspaces[0] {
		t.Error("active workspace should default to the first")
	}
	ws := root.Desktop.Workspaces[0]
	if len(ws.Apps) != 1 || ws.Apps[0].ID != "term" {
		t.Fatalf("workspace apps = %+v", ws.Apps)
	}
	if len(ws.Apps[0].Children) != 1 {
		t.Errorf("app children = %d, want 1", len(ws.Apps[0].Children))
	}
	if len(root.System.Apps) != 1 || root.System.Apps[0].ID != "bar" {
		t.Errorf("system apps = %+v", root.System.Apps)
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrKind
	}{
		{
			"duplicate desktop",
			`root { desktop { size (1, 1) } desktop { size (1, 1) } system { } }`,
			ErrDuplicateNode,
		},
		{
			"missing desktop",
			`root { system { } }`,
			ErrMissingRequiredNode,
		},
		{
			"missing system",
			`root { desktop { size (1, 1) } }`,
			ErrMissingRequiredNode,
		},
		{
			"missing desktop size",
			`root { desktop { } system { } }`,
			ErrMissingProperty,
		},
		{
			"zero size",
			`root { desktop { size (0, 5) } system { } }`,
			ErrInvalidSize,
		},
		{
			"negative rect size",
			`root { desktop { size (9, 9) nodes [ rect { size (-1, 4) position (0, 0) } ] } system { } }`,
			ErrInvalidSize,
		},
		{
			"rect missing size",
			`root { desktop { size (9, 9) nodes [ rect { position (0, 0) } ] } system { } }`,
			ErrMissingProperty,
		},
		{
			"rect missing position",
			`root { desktop { size (9, 9) nodes [ rect { size (1, 1) } ] } system { } }`,
			ErrMissingProperty,
		},
		{
			"duplicate property",
			`root { desktop { size (9, 9) nodes [ rect { size (1, 1) size (2, 2) position (0, 0) } ] } system { } }`,
			ErrDuplicateProperty,
		},
		{
			"nodes before position",
			`root { desktop { size (9, 9) nodes [ rect { size (1, 1) nodes [ ] position (0, 0) } ] } system { } }`,
			ErrInvalidPosition,
		},
		{
			"text missing text_size",
			`root { desktop { size (9, 9) nodes [ text { position (0, 0) } ] } system { } }`,
			ErrMissingProperty,
		},
		{
			"zero text_size",
			`root { desktop { size (9, 9) nodes [ text { position (0, 0) text_size 0 } ] } system { } }`,
			ErrInvalidTextSize,
		},
		{
			"transform missing position",
			`root { desktop { size (9, 9) nodes [ transform { matrix (1,0,0,1,0,0) } ] } system { } }`,
			ErrMissingProperty,
		},
		{
			"short matrix",
			`root { desktop { size (9, 9) nodes [ transform { position (0, 0) matrix (1, 0, 0) } ] } system { } }`,
			ErrInvalidMatrix,
		},
		{
			"long matrix",
			`root { desktop { size (9, 9) nodes [ transform { position (0, 0) matrix (1, 0, 0, 1, 0, 0, 9) } ] } system { } }`,
			ErrInvalidMatrix,
		},
		{
			"bad color arity",
			`root { desktop { size (9, 9) background (1, 2, 3) } system { } }`,
			ErrExpectedColor,
		},
		{
			"color out of range",
			`root { desktop { size (9, 9) background (1, 2, 3, 999) } system { } }`,
			ErrExpectedColor,
		},
		{
			"duplicate declared id",
			`root { desktop { size (9, 9) nodes [
				rect { id "x" size (1, 1) position (0, 0) }
				rect { id "x" size (1, 1) position (2, 2) }
			] } system { } }`,
			ErrDuplicateNode,
		},
		{
			"unclosed root",
			`root { desktop { size (9, 9) } system { }`,
			ErrExpectedToken,
		},
		{
			"unclosed nodes list",
			`root { desktop { size (9, 9) nodes [ } system { } }`,
			ErrExpectedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			if perr.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (err: %v)", perr.Kind, tt.kind, perr)
			}
			if perr.Span.Line == 0 {
				t.Error("error span has no line")
			}
		})
	}
}

// Unknown tokens inside a body are skipped with a warning; a valid
// scene around them still parses.
func TestParseRecoverySkipsUnknown(t *testing.T) {
	root := parse(t, `root {
  desktop {
    size (64, 64)
    wobble
    nodes [ rect { size (1, 1) position (0, 0) } ]
  }
  system { }
}`)
	if len(root.Desktop.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(root.Desktop.Nodes))
	}
}

func TestParseDuplicateIDAcrossApps(t *testing.T) {
	// The same declared id in two different apps is allowed.
	_, err := ParseSource([]byte(`root {
  desktop { size (64, 64) }
  system {
    app { id "a" size (8, 8) position (0, 0) background (0,0,0,255) nodes [
      rect { id "x" size (1, 1) position (0, 0) }
    ] }
    app { id "b" size (8, 8) position (0, 0) background (0,0,0,255) nodes [
      rect { id "x" size (1, 1) position (0, 0) }
    ] }
  }
}`))
	if err != nil {
		t.Errorf("cross-app duplicate id should parse: %v", err)
	}
}

func TestParseArenaOverflow(t *testing.T) {
	src := `root { desktop { size (9, 9) nodes [
		rect { size (1, 1) position (0, 0) }
		rect { size (1, 1) position (1, 1) }
	] } system { } }`
	_, err := ParseSource([]byte(src), WithNodeCapacity(1))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parser.Error", err)
	}
	if perr.Kind != ErrOutOfMemory {
		t.Errorf("kind = %v, want ErrOutOfMemory", perr.Kind)
	}
}
