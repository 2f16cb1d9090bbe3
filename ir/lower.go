package ir

import (
	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/scene"
)

// LowerDesktop lowers the desktop subtree into buf as one frame.
//
// The buffer's frame counter is advanced first, so a failed lowering
// leaves a partially filled stream that the caller must not schedule;
// drop the frame and re-lower after the next scene change.
//
// Positions accumulate at lowering time from the recursion, so the
// stream stays correct even when a patch has moved a parent without
// rewriting its descendants' pre-accumulated local positions.
func LowerDesktop(buf *Buffer, d *scene.Desktop) error {
	buf.NextFrame()
	for _, n := range d.Nodes {
		if err := lowerNode(buf, n, swen.Vector{}); err != nil {
			return err
		}
	}
	swen.Logger().Debug("ir: lowered desktop",
		"frame", buf.Frame(),
		"instructions", buf.Len())
	return nil
}

// lowerNode dispatches on the node variant. parentPos is the world
// origin of the node's parent.
func lowerNode(buf *Buffer, n scene.Node, parentPos swen.Vector) error {
	switch node := n.(type) {
	case *scene.Rect:
		return lowerRect(buf, node, parentPos)
	case *scene.Text:
		return lowerText(buf, node, parentPos)
	case *scene.Transform:
		return lowerTransform(buf, node, parentPos)
	default:
		return buf.Nop()
	}
}

// lowerRect emits a draw_rect when the rect has a background, then
// recurses into children with the rect's world origin.
func lowerRect(buf *Buffer, r *scene.Rect, parentPos swen.Vector) error {
	world := parentPos.Add(r.Pos)
	if r.Background != nil {
		bounds := swen.Bounds{
			X:      world.X,
			Y:      world.Y,
			Width:  r.Size.X,
			Height: r.Size.Y,
		}
		if err := buf.DrawRect(r.NodeID, bounds, SolidPaint(*r.Background), 0); err != nil {
			return err
		}
	}
	for _, kid := range r.Kids {
		if err := lowerNode(buf, kid, world); err != nil {
			return err
		}
	}
	return nil
}

// lowerText emits a draw_text with estimated bounds. The width
// estimate (half an em per byte) stands in until font metrics are
// integrated; replacing it does not change the IR surface.
func lowerText(buf *Buffer, t *scene.Text, parentPos swen.Vector) error {
	world := parentPos.Add(t.Pos)
	bounds := swen.Bounds{
		X:      world.X,
		Y:      world.Y,
		Width:  int32(len(t.Body)) * int32(t.TextSize) / 2,
		Height: int32(t.TextSize),
	}
	ref := buf.InternText(t.Body)
	return buf.DrawText(t.NodeID, bounds, ref, SolidPaint(t.Color), t.TextSize)
}

// lowerTransform brackets its subtree in push_state/pop_state when a
// matrix is present. Transform nodes emit no geometry.
func lowerTransform(buf *Buffer, tr *scene.Transform, parentPos swen.Vector) error {
	world := parentPos.Add(tr.Pos)

	pushed := false
	if tr.Matrix != nil {
		if err := buf.PushState(); err != nil {
			return err
		}
		if err := buf.SetTransform(*tr.Matrix); err != nil {
			return err
		}
		pushed = true
	}

	for _, kid := range tr.Kids {
		if err := lowerNode(buf, kid, world); err != nil {
			return err
		}
	}

	if pushed {
		return buf.PopState()
	}
	return nil
}
