package tangle

import (
	"math"

	"github.com/softbranch/tangle/scene"
)

const zoomWheelFactor = 1.1

// bindNode wires a node's circle primitive to the widget's gesture behavior:
// click toggles selection, drag pins the node and moves it through the
// simulation, hover temporarily reveals all labels.
func (w *Widget) bindNode(nv *nodeVisual) {
	n := nv.node

	nv.circle.OnClick = func(scene.ClickContext) {
		w.NodeClicked(n)
	}

	nv.circle.OnDragStart = func(scene.DragContext) {
		w.sim.Stop()
		n.Dragging = true
	}

	nv.circle.OnDrag = func(ctx scene.DragContext) {
		lx, ly := w.nodeLayer.WorldToLocal(ctx.GlobalX, ctx.GlobalY)
		n.X, n.Y = lx, ly
		n.PX, n.PY = lx, ly
		w.syncVisuals()
	}

	// With animation off the node stays exactly where it was dropped; no
	// settle pass runs on release.
	nv.circle.OnDragEnd = func(scene.DragContext) {
		n.Dragging = false
		if w.cfg.Animate {
			w.sim.Resume()
		}
	}

	nv.circle.OnPointerEnter = func(scene.PointerContext) {
		w.setLabelsVisible(true)
	}
	nv.circle.OnPointerLeave = func(scene.PointerContext) {
		w.setLabelsVisible(w.cfg.Labels)
	}
}

// onWheel zooms about the cursor. The zoom level is clamped to the configured
// bounds and the pan is adjusted so the point under the cursor stays put.
func (w *Widget) onWheel(ctx scene.WheelContext) {
	if ctx.DeltaY == 0 {
		return
	}
	next := clampZoom(w.zoom*math.Pow(zoomWheelFactor, ctx.DeltaY), w.cfg)
	if next == w.zoom {
		return
	}
	ratio := next / w.zoom
	w.panX = ctx.GlobalX - (ctx.GlobalX-w.panX)*ratio
	w.panY = ctx.GlobalY - (ctx.GlobalY-w.panY)*ratio
	w.zoom = next
	w.Redraw()
}

// onBackgroundDrag pans the view when a drag starts on empty space. Node
// drags are handled by the per-node callbacks and skipped here.
func (w *Widget) onBackgroundDrag(ctx scene.DragContext) {
	if ctx.Node != nil {
		return
	}
	w.panX += ctx.DeltaX
	w.panY += ctx.DeltaY
	w.Redraw()
}
