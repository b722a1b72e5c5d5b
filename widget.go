package tangle

import (
	"github.com/softbranch/tangle/scene"
)

const (
	defaultSize       = 500
	defaultNodeRadius = 10
	defaultLinkWidth  = 1
	defaultFontSizePT = 8

	// Settle pass: tick until alpha drops below the threshold or the cap is
	// reached, whichever comes first.
	settleAlphaMin = 1e-2
	settleMaxTicks = 150

	selectedStrokeWidth = 1
	labelOffset         = 4
	edgeMarkerRadius    = 2
)

var (
	defaultNodeFill = scene.Color{R: 0.27, G: 0.51, B: 0.71, A: 1} // steel blue
	edgeColor       = scene.Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
	selectionStroke = scene.ColorWhite
)

// Dimensions is the widget's layout size. Zero fields default to the current
// value on assignment.
type Dimensions struct {
	Width  float64
	Height float64
}

// nodeVisual binds a real graph node to its circle and label primitives.
type nodeVisual struct {
	node   *Node
	circle *scene.Node
	label  *scene.Node
}

// edgeVisual binds a bilink to its line and midpoint marker primitives.
type edgeVisual struct {
	link   Bilink
	line   *scene.Node
	marker *scene.Node
}

// Widget is an interactive force-directed graph view. It owns the simulation,
// the rendered primitives, the selection slot, and the reactive configuration,
// and keeps all three consistent across data replacement, configuration
// changes, and user gestures.
//
// All methods must be called from the host's update loop goroutine; the widget
// relies on single-threaded dispatch for atomicity.
type Widget struct {
	sc       *scene.Scene
	root     *scene.Node // widget root, attached to the scene
	viewRoot *scene.Node // pan/zoom transform target

	edgeLayer  *scene.Node
	nodeLayer  *scene.Node
	labelLayer *scene.Node

	chrome *chrome

	cfg    Config
	width  float64
	height float64

	graph   Graph
	nodes   []*Node
	springs []Spring
	bilinks []Bilink

	sim      Simulation
	selected *Node

	nodeVisuals []*nodeVisual
	edgeVisuals []*edgeVisual

	clickHandlers     []nodeHandler
	selectionHandlers []nodeHandler
	nextHandlerID     uint32

	panX, panY float64
	zoom       float64

	filterText string
}

// New creates a widget attached to the scene. Non-positive dimensions default
// to 500. The widget installs its own per-frame update hook, wheel handler,
// and background drag (pan) handler on the scene.
func New(sc *scene.Scene, width, height float64) *Widget {
	if width <= 0 {
		width = defaultSize
	}
	if height <= 0 {
		height = defaultSize
	}

	w := &Widget{
		sc:     sc,
		cfg:    DefaultConfig(),
		width:  width,
		height: height,
		sim:    NewForceSim(),
		zoom:   1,
	}

	// Hit testing prunes non-interactable subtrees, so the whole container
	// chain down to the node circles must be marked interactable.
	w.root = scene.NewContainer("tangle")
	w.root.Interactable = true
	w.viewRoot = scene.NewContainer("tangle-view")
	w.viewRoot.Interactable = true
	w.edgeLayer = scene.NewContainer("tangle-edges")
	w.nodeLayer = scene.NewContainer("tangle-nodes")
	w.nodeLayer.Interactable = true
	w.labelLayer = scene.NewContainer("tangle-labels")
	w.viewRoot.AddChild(w.edgeLayer)
	w.viewRoot.AddChild(w.nodeLayer)
	w.viewRoot.AddChild(w.labelLayer)
	w.root.AddChild(w.viewRoot)
	sc.Root().AddChild(w.root)

	w.chrome = newChrome(w)

	w.sim.SetSize(width, height)
	w.sim.OnTick(func() {
		// Visual writes ride the tick only while animating; the settle pass
		// performs its own final write.
		if w.cfg.Animate {
			w.syncVisuals()
		}
	})
	w.pushSimParams(w.cfg)

	w.root.OnUpdate = w.update
	sc.SetWheelFunc(w.onWheel)
	sc.OnDrag(w.onBackgroundDrag)

	return w
}

// update is the per-frame hook: one simulation step while running, then
// chrome input.
func (w *Widget) update(dt float64) {
	if w.sim.Running() {
		w.sim.Tick()
	}
	w.chrome.update(dt)
}

// pushSimParams pushes all four effective simulation parameters.
func (w *Widget) pushSimParams(c Config) {
	def := DefaultConfig()
	w.sim.SetLinkDistance(effective(c.LinkDistance, c.LinkDistanceBounds, def.LinkDistance))
	w.sim.SetLinkStrength(effective(c.LinkStrength, c.LinkStrengthBounds, def.LinkStrength))
	w.sim.SetCharge(effective(c.Charge, c.ChargeBounds, def.Charge))
	w.sim.SetGravity(effective(c.Gravity, c.GravityBounds, def.Gravity))
}

// --- Dimensions ---

// Dimensions returns the current layout size.
func (w *Widget) Dimensions() Dimensions {
	return Dimensions{Width: w.width, Height: w.height}
}

// SetDimensions resizes the simulation bounds and chrome together. Zero
// fields keep the current value.
func (w *Widget) SetDimensions(d Dimensions) {
	if d.Width > 0 {
		w.width = d.Width
	}
	if d.Height > 0 {
		w.height = d.Height
	}
	w.sim.SetSize(w.width, w.height)
	w.chrome.layout(w.width, w.height)
}

// --- Configuration ---

// Config returns the current configuration.
func (w *Widget) Config() Config {
	return w.cfg
}

// SetConfig merges the patch onto the current configuration and applies the
// deltas: changed simulation parameters are clamped, defaulted, and pushed;
// zoom bounds are re-clamped; the simulation is started, stopped, or settled
// according to the merged animate flag; label and font changes restyle in
// place. The merged configuration is committed only after every side effect
// has been applied, so the next diff is always against fully-applied state.
func (w *Widget) SetConfig(p ConfigPatch) {
	def := DefaultConfig()
	next := w.cfg.merge(p)

	changed := false
	if next.LinkDistance != w.cfg.LinkDistance {
		w.sim.SetLinkDistance(effective(next.LinkDistance, next.LinkDistanceBounds, def.LinkDistance))
		changed = true
	}
	if next.LinkStrength != w.cfg.LinkStrength {
		w.sim.SetLinkStrength(effective(next.LinkStrength, next.LinkStrengthBounds, def.LinkStrength))
		changed = true
	}
	if next.Charge != w.cfg.Charge {
		w.sim.SetCharge(effective(next.Charge, next.ChargeBounds, def.Charge))
		changed = true
	}
	if next.Gravity != w.cfg.Gravity {
		w.sim.SetGravity(effective(next.Gravity, next.GravityBounds, def.Gravity))
		changed = true
	}

	// Zoom bounds apply independently of the restart decision.
	if next.MinZoom != w.cfg.MinZoom || next.MaxZoom != w.cfg.MaxZoom {
		w.zoom = clampZoom(w.zoom, next)
		w.Redraw()
	}

	if next.Animate {
		if changed || !w.cfg.Animate {
			w.sim.Start()
		}
	} else {
		w.sim.Stop()
		if changed && len(w.nodes) > 0 {
			w.reflow()
		}
	}

	if next.Labels != w.cfg.Labels {
		w.setLabelsVisible(next.Labels)
	}
	if next.FontSizePT != w.cfg.FontSizePT {
		w.setFontSize(effectiveFontSize(next.FontSizePT))
	}
	if next.DefaultLabelColor != w.cfg.DefaultLabelColor {
		w.applyLabelColors(next.DefaultLabelColor)
	}

	w.cfg = next
}

// --- Data ---

// Data returns the current graph.
func (w *Widget) Data() Graph {
	return w.graph
}

// SetData replaces the graph. This is a full teardown and rebuild: all visual
// primitives and simulation node/link state are discarded and recreated, then
// the simulation starts fresh (animate on) or a settle pass runs (animate
// off). Selection persists only if the previously selected node object still
// exists in the new graph.
func (w *Widget) SetData(g Graph) {
	w.teardownVisuals()

	nodes, springs, bilinks := buildModel(g)
	w.sim.SetNodes(nodes)
	w.sim.SetLinks(springs)
	w.sim.SetSize(w.width, w.height)

	if w.selected != nil && !containsNode(g.Nodes, w.selected) {
		w.selected = nil
	}

	w.buildVisuals(g.Nodes, bilinks)

	// Commit the new references only after all dependent state is in place;
	// the tick callback never observes a half-built graph.
	w.graph = g
	w.nodes = nodes
	w.springs = springs
	w.bilinks = bilinks

	w.sim.Start()
	w.syncVisuals() // Start may have scattered unpositioned nodes
	if !w.cfg.Animate {
		w.reflow()
	}
}

func containsNode(nodes []*Node, target *Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}

// --- Visual lifecycle ---

func (w *Widget) teardownVisuals() {
	for _, ev := range w.edgeVisuals {
		ev.line.Dispose()
		ev.marker.Dispose()
	}
	for _, nv := range w.nodeVisuals {
		w.sc.CancelTweens(nv.circle)
		nv.circle.Dispose()
		nv.label.Dispose()
	}
	w.edgeVisuals = nil
	w.nodeVisuals = nil
}

func (w *Widget) buildVisuals(realNodes []*Node, bilinks []Bilink) {
	for _, b := range bilinks {
		line := scene.NewLine(b.Mid.Name, linkWidth(b.Value), edgeColor)
		marker := scene.NewCircle(b.Mid.Name+"-marker", edgeMarkerRadius, edgeColor)
		w.edgeLayer.AddChild(line)
		w.edgeLayer.AddChild(marker)
		w.edgeVisuals = append(w.edgeVisuals, &edgeVisual{link: b, line: line, marker: marker})
	}

	fontSize := effectiveFontSize(w.cfg.FontSizePT)
	for _, n := range realNodes {
		fill := n.Color
		if fill == (scene.Color{}) {
			fill = defaultNodeFill
		}
		r := nodeRadius(n)

		circle := scene.NewCircle(n.Name, r, fill)
		circle.Interactable = true
		circle.HitShape = scene.HitCircle{Radius: r}
		circle.Stroke = selectionStroke
		if n.Selected && n == w.selected {
			circle.StrokeWidth = selectedStrokeWidth
		}

		label := scene.NewText(n.Name+"-label", n.Name, fontSize)
		label.Visible = w.cfg.Labels
		label.TextColor = labelColor(n, w.cfg.DefaultLabelColor)

		w.nodeLayer.AddChild(circle)
		w.labelLayer.AddChild(label)

		nv := &nodeVisual{node: n, circle: circle, label: label}
		w.nodeVisuals = append(w.nodeVisuals, nv)
		w.bindNode(nv)
	}

	w.syncVisuals()
}

func labelColor(n *Node, fallback scene.Color) scene.Color {
	if n.LabelColor != nil {
		return *n.LabelColor
	}
	return fallback
}

// syncVisuals writes current simulation positions into the bound primitives:
// edge endpoints from the two nodes surrounding each bilink's midpoint, the
// midpoint marker from the midpoint itself, and node/label transforms from
// node positions.
func (w *Widget) syncVisuals() {
	for _, ev := range w.edgeVisuals {
		ev.line.X1 = ev.link.Source.X
		ev.line.Y1 = ev.link.Source.Y
		ev.line.X2 = ev.link.Target.X
		ev.line.Y2 = ev.link.Target.Y
		ev.line.MarkDirty()
		ev.marker.SetPosition(ev.link.Mid.X, ev.link.Mid.Y)
	}
	for _, nv := range w.nodeVisuals {
		nv.circle.SetPosition(nv.node.X, nv.node.Y)
		nv.label.SetPosition(nv.node.X+nodeRadius(nv.node)+labelOffset, nv.node.Y)
	}
}

// reflow is the deterministic substitute for animation: re-energize, step
// synchronously until the convergence threshold or the iteration cap, stop,
// then perform one final unconditional visual write.
func (w *Widget) reflow() {
	w.sim.Resume()
	for i := 0; i < settleMaxTicks && w.sim.Alpha() > settleAlphaMin; i++ {
		w.sim.Tick()
	}
	w.sim.Stop()
	w.syncVisuals()
}

// --- Redraw operations ---

// Redraw reapplies the current pan/zoom transform to the scene root.
func (w *Widget) Redraw() {
	w.viewRoot.SetPosition(w.panX, w.panY)
	w.viewRoot.SetScale(w.zoom)
}

// RedrawSelection restyles selection stroke widths from the current node
// Selected flags without rebuilding the scene.
func (w *Widget) RedrawSelection() {
	for _, nv := range w.nodeVisuals {
		if nv.node.Selected {
			nv.circle.StrokeWidth = selectedStrokeWidth
		} else {
			nv.circle.StrokeWidth = 0
		}
	}
}

// RedrawLabels restyles label colors from each node's own label color or the
// configured default.
func (w *Widget) RedrawLabels() {
	w.applyLabelColors(w.cfg.DefaultLabelColor)
}

func (w *Widget) applyLabelColors(fallback scene.Color) {
	for _, nv := range w.nodeVisuals {
		nv.label.TextColor = labelColor(nv.node, fallback)
	}
}

func (w *Widget) setLabelsVisible(visible bool) {
	for _, nv := range w.nodeVisuals {
		nv.label.Visible = visible
	}
}

func (w *Widget) setFontSize(size float64) {
	for _, nv := range w.nodeVisuals {
		nv.label.Size = size
	}
}

// --- Selection ---

// Selection returns the currently selected node, or nil.
func (w *Widget) Selection() *Node {
	return w.selected
}

// NodeClicked runs the selection toggle for n and notifies click listeners
// unconditionally, even if n was already selected. It is public so test
// harnesses can simulate a click without synthesizing pointer input.
func (w *Widget) NodeClicked(n *Node) {
	w.toggleSelection(n)
	w.emitNodeClicked(n)
}

// ClearSelection deselects the current selection, if any, and notifies
// selection listeners.
func (w *Widget) ClearSelection() {
	if w.selected != nil {
		w.toggleSelection(w.selected)
	}
}

// toggleSelection selects n, moving the selection from any previous node; if
// n is already selected it is deselected and the selection becomes empty.
func (w *Widget) toggleSelection(n *Node) {
	if w.selected == n {
		n.Selected = false
		w.selected = nil
	} else {
		if w.selected != nil {
			w.selected.Selected = false
		}
		n.Selected = true
		w.selected = n
	}
	w.RedrawSelection()
	w.emitSelectionChanged(w.selected)
}

// --- Accessors for collaborators ---

// Scene returns the scene the widget draws into.
func (w *Widget) Scene() *scene.Scene {
	return w.sc
}

// Root returns the widget's root container node.
func (w *Widget) Root() *scene.Node {
	return w.root
}

// FilterText returns the current search string. Stale filter text persists
// across data replacement; only the clear-selection control resets it.
func (w *Widget) FilterText() string {
	return w.filterText
}

func clampZoom(z float64, c Config) float64 {
	if c.MinZoom > 0 && z < c.MinZoom {
		return c.MinZoom
	}
	if c.MaxZoom > 0 && z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}
