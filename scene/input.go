package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	click     []clickHandler
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnClick registers a scene-level callback for click events. Unlike per-node
// callbacks it also fires for clicks on empty space (ctx.Node == nil).
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

// SetWheelFunc registers the callback invoked on mouse wheel movement.
func (s *Scene) SetWheelFunc(fn func(WheelContext)) {
	s.wheelFn = fn
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the region from the node's kind.
// Containers, lines, and text without a HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Kind {
	case KindCircle:
		return lx*lx+ly*ly <= n.Radius*n.Radius
	case KindRect:
		return lx >= 0 && lx <= n.W && ly >= 0 && ly <= n.H
	default:
		return false
	}
}

// collectInteractable walks the tree in painter order (DFS), appending
// hit-testable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Kind == KindCircle || n.Kind == KindRect {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (x, y) in screen space.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Node {
	buf := collectInteractable(s.root, nil)
	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(buf) - 1; i >= 0; i-- {
		n := buf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Injection (synthetic input for tests and automation) ---

// syntheticPointerEvent represents a single injected input event in screen
// coordinates. One event is consumed per frame, replacing real mouse input
// for that frame.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton

	wheel            bool
	wheelDX, wheelDY float64
}

// InjectPress queues a pointer press event (left button).
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event with the button held down.
// Use this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectHover queues a pointer move event with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: false, button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: false, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given coordinates.
func (s *Scene) InjectWheel(x, y, deltaY float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, wheel: true, wheelDY: deltaY,
	})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed
// (real mouse input is skipped for this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.wheel {
		s.fireWheel(evt.x, evt.y, evt.wheelDX, evt.wheelDY)
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle mouse and wheel input.
// World transforms are already refreshed.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(x, y, pressed, button)

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		s.fireWheel(x, y, dx, dy)
	}
}

// processPointer runs the pointer state machine for the mouse pointer.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointerLeave(ps.hoverNode, x, y, button)
		}
		if target != nil {
			s.firePointerEnter(target, x, y, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		// Just pressed; capture the button for this interaction.
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false

	case !pressed && ps.down:
		// Just released; use the button from press start.
		if ps.dragging {
			s.fireDragEnd(ps.hitNode, x, y, ps.startX, ps.startY,
				x-ps.lastX, y-ps.lastY, ps.button)
		} else if ps.hitNode == target {
			s.fireClick(target, x, y, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		// Held down, possibly moved.
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDragStart(ps.hitNode, x, y, ps.startX, ps.startY,
						x-ps.startX, y-ps.startY, ps.button)
				}
			}
			if ps.dragging {
				s.fireDrag(ps.hitNode, x, y, ps.startX, ps.startY,
					x-ps.lastX, y-ps.lastY, ps.button)
			}
		}
		ps.lastX, ps.lastY = x, y
	}

	if !pressed {
		ps.lastX, ps.lastY = x, y
	}
}

// --- Event dispatch ---

func localOf(node *Node, x, y float64) (float64, float64) {
	if node == nil {
		return 0, 0
	}
	return node.WorldToLocal(x, y)
}

func (s *Scene) firePointerEnter(node *Node, x, y float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := PointerContext{Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly, Button: button}
	if node.OnPointerEnter != nil {
		node.OnPointerEnter(ctx)
	}
}

func (s *Scene) firePointerLeave(node *Node, x, y float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := PointerContext{Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly, Button: button}
	if node.OnPointerLeave != nil {
		node.OnPointerLeave(ctx)
	}
}

func (s *Scene) fireClick(node *Node, x, y float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := ClickContext{Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly, Button: button}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

func (s *Scene) fireDragStart(node *Node, x, y, startX, startY, deltaX, deltaY float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := DragContext{
		Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY, Button: button,
	}
	for _, h := range s.handlers.dragStart {
		h.fn(ctx)
	}
	if node != nil && node.OnDragStart != nil {
		node.OnDragStart(ctx)
	}
}

func (s *Scene) fireDrag(node *Node, x, y, startX, startY, deltaX, deltaY float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := DragContext{
		Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY, Button: button,
	}
	for _, h := range s.handlers.drag {
		h.fn(ctx)
	}
	if node != nil && node.OnDrag != nil {
		node.OnDrag(ctx)
	}
}

func (s *Scene) fireDragEnd(node *Node, x, y, startX, startY, deltaX, deltaY float64, button MouseButton) {
	lx, ly := localOf(node, x, y)
	ctx := DragContext{
		Node: node, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY, Button: button,
	}
	for _, h := range s.handlers.dragEnd {
		h.fn(ctx)
	}
	if node != nil && node.OnDragEnd != nil {
		node.OnDragEnd(ctx)
	}
}

func (s *Scene) fireWheel(x, y, dx, dy float64) {
	if s.wheelFn != nil {
		s.wheelFn(WheelContext{GlobalX: x, GlobalY: y, DeltaX: dx, DeltaY: dy})
	}
}
