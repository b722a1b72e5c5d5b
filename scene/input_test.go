package scene

import "testing"

func refreshTransforms(s *Scene) {
	updateWorldTransform(s.root, identityTransform, false)
}

func TestInjectClickFiresOnRelease(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 20, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	s.Root().AddChild(c)
	refreshTransforms(s)

	var clicked bool
	c.OnClick = func(ctx ClickContext) {
		clicked = true
		if ctx.Node != c {
			t.Error("click context should carry the hit node")
		}
	}

	s.InjectClick(100, 100)
	s.processInput() // press
	if clicked {
		t.Error("click must not fire on the press frame")
	}
	s.processInput() // release
	if !clicked {
		t.Error("click should fire on the release frame")
	}
}

func TestSceneClickFiresForEmptySpace(t *testing.T) {
	s := NewScene()
	refreshTransforms(s)

	var got *Node = &Node{}
	s.OnClick(func(ctx ClickContext) { got = ctx.Node })

	s.InjectClick(50, 50)
	s.processInput()
	s.processInput()
	if got != nil {
		t.Error("scene click on empty space should carry a nil node")
	}
}

func TestDragDeadZone(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 30, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	s.Root().AddChild(c)
	refreshTransforms(s)

	var started bool
	c.OnDragStart = func(DragContext) { started = true }

	// Movement inside the dead zone never starts a drag.
	s.InjectPress(100, 100)
	s.InjectMove(102, 102)
	s.processInput()
	s.processInput()
	if started {
		t.Fatal("drag started inside the dead zone")
	}

	// Crossing the dead zone starts it.
	s.InjectMove(110, 110)
	s.processInput()
	if !started {
		t.Error("drag should start past the dead zone")
	}
}

func TestDragSequenceEvents(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 30, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	s.Root().AddChild(c)
	refreshTransforms(s)

	var events []string
	c.OnDragStart = func(DragContext) { events = append(events, "start") }
	c.OnDrag = func(DragContext) { events = append(events, "drag") }
	c.OnDragEnd = func(DragContext) { events = append(events, "end") }
	c.OnClick = func(ClickContext) { events = append(events, "click") }

	s.InjectDrag(100, 100, 200, 200, 5)
	for i := 0; i < 5; i++ {
		s.processInput()
	}

	if len(events) < 3 {
		t.Fatalf("events = %v, want start/drag.../end", events)
	}
	if events[0] != "start" {
		t.Errorf("first event = %q, want start", events[0])
	}
	if events[len(events)-1] != "end" {
		t.Errorf("last event = %q, want end", events[len(events)-1])
	}
	for _, e := range events {
		if e == "click" {
			t.Error("a completed drag must not also fire a click")
		}
	}
}

func TestHoverEnterLeave(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 20, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	s.Root().AddChild(c)
	refreshTransforms(s)

	var events []string
	c.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	c.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.InjectHover(100, 100)
	s.InjectHover(105, 105) // still inside, no repeat enter
	s.InjectHover(500, 500)
	s.processInput()
	s.processInput()
	s.processInput()

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewScene()
	bottom := NewCircle("bottom", 30, ColorWhite)
	top := NewCircle("top", 30, ColorWhite)
	bottom.Interactable = true
	top.Interactable = true
	bottom.SetPosition(100, 100)
	top.SetPosition(100, 100)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)
	refreshTransforms(s)

	if hit := s.hitTest(100, 100); hit != top {
		t.Errorf("hitTest = %v, want the later-added node", hit.Name)
	}
}

func TestHitTestSkipsInvisibleAndInert(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 30, ColorWhite)
	c.SetPosition(100, 100)
	s.Root().AddChild(c)
	refreshTransforms(s)

	if hit := s.hitTest(100, 100); hit != nil {
		t.Error("non-interactable node should not be hit")
	}

	c.Interactable = true
	c.Visible = false
	if hit := s.hitTest(100, 100); hit != nil {
		t.Error("invisible node should not be hit")
	}
}

func TestHitTestDescendsInteractableContainers(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	c := NewCircle("c", 20, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	group.AddChild(c)
	s.Root().AddChild(group)
	refreshTransforms(s)

	// A non-interactable container prunes its whole subtree.
	if hit := s.hitTest(100, 100); hit != nil {
		t.Fatal("circle under a non-interactable container should be unreachable")
	}

	group.Interactable = true
	if hit := s.hitTest(100, 100); hit != c {
		t.Error("circle under an interactable container should be hit")
	}
}

func TestHitShapeOverridesKind(t *testing.T) {
	s := NewScene()
	c := NewCircle("c", 5, ColorWhite)
	c.Interactable = true
	c.SetPosition(100, 100)
	c.HitShape = HitCircle{Radius: 50}
	s.Root().AddChild(c)
	refreshTransforms(s)

	if hit := s.hitTest(130, 100); hit != c {
		t.Error("enlarged hit shape should extend beyond the visual radius")
	}
}

func TestWheelCallback(t *testing.T) {
	s := NewScene()
	var got WheelContext
	s.SetWheelFunc(func(ctx WheelContext) { got = ctx })

	s.InjectWheel(10, 20, -3)
	s.processInput()
	if got.GlobalX != 10 || got.GlobalY != 20 || got.DeltaY != -3 {
		t.Errorf("wheel context = %+v", got)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := NewScene()
	refreshTransforms(s)

	count := 0
	h := s.OnClick(func(ClickContext) { count++ })

	s.InjectClick(10, 10)
	s.processInput()
	s.processInput()
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	h.Remove()
	s.InjectClick(10, 10)
	s.processInput()
	s.processInput()
	if count != 1 {
		t.Error("removed handler should not fire")
	}
}
