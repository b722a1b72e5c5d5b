package scene

import "testing"

func assertNodeDefaults(t *testing.T, n *Node, name string, kind Kind) {
	t.Helper()
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Kind != kind {
		t.Errorf("Kind = %d, want %d", n.Kind, kind)
	}
	if n.Scale != 1 {
		t.Errorf("Scale = %v, want 1", n.Scale)
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.IsDisposed() {
		t.Error("new node should not be disposed")
	}
}

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("c")
	assertNodeDefaults(t, n, "c", KindContainer)
}

func TestNewCircleDefaults(t *testing.T) {
	n := NewCircle("circ", 12, ColorWhite)
	assertNodeDefaults(t, n, "circ", KindCircle)
	if n.Radius != 12 {
		t.Errorf("Radius = %v, want 12", n.Radius)
	}
	if n.Fill != ColorWhite {
		t.Errorf("Fill = %v, want white", n.Fill)
	}
}

func TestNewLineDefaults(t *testing.T) {
	n := NewLine("l", 2, ColorWhite)
	assertNodeDefaults(t, n, "l", KindLine)
	if n.Width != 2 {
		t.Errorf("Width = %v, want 2", n.Width)
	}
}

func TestNewRectDefaults(t *testing.T) {
	n := NewRect("r", 30, 20, ColorWhite)
	assertNodeDefaults(t, n, "r", KindRect)
	if n.W != 30 || n.H != 20 {
		t.Errorf("size = (%v, %v), want (30, 20)", n.W, n.H)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("t", "hello", 10)
	assertNodeDefaults(t, n, "t", KindText)
	if n.Content != "hello" {
		t.Errorf("Content = %q, want %q", n.Content, "hello")
	}
	if n.Size != 10 {
		t.Errorf("Size = %v, want 10", n.Size)
	}
}

// --- Tree operations ---

func TestAddChildSetsParent(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)

	if c.Parent != p {
		t.Error("child Parent not set")
	}
	if p.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", p.NumChildren())
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)
	b.AddChild(c)

	if a.NumChildren() != 0 {
		t.Error("child should have left its first parent")
	}
	if c.Parent != b {
		t.Error("child should belong to its new parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)

	assertPanics(t, "nil child", func() { p.AddChild(nil) })
	assertPanics(t, "self child", func() { p.AddChild(p) })
	assertPanics(t, "ancestor cycle", func() { c.AddChild(p) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)

	p.RemoveChild(a)
	if p.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", p.NumChildren())
	}
	if a.Parent != nil {
		t.Error("removed child should have nil Parent")
	}
	if p.Children()[0] != b {
		t.Error("remaining child should be b")
	}
}

func TestRemoveFromParent(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)

	c.RemoveFromParent()
	if p.NumChildren() != 0 || c.Parent != nil {
		t.Error("RemoveFromParent should detach the node")
	}

	c.RemoveFromParent() // no-op when detached
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	p.AddChild(NewContainer("a"))
	p.AddChild(NewContainer("b"))

	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
}

func TestDisposeDetachesAndMarksSubtree(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewContainer("gc")
	p.AddChild(c)
	c.AddChild(gc)

	c.Dispose()
	if p.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	if !c.IsDisposed() || !gc.IsDisposed() {
		t.Error("dispose should mark the whole subtree")
	}
}
