package scene

// Node is the fundamental scene element. A single flat struct is used for all
// node kinds to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	Name string
	Kind Kind

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local): translation plus uniform scale.
	X, Y  float64
	Scale float64

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Circle fields (KindCircle)
	Radius      float64
	Fill        Color
	Stroke      Color
	StrokeWidth float64

	// Line fields (KindLine). Endpoints are in the parent's coordinate space;
	// the node's own translation and scale are ignored for lines.
	X1, Y1, X2, Y2 float64
	Width          float64

	// Rect fields (KindRect)
	W, H float64

	// Text fields (KindText)
	Content   string
	Size      float64 // point size
	TextColor Color

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default; zero cost when unused)
	OnClick        func(ClickContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnUpdate       func(dt float64)

	// Computed during traversal
	world          [6]float64
	transformDirty bool

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.Scale = 1
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Kind: KindContainer}
	nodeDefaults(n)
	return n
}

// NewCircle creates a circle node with the given radius and fill color.
// The circle is centered on the node's local origin.
func NewCircle(name string, radius float64, fill Color) *Node {
	n := &Node{Name: name, Kind: KindCircle, Radius: radius, Fill: fill}
	nodeDefaults(n)
	return n
}

// NewLine creates a line node with the given stroke width and color.
// Set the endpoints via X1/Y1/X2/Y2.
func NewLine(name string, width float64, col Color) *Node {
	n := &Node{Name: name, Kind: KindLine, Width: width, Fill: col}
	nodeDefaults(n)
	return n
}

// NewRect creates a filled rectangle node with its top-left corner at the
// node's local origin.
func NewRect(name string, w, h float64, fill Color) *Node {
	n := &Node{Name: name, Kind: KindRect, W: w, H: h, Fill: fill}
	nodeDefaults(n)
	return n
}

// NewText creates a text node with the given content and point size.
func NewText(name, content string, size float64) *Node {
	n := &Node{
		Name:      name,
		Kind:      KindText,
		Content:   content,
		Size:      size,
		TextColor: ColorWhite,
	}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
