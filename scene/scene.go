package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Scene is the top-level object that owns the node tree, input state, and
// active tweens.
type Scene struct {
	root *Node

	// ClearColor fills the screen before each draw.
	ClearColor Color

	updateFunc func() error

	// Input state
	pointer      pointerState
	injectQueue  []syntheticPointerEvent
	handlers     handlerRegistry
	wheelFn      func(WheelContext)
	dragDeadZone float64

	// Active tweens, advanced each Update.
	tweens []*TweenGroup
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:         root,
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc registers a callback invoked at the start of every Update.
// Returning a non-nil error aborts the frame and stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update runs the user update callback, fires per-node update hooks, advances
// tweens, refreshes world transforms, and processes input.
func (s *Scene) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	fireUpdateHooks(s.root, dt)
	s.updateTweens(float32(dt))

	// Refresh world transforms so hit testing sees this frame's positions.
	updateWorldTransform(s.root, identityTransform, false)

	s.processInput()
	return nil
}

func fireUpdateHooks(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		fireUpdateHooks(child, dt)
	}
}

// --- Drawing ---

// baseFaceSize is the nominal point size of the built-in bitmap face.
// Text nodes are scaled by Size/baseFaceSize at draw time.
const baseFaceSize = 10.0

var baseFace *text.GoXFace

func ensureFace() *text.GoXFace {
	if baseFace == nil {
		baseFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return baseFace
}

// Draw fills the screen with ClearColor and renders the node tree in
// depth-first insertion order.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.RGBA())
	updateWorldTransform(s.root, identityTransform, false)
	drawNode(screen, s.root)
}

func drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}

	switch n.Kind {
	case KindCircle:
		cx, cy := n.world[4], n.world[5]
		sc := n.world[0]
		r := float32(n.Radius * sc)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, n.Fill.RGBA(), true)
		if n.StrokeWidth > 0 {
			vector.StrokeCircle(screen, float32(cx), float32(cy), r,
				float32(n.StrokeWidth*sc), n.Stroke.RGBA(), true)
		}

	case KindLine:
		// Endpoints live in the parent's space; the node's own local
		// transform is identity so world == parent world.
		x0, y0 := transformPoint(n.world, n.X1, n.Y1)
		x1, y1 := transformPoint(n.world, n.X2, n.Y2)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1),
			float32(n.Width*n.world[0]), n.Fill.RGBA(), true)

	case KindRect:
		x, y := n.world[4], n.world[5]
		sc := n.world[0]
		vector.DrawFilledRect(screen, float32(x), float32(y),
			float32(n.W*sc), float32(n.H*sc), n.Fill.RGBA(), true)

	case KindText:
		op := &text.DrawOptions{}
		k := n.Size / baseFaceSize * n.world[0]
		if k <= 0 {
			k = n.world[0]
		}
		op.GeoM.Scale(k, k)
		op.GeoM.Translate(n.world[4], n.world[5])
		op.ColorScale.ScaleWithColor(n.TextColor.RGBA())
		text.Draw(screen, n.Content, ensureFace(), op)
	}

	for _, child := range n.children {
		drawNode(screen, child)
	}
}
