package scene

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts the color to a premultiplied 8-bit color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Kind distinguishes drawing behavior for a Node.
type Kind uint8

const (
	KindContainer Kind = iota // group node with no visual output
	KindCircle                // filled circle with optional stroke
	KindLine                  // line segment between two endpoints
	KindRect                  // filled axis-aligned rectangle
	KindText                  // single line of text
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventClick     EventType = iota // press then release over the same node
	EventDragStart                  // movement exceeded the drag dead zone
	EventDrag                       // each frame while dragging
	EventDragEnd                    // pointer released after dragging
)

// PointerContext carries pointer enter/leave event data.
type PointerContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

// DragContext carries drag event data.
type DragContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	StartX  float64
	StartY  float64
	DeltaX  float64
	DeltaY  float64
	Button  MouseButton
}

// WheelContext carries wheel event data. DeltaY is positive when scrolling up.
type WheelContext struct {
	GlobalX float64
	GlobalY float64
	DeltaX  float64
	DeltaY  float64
}

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitCircle is a circular hit area centered on the node's local origin.
type HitCircle struct {
	Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	return x*x+y*y <= c.Radius*c.Radius
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
