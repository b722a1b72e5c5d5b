package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates a single float64 field on a Node after an optional start
// delay. Groups registered with Scene.AddTween are advanced automatically each
// Update; standalone groups can be driven by calling Update(dt) directly.
// If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tween  *gween.Tween
	field  *float64
	target *Node
	delay  float32
	Done   bool
}

// Update advances the tween by dt seconds, writes the value to the target
// field, and marks the node dirty. The delay elapses before the first write.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		dt = -g.delay
		g.delay = 0
		if dt == 0 {
			return
		}
	}

	val, finished := g.tween.Update(dt)
	*g.field = float64(val)
	g.Done = finished

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Target returns the node this group animates.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenScale creates a TweenGroup that animates node.Scale to the given value
// over duration seconds, starting after delay seconds.
func TweenScale(node *Node, to float64, duration, delay float32, fn ease.TweenFunc) *TweenGroup {
	return &TweenGroup{
		tween:  gween.New(float32(node.Scale), float32(to), duration, fn),
		field:  &node.Scale,
		target: node,
		delay:  delay,
	}
}

// TweenPosition is not provided: the widget layer owns node positions and
// writes them directly from the simulation.

// AddTween registers a tween group to be advanced on every Update.
// Finished groups are dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// CancelTweens removes all active tween groups targeting the given node,
// leaving the node's fields at their current values.
func (s *Scene) CancelTweens(target *Node) {
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		if g.target != target {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
}

// updateTweens advances all active groups and compacts out finished ones.
func (s *Scene) updateTweens(dt float32) {
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
}
