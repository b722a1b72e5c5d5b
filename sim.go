package tangle

import (
	"math"
	"math/rand"
)

// Simulation is the physics engine contract. Start begins continuous stepping
// driven by the host update loop (one Tick per frame while Running); Stop
// halts stepping without resetting node positions; Resume restarts stepping
// from the current positions without resetting velocities. Each Tick invokes
// the registered per-tick callback.
//
// The engine owns the authoritative values of node position fields; callers
// pass node slices by reference and read positions back from the same objects.
type Simulation interface {
	SetNodes(nodes []*Node)
	SetLinks(links []Spring)
	SetSize(width, height float64)

	Start()
	Stop()
	Resume()
	Running() bool

	Tick()
	Alpha() float64

	SetLinkDistance(v float64)
	SetLinkStrength(v float64)
	SetCharge(v float64)
	SetGravity(v float64)

	OnTick(fn func())
}

const (
	simStartAlpha = 0.1
	simMinAlpha   = 0.005
	simAlphaDecay = 0.99
	simFriction   = 0.9
)

// ForceSim is the default force-directed engine: O(n²) charge repulsion,
// center gravity, spring relaxation along links, and position-Verlet
// integration with friction. Forces are scaled by a cooling alpha that decays
// each tick; the simulation self-stops once alpha falls below a floor.
type ForceSim struct {
	nodes []*Node
	links []Spring

	width  float64
	height float64

	linkDistance float64
	linkStrength float64
	charge       float64
	gravity      float64

	alpha   float64
	running bool
	onTick  func()

	// Seeded rng for initial placement, deterministic across runs.
	rng *rand.Rand
}

// NewForceSim creates a ForceSim with neutral parameter defaults. The widget
// pushes its configured parameters before starting.
func NewForceSim() *ForceSim {
	return &ForceSim{
		width:        500,
		height:       500,
		linkDistance: 20,
		linkStrength: 1,
		charge:       -30,
		gravity:      0.1,
		rng:          rand.New(rand.NewSource(42)),
	}
}

// SetNodes replaces the simulated node set. Node objects are shared with the
// caller, not copied.
func (f *ForceSim) SetNodes(nodes []*Node) { f.nodes = nodes }

// SetLinks replaces the spring set.
func (f *ForceSim) SetLinks(links []Spring) { f.links = links }

// SetSize sets the layout bounds used for initial placement and gravity.
func (f *ForceSim) SetSize(width, height float64) {
	f.width = width
	f.height = height
}

func (f *ForceSim) SetLinkDistance(v float64) { f.linkDistance = v }
func (f *ForceSim) SetLinkStrength(v float64) { f.linkStrength = v }
func (f *ForceSim) SetCharge(v float64)       { f.charge = v }
func (f *ForceSim) SetGravity(v float64)      { f.gravity = v }

// OnTick registers the callback invoked after every Tick.
func (f *ForceSim) OnTick(fn func()) { f.onTick = fn }

// Alpha returns the current convergence measure. Zero means converged.
func (f *ForceSim) Alpha() float64 { return f.alpha }

// Running reports whether the simulation is stepping.
func (f *ForceSim) Running() bool { return f.running }

// Start places any unpositioned nodes, zeroes velocities, re-energizes alpha,
// and begins stepping.
func (f *ForceSim) Start() {
	for _, n := range f.nodes {
		if !n.Positioned && n.X == 0 && n.Y == 0 {
			n.X = f.rng.Float64() * f.width
			n.Y = f.rng.Float64() * f.height
		}
		n.Positioned = true
		n.PX = n.X
		n.PY = n.Y
	}
	f.alpha = simStartAlpha
	f.running = true
}

// Stop halts stepping. Node positions and alpha are left untouched.
func (f *ForceSim) Stop() {
	f.running = false
}

// Resume re-energizes alpha and restarts stepping from the current positions
// without resetting velocities.
func (f *ForceSim) Resume() {
	f.alpha = simStartAlpha
	f.running = true
}

// Tick advances the simulation by one step, decays alpha, and fires the tick
// callback. When alpha falls below the floor the simulation stops itself.
func (f *ForceSim) Tick() {
	f.step()

	f.alpha *= simAlphaDecay
	if f.alpha < simMinAlpha {
		f.alpha = 0
		f.running = false
	}

	if f.onTick != nil {
		f.onTick()
	}
}

// step applies spring, gravity, and charge forces, then integrates with
// position Verlet. Dragged nodes are held at their pinned position.
func (f *ForceSim) step() {
	k := f.alpha

	// Spring relaxation along links (positional, d3 style).
	for _, s := range f.links {
		dx := s.Target.X - s.Source.X
		dy := s.Target.Y - s.Source.Y
		d := math.Sqrt(dx*dx + dy*dy)
		if d < 1e-6 {
			continue
		}
		l := k * f.linkStrength * (d - f.linkDistance) / d
		dx *= l * 0.5
		dy *= l * 0.5
		s.Target.X -= dx
		s.Target.Y -= dy
		s.Source.X += dx
		s.Source.Y += dy
	}

	// Gravity toward the layout center.
	cx := f.width / 2
	cy := f.height / 2
	g := k * f.gravity
	if g != 0 {
		for _, n := range f.nodes {
			n.X += (cx - n.X) * g
			n.Y += (cy - n.Y) * g
		}
	}

	// Pairwise charge. Negative charge repels.
	if f.charge != 0 {
		for i := 0; i < len(f.nodes); i++ {
			ni := f.nodes[i]
			for j := i + 1; j < len(f.nodes); j++ {
				nj := f.nodes[j]
				dx := nj.X - ni.X
				dy := nj.Y - ni.Y
				d2 := dx*dx + dy*dy
				if d2 < 1 {
					d2 = 1
				}
				fc := k * f.charge / d2
				ni.X += dx * fc
				ni.Y += dy * fc
				nj.X -= dx * fc
				nj.Y -= dy * fc
			}
		}
	}

	// Position Verlet with friction.
	for _, n := range f.nodes {
		if n.Dragging {
			n.X = n.PX
			n.Y = n.PY
			continue
		}
		px := n.PX
		py := n.PY
		n.PX = n.X
		n.PY = n.Y
		n.X += (n.X - px) * simFriction
		n.Y += (n.Y - py) * simFriction
	}
}
