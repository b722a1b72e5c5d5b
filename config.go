package tangle

import "github.com/softbranch/tangle/scene"

// Range bounds a numeric configuration field. The zero Range leaves the field
// unbounded.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// clamp constrains v to the range. A zero Range passes v through.
func (r Range) clamp(v float64) float64 {
	if r == (Range{}) {
		return v
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Config is the widget's full configuration. It is immutable-by-replacement:
// SetConfig merges a patch into the current value, producing a new Config that
// is committed only after all side effects have been applied.
type Config struct {
	// Animate toggles continuous simulation stepping. When false, layout
	// changes are applied with a bounded synchronous settle pass instead.
	Animate bool

	LinkDistance       float64
	LinkDistanceBounds Range
	LinkStrength       float64
	LinkStrengthBounds Range
	Charge             float64
	ChargeBounds       Range
	Gravity            float64
	GravityBounds      Range

	// Labels makes node labels persistently visible. Hovering any node
	// reveals all labels temporarily regardless of this setting.
	Labels bool

	MinZoom float64
	MaxZoom float64

	// CaseInsensitive controls filter matching.
	CaseInsensitive bool

	// DefaultLabelColor is the label fill used for nodes without their own.
	DefaultLabelColor scene.Color

	// FontSizePT is the label font size in points. Non-positive values fall
	// back to the default.
	FontSizePT float64
}

// DefaultConfig returns the configuration applied by New.
func DefaultConfig() Config {
	return Config{
		Animate:            true,
		LinkDistance:       60,
		LinkDistanceBounds: Range{Min: 10, Max: 300},
		LinkStrength:       1,
		LinkStrengthBounds: Range{Min: 0.1, Max: 10},
		Charge:             -240,
		ChargeBounds:       Range{Min: -1200, Max: -30},
		Gravity:            0.1,
		GravityBounds:      Range{Min: 0.01, Max: 1},
		Labels:             false,
		MinZoom:            0.25,
		MaxZoom:            4,
		CaseInsensitive:    true,
		DefaultLabelColor:  scene.ColorWhite,
		FontSizePT:         defaultFontSizePT,
	}
}

// ConfigPatch is a partial configuration. Nil fields keep the current value;
// set fields overwrite it wholesale.
type ConfigPatch struct {
	Animate            *bool        `yaml:"animate"`
	LinkDistance       *float64     `yaml:"linkDistance"`
	LinkDistanceBounds *Range       `yaml:"linkDistanceBounds"`
	LinkStrength       *float64     `yaml:"linkStrength"`
	LinkStrengthBounds *Range       `yaml:"linkStrengthBounds"`
	Charge             *float64     `yaml:"charge"`
	ChargeBounds       *Range       `yaml:"chargeBounds"`
	Gravity            *float64     `yaml:"gravity"`
	GravityBounds      *Range       `yaml:"gravityBounds"`
	Labels             *bool        `yaml:"labels"`
	MinZoom            *float64     `yaml:"minZoom"`
	MaxZoom            *float64     `yaml:"maxZoom"`
	CaseInsensitive    *bool        `yaml:"caseInsensitive"`
	DefaultLabelColor  *scene.Color `yaml:"-"`
	FontSizePT         *float64     `yaml:"fontSizePT"`
}

// merge overlays the patch onto c, returning the merged configuration.
func (c Config) merge(p ConfigPatch) Config {
	next := c
	if p.Animate != nil {
		next.Animate = *p.Animate
	}
	if p.LinkDistance != nil {
		next.LinkDistance = *p.LinkDistance
	}
	if p.LinkDistanceBounds != nil {
		next.LinkDistanceBounds = *p.LinkDistanceBounds
	}
	if p.LinkStrength != nil {
		next.LinkStrength = *p.LinkStrength
	}
	if p.LinkStrengthBounds != nil {
		next.LinkStrengthBounds = *p.LinkStrengthBounds
	}
	if p.Charge != nil {
		next.Charge = *p.Charge
	}
	if p.ChargeBounds != nil {
		next.ChargeBounds = *p.ChargeBounds
	}
	if p.Gravity != nil {
		next.Gravity = *p.Gravity
	}
	if p.GravityBounds != nil {
		next.GravityBounds = *p.GravityBounds
	}
	if p.Labels != nil {
		next.Labels = *p.Labels
	}
	if p.MinZoom != nil {
		next.MinZoom = *p.MinZoom
	}
	if p.MaxZoom != nil {
		next.MaxZoom = *p.MaxZoom
	}
	if p.CaseInsensitive != nil {
		next.CaseInsensitive = *p.CaseInsensitive
	}
	if p.DefaultLabelColor != nil {
		next.DefaultLabelColor = *p.DefaultLabelColor
	}
	if p.FontSizePT != nil {
		next.FontSizePT = *p.FontSizePT
	}
	return next
}

// effective clamps v to bounds and substitutes def when the clamped value
// comes out zero.
func effective(v float64, bounds Range, def float64) float64 {
	v = bounds.clamp(v)
	if v == 0 {
		return def
	}
	return v
}

// effectiveFontSize substitutes the default for non-positive sizes.
func effectiveFontSize(v float64) float64 {
	if v <= 0 {
		return defaultFontSizePT
	}
	return v
}
