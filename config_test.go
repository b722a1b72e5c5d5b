package tangle

import (
	"testing"

	"github.com/softbranch/tangle/scene"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 10, Max: 300}
	if got := r.clamp(5); got != 10 {
		t.Errorf("clamp(5) = %v, want 10", got)
	}
	if got := r.clamp(500); got != 300 {
		t.Errorf("clamp(500) = %v, want 300", got)
	}
	if got := r.clamp(60); got != 60 {
		t.Errorf("clamp(60) = %v, want 60", got)
	}
}

func TestRangeZeroValuePassesThrough(t *testing.T) {
	var r Range
	if got := r.clamp(-999); got != -999 {
		t.Errorf("zero Range clamp(-999) = %v, want -999", got)
	}
}

func TestConfigMergeNilFieldsKeepCurrent(t *testing.T) {
	cur := DefaultConfig()
	next := cur.merge(ConfigPatch{})
	if next != cur {
		t.Error("empty patch should leave the configuration unchanged")
	}
}

func TestConfigMergeOverwritesSetFields(t *testing.T) {
	cur := DefaultConfig()
	next := cur.merge(ConfigPatch{
		Charge:  fptr(-400),
		Labels:  bptr(true),
		Animate: bptr(false),
	})

	if next.Charge != -400 {
		t.Errorf("Charge = %v, want -400", next.Charge)
	}
	if !next.Labels {
		t.Error("Labels should be true")
	}
	if next.Animate {
		t.Error("Animate should be false")
	}
	if next.LinkDistance != cur.LinkDistance {
		t.Error("unpatched field changed")
	}
}

func TestConfigMergeSequence(t *testing.T) {
	// Applying two patches one after the other matches applying their union.
	cur := DefaultConfig()
	a := ConfigPatch{Charge: fptr(-400)}
	b := ConfigPatch{Gravity: fptr(0.3)}

	stepwise := cur.merge(a).merge(b)
	union := cur.merge(ConfigPatch{Charge: fptr(-400), Gravity: fptr(0.3)})
	if stepwise != union {
		t.Errorf("stepwise merge = %+v, want %+v", stepwise, union)
	}
}

func TestConfigMergeBounds(t *testing.T) {
	cur := DefaultConfig()
	next := cur.merge(ConfigPatch{ChargeBounds: &Range{Min: -500, Max: -50}})
	if next.ChargeBounds != (Range{Min: -500, Max: -50}) {
		t.Errorf("ChargeBounds = %+v", next.ChargeBounds)
	}
}

func TestConfigMergeLabelColor(t *testing.T) {
	red := scene.Color{R: 1, A: 1}
	next := DefaultConfig().merge(ConfigPatch{DefaultLabelColor: &red})
	if next.DefaultLabelColor != red {
		t.Errorf("DefaultLabelColor = %+v, want %+v", next.DefaultLabelColor, red)
	}
}

func TestEffectiveClampsThenDefaults(t *testing.T) {
	bounds := Range{Min: 10, Max: 300}

	if got := effective(500, bounds, 60); got != 300 {
		t.Errorf("effective(500) = %v, want 300", got)
	}
	if got := effective(5, bounds, 60); got != 10 {
		t.Errorf("effective(5) = %v, want 10", got)
	}
	// A zero value with no bounds falls back to the default.
	if got := effective(0, Range{}, 60); got != 60 {
		t.Errorf("effective(0, unbounded) = %v, want 60", got)
	}
}

func TestEffectiveFontSize(t *testing.T) {
	if got := effectiveFontSize(12); got != 12 {
		t.Errorf("effectiveFontSize(12) = %v, want 12", got)
	}
	if got := effectiveFontSize(0); got != defaultFontSizePT {
		t.Errorf("effectiveFontSize(0) = %v, want %v", got, defaultFontSizePT)
	}
	if got := effectiveFontSize(-1); got != defaultFontSizePT {
		t.Errorf("effectiveFontSize(-1) = %v, want %v", got, defaultFontSizePT)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if !c.Animate {
		t.Error("Animate should default to true")
	}
	if !c.CaseInsensitive {
		t.Error("CaseInsensitive should default to true")
	}
	if c.Charge >= 0 {
		t.Errorf("Charge = %v, want negative (repulsion)", c.Charge)
	}
	if c.MinZoom <= 0 || c.MaxZoom <= c.MinZoom {
		t.Errorf("zoom bounds (%v, %v) are not ordered", c.MinZoom, c.MaxZoom)
	}
}
