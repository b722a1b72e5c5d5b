package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/softbranch/tangle/scene"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGraphFile(t *testing.T) {
	path := writeTemp(t, `
nodes:
  - name: hub
    value: 16
    color: "#e6b84d"
  - name: alpha
    labelColor: "#fff"
links:
  - source: hub
    target: alpha
    value: 2
`)
	g, err := loadGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Fatalf("got %d nodes, %d links", len(g.Nodes), len(g.Links))
	}
	if g.Nodes[0].Value != 16 {
		t.Errorf("hub Value = %v, want 16", g.Nodes[0].Value)
	}
	if g.Nodes[1].LabelColor == nil {
		t.Error("alpha should carry its own label color")
	}
	if g.Links[0].Source != 0 || g.Links[0].Target != 1 {
		t.Errorf("link indices = (%d, %d), want (0, 1)", g.Links[0].Source, g.Links[0].Target)
	}
}

func TestLoadGraphFileErrors(t *testing.T) {
	cases := map[string]string{
		"no nodes":       `links: []`,
		"unnamed node":   "nodes:\n  - value: 3\n",
		"duplicate name": "nodes:\n  - name: a\n  - name: a\n",
		"unknown link":   "nodes:\n  - name: a\nlinks:\n  - source: a\n    target: ghost\n",
		"bad color":      "nodes:\n  - name: a\n    color: \"red\"\n",
	}
	for name, content := range cases {
		if _, err := loadGraphFile(writeTemp(t, content)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTemp(t, `
animate: false
charge: -400
labels: true
chargeBounds: {min: -1000, max: -50}
`)
	p, err := loadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Animate == nil || *p.Animate {
		t.Error("animate should parse as false")
	}
	if p.Charge == nil || *p.Charge != -400 {
		t.Error("charge should parse as -400")
	}
	if p.ChargeBounds == nil || p.ChargeBounds.Min != -1000 {
		t.Error("chargeBounds should parse")
	}
	if p.Gravity != nil {
		t.Error("unset fields should stay nil")
	}
}

func approxColor(a, b scene.Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want scene.Color
	}{
		{"#ffffff", scene.Color{R: 1, G: 1, B: 1, A: 1}},
		{"#000000", scene.Color{A: 1}},
		{"#ff0000", scene.Color{R: 1, A: 1}},
		{"#f00", scene.Color{R: 1, A: 1}},
		{"#ff000080", scene.Color{R: 1, A: 128.0 / 255}},
	}
	for _, c := range cases {
		got, err := parseHexColor(c.in)
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", c.in, err)
			continue
		}
		if !approxColor(got, c.want) {
			t.Errorf("parseHexColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "red", "#12", "#12345", "#gggggg"} {
		if _, err := parseHexColor(bad); err == nil {
			t.Errorf("parseHexColor(%q): expected error", bad)
		}
	}
}
