package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/softbranch/tangle"
	"github.com/softbranch/tangle/scene"
)

// graphFile is the on-disk graph schema. Links reference nodes by name.
//
//	nodes:
//	  - name: hub
//	    value: 16
//	    color: "#e6b84d"
//	    labelColor: "#222"
//	links:
//	  - source: hub
//	    target: alpha
//	    value: 2
type graphFile struct {
	Nodes []nodeEntry `yaml:"nodes"`
	Links []linkEntry `yaml:"links"`
}

type nodeEntry struct {
	Name       string  `yaml:"name"`
	Value      float64 `yaml:"value"`
	Color      string  `yaml:"color"`
	LabelColor string  `yaml:"labelColor"`
}

type linkEntry struct {
	Source string  `yaml:"source"`
	Target string  `yaml:"target"`
	Value  float64 `yaml:"value"`
}

func loadGraphFile(path string) (tangle.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tangle.Graph{}, fmt.Errorf("load graph: %w", err)
	}

	var gf graphFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return tangle.Graph{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(gf.Nodes) == 0 {
		return tangle.Graph{}, fmt.Errorf("parse %s: no nodes", path)
	}

	var g tangle.Graph
	index := make(map[string]int, len(gf.Nodes))
	for i, ne := range gf.Nodes {
		if ne.Name == "" {
			return tangle.Graph{}, fmt.Errorf("parse %s: node %d has no name", path, i)
		}
		if _, dup := index[ne.Name]; dup {
			return tangle.Graph{}, fmt.Errorf("parse %s: duplicate node %q", path, ne.Name)
		}
		index[ne.Name] = i

		n := &tangle.Node{Name: ne.Name, Value: ne.Value}
		if ne.Color != "" {
			c, err := parseHexColor(ne.Color)
			if err != nil {
				return tangle.Graph{}, fmt.Errorf("parse %s: node %q: %w", path, ne.Name, err)
			}
			n.Color = c
		}
		if ne.LabelColor != "" {
			c, err := parseHexColor(ne.LabelColor)
			if err != nil {
				return tangle.Graph{}, fmt.Errorf("parse %s: node %q: %w", path, ne.Name, err)
			}
			n.LabelColor = &c
		}
		g.Nodes = append(g.Nodes, n)
	}

	for i, le := range gf.Links {
		src, ok := index[le.Source]
		if !ok {
			return tangle.Graph{}, fmt.Errorf("parse %s: link %d: unknown source %q", path, i, le.Source)
		}
		dst, ok := index[le.Target]
		if !ok {
			return tangle.Graph{}, fmt.Errorf("parse %s: link %d: unknown target %q", path, i, le.Target)
		}
		g.Links = append(g.Links, tangle.Link{Source: src, Target: dst, Value: le.Value})
	}
	return g, nil
}

func loadConfigFile(path string) (tangle.ConfigPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tangle.ConfigPatch{}, fmt.Errorf("load config: %w", err)
	}
	var p tangle.ConfigPatch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return tangle.ConfigPatch{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

// parseHexColor parses #rgb, #rrggbb, and #rrggbbaa.
func parseHexColor(s string) (scene.Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return scene.Color{}, fmt.Errorf("bad color %q: expected leading '#'", s)
	}
	hex := s[1:]

	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return scene.Color{}, fmt.Errorf("bad color %q: expected 3, 6, or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return scene.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}

	c := scene.Color{A: 1}
	if len(hex) == 8 {
		c.A = float64(v&0xff) / 255
		v >>= 8
	}
	c.B = float64(v&0xff) / 255
	c.G = float64((v>>8)&0xff) / 255
	c.R = float64((v>>16)&0xff) / 255
	return c, nil
}
