// Package tangle is an interactive force-directed graph widget for
// [Ebitengine].
//
// Tangle takes a graph of named nodes and weighted links, lays it out with a
// force simulation, and renders it as a pannable, zoomable scene with
// draggable nodes, click selection, hover labels, and an animated text filter.
//
// # Quick start
//
// Build a scene, attach a widget, feed it a graph, and run:
//
//	sc := scene.NewScene()
//	w := tangle.New(sc, 800, 600)
//	w.SetData(tangle.Graph{
//		Nodes: []*tangle.Node{{Name: "alpha"}, {Name: "beta"}},
//		Links: []tangle.Link{{Source: 0, Target: 1}},
//	})
//	scene.Run(sc, scene.RunConfig{Title: "tangle", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call
// [scene.Scene.Update] and [scene.Scene.Draw] directly.
//
// # Configuration
//
// The widget is reconfigured live through partial patches:
//
//	w.SetConfig(tangle.ConfigPatch{Charge: ptr(-400.0), Labels: ptr(true)})
//
// Simulation parameters are clamped to their configured bounds, and zero
// values fall back to defaults. With Animate off, layout changes settle
// synchronously instead of playing out over frames.
//
// [Ebitengine]: https://ebitengine.org
package tangle
