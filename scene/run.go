package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

type game struct {
	scene  *Scene
	width  int
	height int
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and drives the scene with a minimal game loop. It blocks
// until the window is closed or the update callback returns an error.
// For full control, implement ebiten.Game yourself and call Scene.Update and
// Scene.Draw directly.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title == "" {
		cfg.Title = "tangle"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(&game{scene: s, width: cfg.Width, height: cfg.Height})
}
