package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS prints FPS and TPS in the top-left corner.
	ShowFPS bool
	// Update runs after the EventSystem's Update every tick.
	Update func() error
	// Draw renders the frame.
	Draw func(screen *ebiten.Image)
}

// Run opens a window and drives sys from ebiten's game loop. Window focus
// is forwarded to SetFocused every tick.
//
// For full control, implement [ebiten.Game] yourself and call
// [EventSystem.Update] from its Update method.
func Run(sys *EventSystem, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	return ebiten.RunGame(&game{sys: sys, cfg: cfg})
}

type game struct {
	sys *EventSystem
	cfg RunConfig
}

func (g *game) Update() error {
	g.sys.SetFocused(ebiten.IsFocused())
	g.sys.Update()
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}
