package bramble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	Debug         bool
	// Vsync caps the frame rate to the display. The default (false) runs
	// uncapped.
	Vsync bool
}

// Run opens a window and drives e until the window is closed or e.Stop is
// called. Window or graphics initialization failures are returned.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("bramble: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	e.ShowFPS = cfg.ShowFPS
	e.SetDebugMode(cfg.Debug)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Vsync)

	logr().Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("bramble: run: %w", err)
	}
	return nil
}
