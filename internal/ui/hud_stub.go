//go:build !ebiten

package ui

import "galaxy-fx/internal/core"

// Status is the playback state shown on the HUD.
type Status struct {
	Frame   int
	Changes int
	Loops   int
	Paused  bool
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(string, core.ParameterSnapshot, int) *HUD { return nil }

// Width returns zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int, Status) {}
