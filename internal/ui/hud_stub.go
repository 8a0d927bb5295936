//go:build !ebiten

package ui

import "context"

// HUD is a no-op placeholder for headless builds.
type HUD struct {
	OnSave func() error
}

// NewHUD returns nil in the headless build.
func NewHUD(context.Context, BrushTarget, Generator, int, int) *HUD { return nil }

// Editing always reports false in the headless build.
func (h *HUD) Editing() bool { return false }

// Notify is a no-op in the headless build.
func (h *HUD) Notify(string) {}

// SetLoading is a no-op in the headless build.
func (h *HUD) SetLoading(bool) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int) {}
