//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"maskpaint/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws the brush outline and an optional preview of the mask layer
// on top of the painting surface.
type Overlay struct {
	showMask bool
	painter  *render.LayerPainter
	tint     color.NRGBA
}

// NewOverlay constructs an overlay for a canvas of size w*h.
func NewOverlay(w, h int) *Overlay {
	return &Overlay{
		painter: render.NewLayerPainter(w, h),
		tint:    color.NRGBA{R: 64, G: 164, B: 223, A: 160},
	}
}

// Update toggles the mask preview with M.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMask = !o.showMask
	}
}

// ShowingMask reports whether the mask preview is on.
func (o *Overlay) ShowingMask() bool { return o.showMask }

// Draw renders the overlay for a canvas placed at (originX, originY). The
// brush outline is drawn only while the cursor is over the canvas.
func (o *Overlay) Draw(screen *ebiten.Image, mask *image.RGBA, originX, originY float64, cursorX, cursorY float64, diameter int, inCanvas bool) {
	if o.showMask {
		o.painter.BlitMask(screen, mask, o.tint, originX, originY)
	}
	if !inCanvas || diameter <= 0 {
		return
	}
	r := float32(diameter) / 2
	cx := float32(originX + cursorX)
	cy := float32(originY + cursorY)
	vector.StrokeCircle(screen, cx, cy, r, 1, color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
	vector.StrokeCircle(screen, cx, cy, r+1, 1, color.RGBA{A: 120}, true)
}
