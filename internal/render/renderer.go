//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// LayerPainter uploads a raster layer into an ebiten image and draws it.
type LayerPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewLayerPainter allocates a painter for a layer of size w*h.
func NewLayerPainter(w, h int) *LayerPainter {
	lp := &LayerPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	lp.img = ebiten.NewImage(w, h)
	return lp
}

// Blit uploads src unchanged and draws it at (x, y).
func (lp *LayerPainter) Blit(dst *ebiten.Image, src *image.RGBA, x, y float64) {
	if !lp.fits(src) {
		return
	}
	copyRGBA(lp.buf, src)
	lp.draw(dst, x, y)
}

// BlitMask draws a tinted preview of a white-on-black mask at (x, y).
func (lp *LayerPainter) BlitMask(dst *ebiten.Image, mask *image.RGBA, tint color.NRGBA, x, y float64) {
	if !lp.fits(mask) {
		return
	}
	fillMaskRGBA(lp.buf, mask, tint)
	lp.draw(dst, x, y)
}

// Redraw draws the last uploaded layer again at (x, y).
func (lp *LayerPainter) Redraw(dst *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(lp.img, op)
}

func (lp *LayerPainter) fits(src *image.RGBA) bool {
	return src != nil && src.Bounds().Dx() == lp.w && src.Bounds().Dy() == lp.h
}

func (lp *LayerPainter) draw(dst *ebiten.Image, x, y float64) {
	lp.img.WritePixels(lp.buf)
	lp.Redraw(dst, x, y)
}

// Size returns the dimensions of the underlying image.
func (lp *LayerPainter) Size() (int, int) { return lp.w, lp.h }
