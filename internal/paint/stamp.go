package paint

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498307936

// fillCircle composites a filled, anti-aliased circle onto the layer. Only the
// circle's bounding box is rasterized.
func (l *layer) fillCircle(z *vector.Rasterizer, cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	).Intersect(l.img.Bounds())
	if box.Empty() {
		return
	}
	z.Reset(box.Dx(), box.Dy())
	traceCircle(z, float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y)), float32(radius))
	z.Draw(l.img, box, l.src, image.Point{})
}

func traceCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := float32(kappa) * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
