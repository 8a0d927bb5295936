package render

import (
	"image"
	"image/color"
)

// copyRGBA packs img row by row into buf, which must hold 4*w*h bytes. Both
// sides are alpha-premultiplied, so the bytes can be uploaded unchanged.
func copyRGBA(buf []byte, img *image.RGBA) {
	b := img.Bounds()
	row := 4 * b.Dx()
	if img.Stride == row && len(img.Pix) >= row*b.Dy() {
		copy(buf, img.Pix[:row*b.Dy()])
		return
	}
	for y := 0; y < b.Dy(); y++ {
		si := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(buf[y*row:(y+1)*row], img.Pix[si:si+row])
	}
}

// fillMaskRGBA tints a white-on-black mask into premultiplied RGBA pixels in
// buf. The red channel of the mask is used as coverage and scaled by the tint
// alpha; black areas become fully transparent.
func fillMaskRGBA(buf []byte, mask *image.RGBA, tint color.NRGBA) {
	b := mask.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		si := mask.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			cov := uint32(mask.Pix[si+4*x])
			a := cov * uint32(tint.A) / 0xff
			base := (y*w + x) * 4
			buf[base+0] = uint8(uint32(tint.R) * a / 0xff)
			buf[base+1] = uint8(uint32(tint.G) * a / 0xff)
			buf[base+2] = uint8(uint32(tint.B) * a / 0xff)
			buf[base+3] = uint8(a)
		}
	}
}
