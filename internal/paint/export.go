package paint

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"

	"maskpaint/internal/imageio"
)

// ErrUninitialized is returned when exporting from a Surface that was not
// created with New.
var ErrUninitialized = errors.New("paint: surface is not initialized")

// EncodeMask writes the mask layer to w.
func (s *Surface) EncodeMask(w io.Writer, format imageio.Format) error {
	if s == nil || s.mask.img == nil {
		return ErrUninitialized
	}
	return imageio.Encode(w, s.mask.img, format)
}

// ExportMaskAsImage returns the mask layer as PNG bytes, or nil when the
// surface is not initialized.
func (s *Surface) ExportMaskAsImage() []byte {
	var buf bytes.Buffer
	if err := s.EncodeMask(&buf, imageio.PNG); err != nil {
		return nil
	}
	return buf.Bytes()
}

// MaskDataURL returns the PNG mask as a data URL, or "" when the surface is
// not initialized.
func (s *Surface) MaskDataURL() string {
	data := s.ExportMaskAsImage()
	if data == nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
