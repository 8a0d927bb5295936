package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"os"

	"maskpaint/internal/imageio"
)

// LoadSource reads the image painted over, from a url or a local file, and
// fits it to the canvas.
func LoadSource(ctx context.Context, hc *http.Client, src string, w, h int) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	if imageio.IsValidURL(src) {
		img, err = imageio.Fetch(ctx, hc, src)
	} else {
		var data []byte
		data, err = os.ReadFile(src)
		if err == nil {
			img, err = imageio.Decode(data)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load source %s: %w", src, err)
	}
	return imageio.Fit(img, w, h), nil
}

// SourceURL is the form of the source image sent to the service: urls are
// passed through, local files are inlined as a PNG data url.
func SourceURL(src string, img image.Image) (string, error) {
	if imageio.IsValidURL(src) {
		return src, nil
	}
	if img == nil {
		return "", fmt.Errorf("no source image for %s", src)
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.PNG); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
