// Package imageio fetches, fits and encodes the images exchanged with the
// inpainting service.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
)

// ErrNotImage is returned when downloaded content does not sniff as an image.
var ErrNotImage = errors.New("imageio: content is not an image")

// FormatFromPath picks the encoder from a file extension. An empty or "-"
// path means PNG.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case "", PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Fit resizes img to exactly w x h.
func Fit(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// IsValidURL tests a string to determine if it is a well-structured url.
func IsValidURL(uri string) bool {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Decode sniffs data and decodes it as an image.
func Decode(data []byte) (image.Image, error) {
	// Only the first 512 bytes are used to sniff the content type.
	if ctype := http.DetectContentType(data); !strings.HasPrefix(ctype, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, ctype)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}

// Fetch downloads and decodes the image at uri. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, uri string) (image.Image, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build request for %s: %w", uri, err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download image from %s: %w", uri, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image from %s: status %s", uri, res.Status)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	return Decode(data)
}
