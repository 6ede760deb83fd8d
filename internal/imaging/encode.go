package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is a raster encoded as base64 PNG for transport in JSON.
type EncodedImage struct {
	// Label identifies the raster (e.g. "sky mask").
	Label string `json:"label,omitempty"`

	// Width of the encoded image in pixels. Smaller than the source when a
	// preview size limit was applied.
	Width int `json:"width"`

	// Height of the encoded image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the PNG data encoded as standard base64.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
//
// When maxDimension is positive and either side of img exceeds it, the image
// is scaled down (preserving aspect ratio) to fit a maxDimension square
// before encoding. Nearest-neighbour filtering keeps binary masks binary.
func EncodePNG(label string, img image.Image, maxDimension int) (*EncodedImage, error) {
	out := img
	b := img.Bounds()
	if maxDimension > 0 && (b.Dx() > maxDimension || b.Dy() > maxDimension) {
		out = imaging.Fit(img, maxDimension, maxDimension, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", label, err)
	}

	return &EncodedImage{
		Label:       label,
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
