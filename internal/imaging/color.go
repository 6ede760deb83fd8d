package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor is an 8-bit HSV triple using the half-scale hue convention.
//
// The ranges are:
//   - H: 0-179 (degrees divided by two, so 120 = blue at 240°)
//   - S: 0-255 (0 = gray, 255 = fully saturated)
//   - V: 0-255 (0 = black, 255 = brightest)
type HSVColor struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
	V uint8 `json:"v"`
}

// HSVRange is a closed interval per channel in 8-bit HSV space.
type HSVRange struct {
	Lower HSVColor `json:"lower"`
	Upper HSVColor `json:"upper"`
}

// Contains reports whether every channel of c lies within the closed range.
func (r HSVRange) Contains(c HSVColor) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// ColorResult contains the value of one pixel in the representations the
// sky detector reasons about.
type ColorResult struct {
	Hex       string   `json:"hex"`       // Hex format "#RRGGBB" (no alpha)
	RGB       RGBColor `json:"rgb"`       // RGB components
	HSV       HSVColor `json:"hsv"`       // 8-bit half-scale HSV
	Luminance uint8    `json:"luminance"` // BT.601 intensity fed to edge detection
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are absolute (they are checked against img.Bounds()). For
// 16-bit images the components are reduced to 8 bits by a right shift.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	return &ColorResult{
		Hex:       fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:       RGBColor{R: r8, G: g8, B: b8},
		HSV:       ToHSV(r8, g8, b8),
		Luminance: Luminance(r8, g8, b8),
	}, nil
}

// ToHSV converts 8-bit RGB components to 8-bit half-scale HSV.
//
// Hue in degrees is halved and rounded; a result of 180 wraps to 0.
// Saturation and value are scaled from [0,1] to [0,255] and rounded.
func ToHSV(r, g, b uint8) HSVColor {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := c.Hsv()

	hue := int(math.Round(h / 2))
	if hue >= 180 {
		hue -= 180
	}
	return HSVColor{
		H: uint8(hue),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// BT.601 luminance weights scaled by 2^14.
const (
	lumaShift = 14
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
)

// Luminance returns the BT.601 intensity of an 8-bit RGB triple.
func Luminance(r, g, b uint8) uint8 {
	y := (uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB + 1<<(lumaShift-1)) >> lumaShift
	return uint8(y)
}

// Grayscale converts a colour raster to a single-channel intensity raster
// of the same size, with its origin at (0,0).
//
// Channels are weighted in RGB order. A BGR conversion applied to RGB data
// swaps the red and blue weights, so intensities differ from such output on
// strongly red or blue scenes.
func Grayscale(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			p := src[x*4 : x*4+3 : x*4+3]
			dst[x] = Luminance(p[0], p[1], p[2])
		}
	}
	return gray
}

// ThresholdHSV classifies every pixel of img by r and returns a mask with
// the matching pixels set.
func ThresholdHSV(img *image.RGBA, r HSVRange) *image.Gray {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	mask := NewMask(width, height)

	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range dst {
			p := src[x*4 : x*4+3 : x*4+3]
			if r.Contains(ToHSV(p[0], p[1], p[2])) {
				dst[x] = MaskOn
			}
		}
	}
	return mask
}
