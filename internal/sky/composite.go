package sky

import (
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// ApplyMask returns a copy of img keeping pixels where mask is set and
// painting every other pixel opaque black.
func ApplyMask(img *image.RGBA, mask *image.Gray) *image.RGBA {
	return imaging.MaskedCopy(img, mask)
}

// ReplicateMask expands a single-channel mask to an opaque colour raster with
// R=G=B equal to the mask value.
func ReplicateMask(mask *image.Gray) *image.RGBA {
	return imaging.ReplicateGray(mask)
}

// SkyFraction returns the share of set pixels in mask, in [0,1].
func SkyFraction(mask *image.Gray) float64 {
	b := mask.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	return float64(imaging.CountSet(mask)) / float64(total)
}
