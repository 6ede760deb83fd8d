package sky

import (
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/detection"
	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// CalculateColorMask classifies sky-coloured pixels of img.
//
// raw is set wherever the pixel's HSV value lies inside cfg.ColorRange.
// filtered keeps only the external regions of raw whose contour area is
// strictly greater than cfg.MinRegionArea, each filled solid including any
// holes it encloses. Smaller regions are dropped entirely.
func CalculateColorMask(img *image.RGBA, cfg Config) (raw, filtered *image.Gray) {
	raw = imaging.ThresholdHSV(img, cfg.ColorRange)
	filtered = FilterRegions(raw, cfg.MinRegionArea)
	return raw, filtered
}

// FilterRegions returns a mask containing the filled external regions of
// mask whose area exceeds minArea.
func FilterRegions(mask *image.Gray, minArea float64) *image.Gray {
	b := mask.Bounds()
	out := imaging.NewMask(b.Dx(), b.Dy())

	contours := detection.FindExternalContours(mask)
	for i, c := range contours.Contours {
		if c.Area() > minArea {
			contours.DrawFilled(out, i)
		}
	}
	return out
}
