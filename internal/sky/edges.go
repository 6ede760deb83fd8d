package sky

import (
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// ExtractEdges finds intensity edges of img.
//
// The luminance image is opened with a cfg.OpenKernel square element to
// suppress small bright details, then passed to Canny with the configured
// thresholds. edges is the raw Canny output; dilated is edges grown by a
// cfg.DilateKernel square element cfg.DilateIterations times.
func ExtractEdges(img *image.RGBA, cfg Config) (edges, dilated *image.Gray) {
	gray := imaging.Grayscale(img)
	opened := imaging.Open(gray, cfg.OpenKernel)
	edges = imaging.Canny(opened, cfg.CannyLow, cfg.CannyHigh)
	dilated = imaging.Dilate(edges, cfg.DilateKernel, cfg.DilateIterations)
	return edges, dilated
}
