package sky

import (
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/detection"
	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// RemoveShortEdges keeps the long edges of an edge mask.
//
// Every external contour of edges whose open arc length is strictly greater
// than minLength is drawn as a one-pixel outline; the outlines are then
// intersected with edges. The result is always a subset of edges.
//
// Length is measured over the simplified contour, so the final straight run
// back to the starting pixel is not counted. For a band spanning the image
// that run is its whole top edge.
func RemoveShortEdges(edges *image.Gray, minLength float64) *image.Gray {
	b := edges.Bounds()
	outlines := imaging.NewMask(b.Dx(), b.Dy())

	contours := detection.FindExternalContours(edges)
	for i, c := range contours.Contours {
		if c.Simplify().ArcLength(false) > minLength {
			contours.DrawOutline(outlines, i)
		}
	}
	return imaging.BitwiseAnd(edges, outlines)
}
