//go:build gocv
// +build gocv

package skycv

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
	"github.com/ironsheep/sky-detect-mcp/internal/sky"
)

// Enabled reports whether the binary was built with OpenCV support.
const Enabled = true

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Detector runs the sky pipeline with OpenCV operators.
type Detector struct {
	cfg sky.Config
}

// New creates an OpenCV engine after validating cfg.
func New(cfg sky.Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid opencv engine config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect runs the full pipeline on img.
func (d *Detector) Detect(img image.Image) (*sky.Result, error) {
	rgba, err := sky.Normalize(img)
	if err != nil {
		return nil, err
	}

	// ImageToMatRGB stores channels in BGR order
	src, err := gocv.ImageToMatRGB(rgba)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer src.Close()

	res := &sky.Result{Input: rgba}

	colorMask, filtered := d.colorMask(src)
	defer colorMask.Close()
	defer filtered.Close()

	edges, dilated := d.edges(src)
	defer edges.Close()
	defer dilated.Close()

	skylineEdges := d.removeShortEdges(dilated)
	defer skylineEdges.Close()

	res.ColorMask = matToGray(colorMask)
	res.FilteredColorMask = matToGray(filtered)
	res.Edges = matToGray(edges)
	res.DilatedEdges = matToGray(dilated)
	res.SkylineEdges = matToGray(skylineEdges)
	res.Skyline = sky.FindUppermostPixels(res.SkylineEdges)
	res.SkyMask = sky.SkylineMask(res.Skyline, src.Rows())

	skyMat, err := grayToMat(res.SkyMask)
	if err != nil {
		return nil, err
	}
	defer skyMat.Close()

	segmented := zeros(src.Rows(), src.Cols(), gocv.MatTypeCV8UC3)
	defer segmented.Close()
	src.CopyToWithMask(&segmented, skyMat)
	res.Segmented = bgrMatToRGBA(segmented)

	return res, nil
}

func (d *Detector) colorMask(src gocv.Mat) (raw, filtered gocv.Mat) {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	lo, hi := d.cfg.ColorRange.Lower, d.cfg.ColorRange.Upper
	raw = gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(lo.H), float64(lo.S), float64(lo.V), 0),
		gocv.NewScalar(float64(hi.H), float64(hi.S), float64(hi.V), 0),
		&raw)

	contours := gocv.FindContours(raw, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	filtered = zeros(raw.Rows(), raw.Cols(), gocv.MatTypeCV8U)
	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) > d.cfg.MinRegionArea {
			gocv.DrawContours(&filtered, contours, i, white, -1)
		}
	}
	return raw, filtered
}

func (d *Detector) edges(src gocv.Mat) (edges, dilated gocv.Mat) {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	openKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: d.cfg.OpenKernel, Y: d.cfg.OpenKernel})
	defer openKernel.Close()
	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(gray, &opened, gocv.MorphOpen, openKernel)

	edges = gocv.NewMat()
	gocv.Canny(opened, &edges, float32(d.cfg.CannyLow), float32(d.cfg.CannyHigh))

	dilateKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: d.cfg.DilateKernel, Y: d.cfg.DilateKernel})
	defer dilateKernel.Close()
	dilated = edges.Clone()
	for i := 0; i < d.cfg.DilateIterations; i++ {
		next := gocv.NewMat()
		gocv.Dilate(dilated, &next, dilateKernel)
		dilated.Close()
		dilated = next
	}
	return edges, dilated
}

func (d *Detector) removeShortEdges(edges gocv.Mat) gocv.Mat {
	// Simple chains drop the straight run back to the first point from the
	// open length
	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	outlines := zeros(edges.Rows(), edges.Cols(), gocv.MatTypeCV8U)
	defer outlines.Close()
	for i := 0; i < contours.Size(); i++ {
		if gocv.ArcLength(contours.At(i), false) > d.cfg.MinEdgeLength {
			gocv.DrawContours(&outlines, contours, i, white, 1)
		}
	}

	filtered := gocv.NewMat()
	gocv.BitwiseAnd(edges, outlines, &filtered)
	return filtered
}

func zeros(rows, cols int, mt gocv.MatType) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, mt)
}

// matToGray copies a single-channel 8-bit mat into an *image.Gray.
func matToGray(m gocv.Mat) *image.Gray {
	rows, cols := m.Rows(), m.Cols()
	g := imaging.NewMask(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.Pix[y*g.Stride+x] = m.GetUCharAt(y, x)
		}
	}
	return g
}

func grayToMat(g *image.Gray) (gocv.Mat, error) {
	b := g.Bounds()
	plane := imaging.CloneGray(g)
	m, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8U, plane.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert mask to mat: %w", err)
	}
	return m, nil
}

// bgrMatToRGBA copies a 3-channel BGR mat into an opaque *image.RGBA.
func bgrMatToRGBA(m gocv.Mat) *image.RGBA {
	rows, cols := m.Rows(), m.Cols()
	out := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := m.GetVecbAt(y, x)
			i := out.PixOffset(x, y)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v[2], v[1], v[0], 0xff
		}
	}
	return out
}
