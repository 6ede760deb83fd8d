package sky

import (
	"fmt"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// Config holds the tuning constants of the detection pipeline.
type Config struct {
	// ColorRange is the closed HSV range classified as sky-coloured.
	ColorRange imaging.HSVRange `json:"color_range"`

	// MinRegionArea is the contour area a colour region must exceed to be
	// kept in the filtered colour mask.
	MinRegionArea float64 `json:"min_region_area"`

	// CannyLow and CannyHigh are the hysteresis thresholds of the edge
	// detector.
	CannyLow  float64 `json:"canny_low"`
	CannyHigh float64 `json:"canny_high"`

	// OpenKernel is the side of the square element used to open the
	// intensity image before edge detection.
	OpenKernel int `json:"open_kernel"`

	// DilateKernel and DilateIterations control the dilation that joins
	// edge fragments.
	DilateKernel     int `json:"dilate_kernel"`
	DilateIterations int `json:"dilate_iterations"`

	// MinEdgeLength is the open arc length an edge contour must exceed to
	// count as part of the skyline.
	MinEdgeLength float64 `json:"min_edge_length"`
}

// Default tuning values.
const (
	DefaultMinRegionArea    = 50000
	DefaultCannyLow         = 60
	DefaultCannyHigh        = 180
	DefaultOpenKernel       = 5
	DefaultDilateKernel     = 3
	DefaultDilateIterations = 10
	DefaultMinEdgeLength    = 2000
)

// DefaultColorRange is the sky-blue HSV range (half-scale hue).
var DefaultColorRange = imaging.HSVRange{
	Lower: imaging.HSVColor{H: 70, S: 60, V: 60},
	Upper: imaging.HSVColor{H: 160, S: 255, V: 255},
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		ColorRange:       DefaultColorRange,
		MinRegionArea:    DefaultMinRegionArea,
		CannyLow:         DefaultCannyLow,
		CannyHigh:        DefaultCannyHigh,
		OpenKernel:       DefaultOpenKernel,
		DilateKernel:     DefaultDilateKernel,
		DilateIterations: DefaultDilateIterations,
		MinEdgeLength:    DefaultMinEdgeLength,
	}
}

// Validate checks that the configuration describes a runnable pipeline.
func (c Config) Validate() error {
	lo, hi := c.ColorRange.Lower, c.ColorRange.Upper
	if lo.H > hi.H || lo.S > hi.S || lo.V > hi.V {
		return fmt.Errorf("color range lower bound %v exceeds upper bound %v", lo, hi)
	}
	if c.MinRegionArea < 0 {
		return fmt.Errorf("min region area must be non-negative, got %v", c.MinRegionArea)
	}
	if c.CannyLow < 0 || c.CannyHigh < 0 {
		return fmt.Errorf("canny thresholds must be non-negative, got %v/%v", c.CannyLow, c.CannyHigh)
	}
	if c.CannyLow > c.CannyHigh {
		return fmt.Errorf("canny low threshold %v exceeds high threshold %v", c.CannyLow, c.CannyHigh)
	}
	if c.OpenKernel < 1 {
		return fmt.Errorf("open kernel must be at least 1, got %d", c.OpenKernel)
	}
	if c.DilateKernel < 1 {
		return fmt.Errorf("dilate kernel must be at least 1, got %d", c.DilateKernel)
	}
	if c.DilateIterations < 0 {
		return fmt.Errorf("dilate iterations must be non-negative, got %d", c.DilateIterations)
	}
	if c.MinEdgeLength < 0 {
		return fmt.Errorf("min edge length must be non-negative, got %v", c.MinEdgeLength)
	}
	return nil
}
