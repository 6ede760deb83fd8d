package sky

import (
	"fmt"
	"image"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/rs/zerolog"
)

// Engine runs sky detection on a decoded image.
type Engine interface {
	Detect(img image.Image) (*Result, error)
}

// Result holds every intermediate of one detection.
//
// All rasters have the input's dimensions and their origin at (0,0).
type Result struct {
	// Input is the normalised colour copy of the image that was analysed.
	Input *image.RGBA

	// ColorMask is the raw HSV classification.
	ColorMask *image.Gray

	// FilteredColorMask holds the large colour regions, filled.
	FilteredColorMask *image.Gray

	// Edges is the Canny output before dilation.
	Edges *image.Gray

	// DilatedEdges is Edges after dilation.
	DilatedEdges *image.Gray

	// SkylineEdges is DilatedEdges restricted to long contour outlines.
	SkylineEdges *image.Gray

	// Skyline is the per-column profile of SkylineEdges.
	Skyline []int

	// SkyMask is set above the skyline in every column.
	SkyMask *image.Gray

	// Segmented is Input with everything outside SkyMask painted black.
	Segmented *image.RGBA
}

// Output is one display raster of a Result.
type Output struct {
	Label string
	Image *image.RGBA
}

// Output labels, in display order.
const (
	LabelColorMask     = "color mask"
	LabelFilterMask    = "filter mask"
	LabelEdge          = "edge"
	LabelSkyLine       = "sky line"
	LabelSkyMask       = "sky mask"
	LabelSkyIdentified = "Sky Identified"
)

// Outputs returns the six display rasters, all three-channel, in fixed
// order: raw colour mask, filtered colour mask, raw edges, skyline edges,
// sky mask and the segmented image.
func (r *Result) Outputs() []Output {
	return []Output{
		{Label: LabelColorMask, Image: ReplicateMask(r.ColorMask)},
		{Label: LabelFilterMask, Image: ReplicateMask(r.FilteredColorMask)},
		{Label: LabelEdge, Image: ReplicateMask(r.Edges)},
		{Label: LabelSkyLine, Image: ReplicateMask(r.SkylineEdges)},
		{Label: LabelSkyMask, Image: ReplicateMask(r.SkyMask)},
		{Label: LabelSkyIdentified, Image: r.Segmented},
	}
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Detector) {
		d.log = logger
	}
}

// Detector is the pure-Go detection engine.
type Detector struct {
	cfg Config
	log zerolog.Logger
}

// New creates a Detector after validating cfg.
func New(cfg Config, opts ...Option) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sky detector config: %w", err)
	}
	d := &Detector{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With().Str("component", "sky").Logger()
	return d, nil
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs the full pipeline on img.
//
// It returns an *InvalidInputError for nil, empty or single-channel images.
// Detect never modifies img and is deterministic.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	rgba, err := Normalize(img)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	stage := start
	lap := func(name string) {
		now := time.Now()
		d.log.Debug().Str("stage", name).Dur("elapsed", now.Sub(stage)).Msg("stage complete")
		stage = now
	}

	res := &Result{Input: rgba}

	res.ColorMask, res.FilteredColorMask = CalculateColorMask(rgba, d.cfg)
	lap("color_mask")

	res.Edges, res.DilatedEdges = ExtractEdges(rgba, d.cfg)
	lap("edges")

	res.SkylineEdges = RemoveShortEdges(res.DilatedEdges, d.cfg.MinEdgeLength)
	lap("edge_filter")

	res.Skyline = FindUppermostPixels(res.SkylineEdges)
	res.SkyMask = SkylineMask(res.Skyline, rgba.Rect.Dy())
	lap("sky_mask")

	res.Segmented = ApplyMask(rgba, res.SkyMask)
	lap("composite")

	d.log.Debug().
		Int("width", rgba.Rect.Dx()).
		Int("height", rgba.Rect.Dy()).
		Float64("sky_fraction", SkyFraction(res.SkyMask)).
		Dur("total", time.Since(start)).
		Msg("detection complete")

	return res, nil
}

// Detect runs the pipeline with the default configuration.
func Detect(img image.Image) (*Result, error) {
	d, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return d.Detect(img)
}

// Normalize validates img and returns an RGBA copy of it with its origin at
// (0,0). Alpha is not interpreted: translucent pixels keep their
// premultiplied colour.
func Normalize(img image.Image) (*image.RGBA, error) {
	if err := ValidateImage(img); err != nil {
		return nil, err
	}
	rgba := clone.AsRGBA(img)
	if rgba.Rect.Min != (image.Point{}) {
		rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	}
	return rgba, nil
}
