//go:build !gocv
// +build !gocv

package skycv

import (
	"fmt"
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/sky"
)

// Enabled reports whether the binary was built with OpenCV support.
const Enabled = false

// Detector is a placeholder for the OpenCV engine.
type Detector struct {
	cfg sky.Config
}

// New validates cfg and returns an engine that cannot run.
func New(cfg sky.Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid opencv engine config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect always fails with ErrUnavailable.
func (d *Detector) Detect(image.Image) (*sky.Result, error) {
	return nil, ErrUnavailable
}
