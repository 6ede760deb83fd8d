package sky

import (
	"fmt"
	"image"
	"reflect"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// InvalidInputError reports an image the detector cannot process.
// No outputs are produced for such an image.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input image: " + e.Reason
}

// ValidateImage checks that img is a non-empty colour image.
// Single-channel images are rejected rather than silently replicated.
func ValidateImage(img image.Image) error {
	if isNil(img) {
		return &InvalidInputError{Reason: "image is nil"}
	}
	if n := imaging.Channels(img); n != 3 {
		return &InvalidInputError{Reason: fmt.Sprintf("image has %d channel(s), expected 3", n)}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return &InvalidInputError{Reason: fmt.Sprintf("image has zero size %dx%d", b.Dx(), b.Dy())}
	}
	return nil
}

// isNil reports whether img is nil or a typed nil of any pointer-like type.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
