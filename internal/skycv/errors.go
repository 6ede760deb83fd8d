package skycv

import "errors"

// ErrUnavailable is returned by Detect when OpenCV support is not compiled in.
var ErrUnavailable = errors.New("opencv engine unavailable: gocv build tag is not enabled")
