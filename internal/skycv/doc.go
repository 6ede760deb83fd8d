// Package skycv runs the sky detection pipeline on OpenCV through gocv.
//
// The engine mirrors sky.Detector stage for stage: InRange for the colour
// threshold, FindContours with ContourArea and ArcLength for region and edge
// filtering, MorphologyEx, Canny and Dilate for edge extraction, and
// CopyToWithMask for compositing. The skyline profile and sky mask are built
// with the sky package helpers, so only the image operators differ. Results
// can be compared pixel for pixel with the pure-Go engine.
//
// OpenCV is only linked when building with the gocv tag:
//
//	go build -tags gocv ./...
//
// Without the tag, New still succeeds but Detect returns ErrUnavailable.
package skycv
