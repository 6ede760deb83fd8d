// Package imaging provides the low-level raster operations used by the sky
// detector and the MCP server.
//
// The package works on standard Go image types. Colour rasters are
// *image.RGBA and single-channel rasters (grayscale intensity and binary
// masks) are *image.Gray. Every raster created here has its origin at (0,0),
// so pixel (x, y) lives at Pix[y*Stride+x*channels].
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X (column) increases rightward
//   - Y (row) increases downward
//
// # Masks
//
// A mask is an *image.Gray holding 0 (clear) or 255 (set). Membership is
// always tested with IsSet, which compares against MaskThreshold instead of
// testing for equality with 255. Mask helpers never modify their inputs.
//
// # Colour Conversions
//
//   - HSV uses the 8-bit, half-scale hue convention: H in [0,180), S and V in
//     [0,255]. Conversion goes through go-colorful.
//   - Luminance uses ITU-R BT.601 weights in 14-bit fixed point
//     (0.299*R + 0.587*G + 0.114*B, rounded).
//
// # Edge Detection and Morphology
//
// Canny operates on unnormalised Sobel responses with an L1 magnitude, so
// thresholds are on the same scale as in most computer vision toolkits
// (typical values 50-200). Erosion and dilation use rectangular structuring
// elements and ignore samples that fall outside the image.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and allocate their outputs, so they can be called concurrently
// on different (or the same, unmodified) images.
package imaging
