// Package sky detects the sky region of a photograph.
//
// Detection combines two independent estimates:
//
//   - A colour estimate: pixels whose 8-bit HSV value falls inside a
//     sky-blue range, and the large connected regions among them.
//   - A skyline estimate: long edges of the intensity image, reduced to the
//     topmost edge row of every column. Everything above that row is sky.
//
// Only the skyline estimate feeds the final sky mask. The colour masks are
// diagnostic outputs reported next to it and are never merged into it.
//
// # Pipeline
//
//  1. CalculateColorMask: HSV threshold, then keep regions with area above
//     Config.MinRegionArea, filled solid.
//  2. ExtractEdges: luminance, opening, Canny, then dilation.
//  3. RemoveShortEdges: keep the outlines of dilated edge regions whose open
//     arc length, over the simplified contour, exceeds Config.MinEdgeLength,
//     restricted to edge pixels.
//  4. FindUppermostPixels: the skyline profile of the filtered edges.
//  5. CreateSkylineMask: rows above the profile are set in every column.
//  6. ApplyMask: the input image restricted to the sky mask.
//
// Detector runs all six stages and returns a Result whose Outputs method
// yields the six display rasters in their fixed order.
//
// # Limitations
//
// The sky mask has exactly one sky/ground transition per column. Sky that
// reappears below a foreground object in the same column (under a bridge,
// between branches) is reported as ground.
//
// With the default configuration a straight horizon's dilated band measures
// about its width plus 40, so on images narrower than 1962 columns a flat
// horizon is not long enough and the whole image is reported as sky.
//
// # Thread Safety
//
// Every function allocates its own outputs and never writes to its inputs.
// A Detector holds only its configuration and logger and can be shared by
// concurrent callers.
package sky
