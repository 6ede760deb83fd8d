// Package detection finds and measures connected regions in binary masks.
//
// The central operation is FindExternalContours, which returns the outer
// boundary of every outermost 8-connected foreground region of a mask,
// together with enough bookkeeping to redraw each region filled or as a
// one-pixel outline.
//
// # Algorithm Overview
//
//  1. Hole detection: background pixels are flood-filled (4-connected) from
//     the image border. Background that the fill cannot reach is enclosed by
//     foreground and belongs to the region around it.
//  2. Region labelling: foreground plus enclosed background is labelled by
//     8-connected flood fill in raster order. Regions nested inside holes of
//     another region merge into the outer one, so only outermost regions are
//     reported.
//  3. Border following: each region's outer border is traced from its first
//     raster-order pixel (Suzuki-Abe outer border following). Every boundary
//     pixel is emitted, with no compression of straight runs.
//
// # Measurements
//
//   - Area is the shoelace area of the polygon through the traced pixel
//     centres, so a filled w×h rectangle measures (w-1)×(h-1).
//   - ArcLength sums the Euclidean steps between consecutive points. The open
//     variant omits the segment from the last point back to the first.
//   - Simplify compresses straight runs to their end points. Closed lengths
//     and areas are unchanged, but the open length of a simplified contour
//     drops the whole final run: a w×h rectangle measures 2(h-1)+(w-1)
//     instead of 2(w-1)+2(h-1)-1.
//
// # Coordinate System
//
// Masks are expected with their origin at (0,0); contour points are column
// (X) and row (Y) indices with Y increasing downward.
package detection
