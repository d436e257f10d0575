// Package detection extracts object contours from binary edge maps and
// measures them.
//
// # Contours
//
// FindContours follows the outer border of every 8-connected foreground region
// of an edge map and returns it as an ordered point sequence. Only external
// borders are reported: holes, and regions sitting inside another region's
// hole, are skipped. Straight horizontal, vertical and diagonal runs are
// compressed to their end points, so a filled axis-aligned rectangle yields
// exactly its four corners.
//
// Contours are returned in raster-scan order of their first pixel (top-most,
// then left-most).
//
// # Object Properties
//
// ComputeProperties turns each contour into an ObjectProperties record:
//
//   - Centroid from the polygon's spatial moments
//   - Aspect ratio and extent from the bounding box
//   - Solidity from the convex hull
//   - Equivalent diameter, the diameter of the circle with the same area
//   - Orientation of the moment-equivalent ellipse (5 points or more)
//   - Mean intensity of the source image over the filled contour
//
// Contours enclosing zero area are skipped, and every ratio is guarded so no
// computation divides by zero.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// The bounding box width and height are the extents of the contour polygon
// (maxX - minX, maxY - minY), so that area, extent and aspect ratio all refer
// to the same polygon.
package detection
