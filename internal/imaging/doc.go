// Package imaging provides the raster stages of the contour pipeline.
//
// This package loads and saves images, converts them to a single 8-bit
// luminance channel, applies the smoothing filters used before edge detection
// (box blur, median blur), and produces binary edge maps with either the Canny
// detector or a thresholded Laplacian. Crop cuts object regions out of the
// source image for display.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Every derived image (grayscale, blurred, edge map) is a new *image.Gray whose
// bounds start at (0,0), regardless of the bounds of the source image. Inputs
// are never modified.
//
// # Edge Maps
//
// Edge maps are *image.Gray values holding only 0 (background) and 255 (edge).
// They feed directly into detection.FindContours.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - nil or zero-sized images (ErrEmptyImage)
//   - negative or inverted hysteresis thresholds (ErrInvalidThreshold)
//   - file I/O errors during loading and saving
//   - encoding errors during image output
package imaging
