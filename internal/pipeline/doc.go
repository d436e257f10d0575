// Package pipeline runs the object-property pipeline on a single image:
// grayscale conversion, optional box blur, Canny edge detection, external
// contour extraction and per-contour measurement.
//
// The edge and contour stages are served by a Detector. The native detector
// is pure Go and always available. The OpenCV detector wraps gocv and is
// compiled in only with the gocv build tag:
//
//	go build -tags gocv ./...
//
// Without the tag, requesting it returns ErrBackendUnavailable.
//
// # Laplacian Edges
//
// LaplacianEdges is the second, independent pipeline used by contour-edges:
// 3x3 median blur, grayscale, absolute 3x3 Laplacian and an inverted binary
// threshold, yielding dark edges on a white background.
package pipeline
