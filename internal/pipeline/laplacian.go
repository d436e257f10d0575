package pipeline

import (
	"fmt"
	"image"

	"github.com/ironsheep/contour-tools/internal/imaging"
)

// DefaultLaplaceThreshold is the default cut-off for LaplacianEdges.
const DefaultLaplaceThreshold = 50

// LaplacianEdges returns an inverted binary edge image of img: pixels whose
// absolute Laplacian response exceeds threshold are 0, all others 255.
func LaplacianEdges(img image.Image, threshold int) (*image.Gray, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("%w: %d (want 0-255)", imaging.ErrInvalidThreshold, threshold)
	}

	smoothed, err := imaging.MedianBlur(img, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to median blur: %w", err)
	}

	gray, err := imaging.ToGray(smoothed)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}

	laplace, err := imaging.Laplacian(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to compute laplacian: %w", err)
	}

	return imaging.ThresholdInv(laplace, threshold)
}
