//go:build gocv

package pipeline

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"

	"github.com/ironsheep/contour-tools/internal/detection"
	"github.com/ironsheep/contour-tools/internal/imaging"
)

// openCVDetector runs the edge and contour stages through OpenCV.
type openCVDetector struct{}

func newOpenCVDetector() (Detector, error) {
	return openCVDetector{}, nil
}

func (openCVDetector) Name() string { return BackendOpenCV }

func (openCVDetector) Edges(gray *image.Gray, low, high float64) (*image.Gray, error) {
	src, err := toMat(gray)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if low < 0 || high < low {
		return nil, fmt.Errorf("%w: low=%g high=%g", imaging.ErrInvalidThreshold, low, high)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(src, &edges, float32(low), float32(high))

	out, err := edges.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert edge map: %w", err)
	}
	return imaging.ToGray(out)
}

func (openCVDetector) Contours(edges *image.Gray) ([]detection.Contour, error) {
	src, err := toMat(edges)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	found := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]detection.Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		c := make(detection.Contour, len(pts))
		for j, p := range pts {
			c[j] = detection.Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, c)
	}

	// OpenCV reports contours bottom-up; keep raster order of the first point.
	sortRaster(contours)
	return contours, nil
}

// toMat copies gray into a single-channel Mat. The caller closes it.
func toMat(gray *image.Gray) (gocv.Mat, error) {
	normalized, err := imaging.ToGray(gray)
	if err != nil {
		return gocv.Mat{}, err
	}
	mat, err := gocv.ImageGrayToMatGray(normalized)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create mat: %w", err)
	}
	return mat, nil
}

// sortRaster orders contours by their first point, top-most then left-most.
func sortRaster(contours []detection.Contour) {
	sort.SliceStable(contours, func(i, j int) bool {
		a, b := contours[i][0], contours[j][0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
