//go:build !gocv

package pipeline

import "fmt"

func newOpenCVDetector() (Detector, error) {
	return nil, fmt.Errorf("%w: %s (build with -tags gocv)", ErrBackendUnavailable, BackendOpenCV)
}
