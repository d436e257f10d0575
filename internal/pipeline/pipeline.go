package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/contour-tools/internal/detection"
	"github.com/ironsheep/contour-tools/internal/imaging"
)

// Backend names accepted by NewDetector.
const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// ErrBackendUnavailable is returned when a detector backend was not compiled
// into the binary.
var ErrBackendUnavailable = errors.New("backend unavailable")

// Detector produces edge maps and external contours.
type Detector interface {
	// Name returns the backend name.
	Name() string

	// Edges runs Canny edge detection with hysteresis thresholds low and
	// high. The result has bounds starting at (0,0) and holds 0 or 255.
	Edges(gray *image.Gray, low, high float64) (*image.Gray, error)

	// Contours returns the external contours of an edge map in raster order.
	Contours(edges *image.Gray) ([]detection.Contour, error)
}

// NewDetector returns the detector registered under name. An empty name
// selects the native backend.
func NewDetector(name string) (Detector, error) {
	switch name {
	case "", BackendNative:
		return nativeDetector{}, nil
	case BackendOpenCV:
		return newOpenCVDetector()
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", name, BackendNative, BackendOpenCV)
	}
}

type nativeDetector struct{}

func (nativeDetector) Name() string { return BackendNative }

func (nativeDetector) Edges(gray *image.Gray, low, high float64) (*image.Gray, error) {
	return imaging.Canny(gray, low, high)
}

func (nativeDetector) Contours(edges *image.Gray) ([]detection.Contour, error) {
	if edges == nil {
		return nil, imaging.ErrEmptyImage
	}
	return detection.FindContours(edges), nil
}

// Options control a pipeline run.
type Options struct {
	// Threshold is the low Canny threshold; the high one is twice this value.
	Threshold int

	// BlurSize is the box blur kernel size applied before edge detection.
	// Values below 3 disable blurring.
	BlurSize int
}

// DefaultOptions returns the default threshold with blurring disabled.
func DefaultOptions() Options {
	return Options{Threshold: imaging.DefaultCannyThreshold}
}

// Result holds every intermediate image of a run along with the measured
// objects.
type Result struct {
	Source    image.Image
	Gray      *image.Gray // Unblurred luminance; mean intensity is read here
	Blurred   *image.Gray // Edge detector input; same as Gray without blur
	Edges     *image.Gray
	Contours  []detection.Contour
	Objects   []detection.ObjectProperties
	Backend   string
	Threshold int
}

// Pipeline runs the object-property pipeline with a fixed detector and
// options. It holds no per-run state and may be reused.
type Pipeline struct {
	detector Detector
	opts     Options
}

// New creates a pipeline. A nil detector selects the native backend.
func New(d Detector, opts Options) *Pipeline {
	if d == nil {
		d = nativeDetector{}
	}
	return &Pipeline{detector: d, opts: opts}
}

// Run executes the pipeline on img. img is never modified.
func (p *Pipeline) Run(img image.Image) (*Result, error) {
	if p.opts.Threshold < 0 {
		return nil, fmt.Errorf("%w: %d", imaging.ErrInvalidThreshold, p.opts.Threshold)
	}

	gray, err := imaging.ToGray(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}

	blurred := gray
	if p.opts.BlurSize >= 3 {
		blurred, err = imaging.BoxBlur(gray, p.opts.BlurSize)
		if err != nil {
			return nil, fmt.Errorf("failed to blur image: %w", err)
		}
	}

	low, high := imaging.CannyThresholds(p.opts.Threshold)
	edges, err := p.detector.Edges(blurred, low, high)
	if err != nil {
		return nil, fmt.Errorf("failed to detect edges: %w", err)
	}

	contours, err := p.detector.Contours(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to find contours: %w", err)
	}

	return &Result{
		Source:    img,
		Gray:      gray,
		Blurred:   blurred,
		Edges:     edges,
		Contours:  contours,
		Objects:   detection.ComputeProperties(contours, gray),
		Backend:   p.detector.Name(),
		Threshold: p.opts.Threshold,
	}, nil
}

// RunFile loads the image at path and runs the pipeline on it.
func (p *Pipeline) RunFile(path string) (*Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Run(img)
}
