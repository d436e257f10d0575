package pipeline

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/contour-tools/internal/detection"
	"github.com/ironsheep/contour-tools/internal/imaging"
)

// createRectImage creates a black RGBA image with a filled rectangle.
func createRectImage(width, height int, rect image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image.Pt(x, y).In(rect) {
				img.Set(x, y, c)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func createTestImageFile(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewDetector(t *testing.T) {
	for _, name := range []string{"", BackendNative} {
		d, err := NewDetector(name)
		if err != nil {
			t.Fatalf("NewDetector(%q) failed: %v", name, err)
		}
		if d.Name() != BackendNative {
			t.Errorf("NewDetector(%q).Name() = %s, want %s", name, d.Name(), BackendNative)
		}
	}
}

func TestNewDetector_Unknown(t *testing.T) {
	if _, err := NewDetector("hough"); err == nil {
		t.Error("NewDetector should fail for an unknown backend")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Threshold != 70 {
		t.Errorf("Threshold: got %d, want 70", opts.Threshold)
	}
	if opts.BlurSize != 0 {
		t.Errorf("BlurSize: got %d, want 0", opts.BlurSize)
	}
}

func TestRun_Rectangle(t *testing.T) {
	img := createRectImage(80, 60, image.Rect(20, 15, 60, 45), color.RGBA{200, 200, 200, 255})

	res, err := New(nil, DefaultOptions()).Run(img)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Backend != BackendNative {
		t.Errorf("Backend: got %s, want %s", res.Backend, BackendNative)
	}
	if res.Threshold != 70 {
		t.Errorf("Threshold: got %d, want 70", res.Threshold)
	}
	if res.Edges.Bounds() != image.Rect(0, 0, 80, 60) {
		t.Errorf("edge map bounds: got %v", res.Edges.Bounds())
	}
	if res.Blurred != res.Gray {
		t.Error("without blur the edge input should be the gray image")
	}
	if len(res.Contours) == 0 || len(res.Objects) == 0 {
		t.Fatalf("expected at least one object, got %d contours, %d objects", len(res.Contours), len(res.Objects))
	}

	obj := res.Objects[0]
	if obj.Index != 1 {
		t.Errorf("Index: got %d, want 1", obj.Index)
	}
	if obj.Centroid == nil {
		t.Fatal("Centroid should be set")
	}
	if math.Abs(obj.Centroid.X-39.5) > 1.5 || math.Abs(obj.Centroid.Y-29.5) > 1.5 {
		t.Errorf("Centroid: got (%v, %v), want near (39.5, 29.5)", obj.Centroid.X, obj.Centroid.Y)
	}
	if math.Abs(obj.AspectRatio-40.0/30.0) > 0.1 {
		t.Errorf("AspectRatio: got %v, want ~1.33", obj.AspectRatio)
	}
}

func TestRun_AllBlack(t *testing.T) {
	img := createRectImage(40, 40, image.Rectangle{}, color.White)

	res, err := New(nil, DefaultOptions()).Run(img)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Contours) != 0 || len(res.Objects) != 0 {
		t.Errorf("expected no contours on a black image, got %d", len(res.Contours))
	}
	if res.Objects == nil {
		t.Error("Objects should be an empty slice, not nil")
	}
}

func TestRun_WithBlur(t *testing.T) {
	img := createRectImage(60, 60, image.Rect(15, 15, 45, 45), color.White)

	res, err := New(nil, Options{Threshold: 30, BlurSize: 3}).Run(img)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Blurred == res.Gray {
		t.Error("blurred image should be a new image")
	}
	if res.Gray.GrayAt(15, 15).Y != 255 {
		t.Error("mean intensity source must be the unblurred gray image")
	}
	if len(res.Objects) == 0 {
		t.Error("expected objects after blurring")
	}
}

func TestRun_ThresholdMonotonic(t *testing.T) {
	img := createRectImage(60, 60, image.Rect(10, 10, 50, 50), color.RGBA{90, 90, 90, 255})

	prev := -1
	for _, th := range []int{10, 40, 70, 120, 200} {
		res, err := New(nil, Options{Threshold: th}).Run(img)
		if err != nil {
			t.Fatalf("Run(%d) failed: %v", th, err)
		}
		n := imaging.CountNonZero(res.Edges)
		if prev >= 0 && n > prev {
			t.Errorf("threshold %d produced %d edge pixels, more than %d at a lower threshold", th, n, prev)
		}
		prev = n
	}
}

func TestRun_NegativeThreshold(t *testing.T) {
	img := createRectImage(10, 10, image.Rect(2, 2, 8, 8), color.White)
	_, err := New(nil, Options{Threshold: -1}).Run(img)
	if !errors.Is(err, imaging.ErrInvalidThreshold) {
		t.Errorf("got %v, want ErrInvalidThreshold", err)
	}
}

func TestRun_NilImage(t *testing.T) {
	_, err := New(nil, DefaultOptions()).Run(nil)
	if !errors.Is(err, imaging.ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestRunFile(t *testing.T) {
	path := createTestImageFile(t, createRectImage(50, 50, image.Rect(10, 10, 40, 40), color.White))

	res, err := New(nil, DefaultOptions()).RunFile(path)
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if len(res.Objects) == 0 {
		t.Error("expected at least one object")
	}
}

func TestRunFile_NonExistent(t *testing.T) {
	if _, err := New(nil, DefaultOptions()).RunFile("/nonexistent/image.png"); err == nil {
		t.Error("RunFile should fail for a missing file")
	}
}

// stubDetector records the thresholds it was called with.
type stubDetector struct {
	low, high float64
}

func (s *stubDetector) Name() string { return "stub" }

func (s *stubDetector) Edges(gray *image.Gray, low, high float64) (*image.Gray, error) {
	s.low, s.high = low, high
	return image.NewGray(gray.Bounds()), nil
}

func (s *stubDetector) Contours(edges *image.Gray) ([]detection.Contour, error) {
	return []detection.Contour{{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}}, nil
}

func TestRun_CustomDetector(t *testing.T) {
	stub := &stubDetector{}
	res, err := New(stub, Options{Threshold: 25}).Run(createRectImage(10, 10, image.Rect(0, 0, 5, 5), color.White))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stub.low != 25 || stub.high != 50 {
		t.Errorf("thresholds: got (%v, %v), want (25, 50)", stub.low, stub.high)
	}
	if res.Backend != "stub" {
		t.Errorf("Backend: got %s, want stub", res.Backend)
	}
	if len(res.Objects) != 1 || res.Objects[0].MeanIntensity != 255 {
		t.Errorf("expected one white object, got %+v", res.Objects)
	}
}
