package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCanny(t *testing.T) {
	// Create an image with a clear edge (black rectangle on white background)
	gray := createEdgeTestImage(100, 100)

	edges, err := Canny(gray, 50, 150)
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}

	if edges.Bounds().Dx() != 100 || edges.Bounds().Dy() != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", edges.Bounds().Dx(), edges.Bounds().Dy())
	}

	for i, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d: got %d, want 0 or 255", i, v)
		}
	}

	if CountNonZero(edges) == 0 {
		t.Error("expected edges around the rectangle")
	}
}

func TestCanny_UniformImage(t *testing.T) {
	// Uniform image should have no edges
	gray := createGrayImage(50, 50, 128)

	edges, err := Canny(gray, 50, 100)
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}

	if n := CountNonZero(edges); n != 0 {
		t.Errorf("uniform image: got %d edge pixels, want 0", n)
	}
}

func TestCanny_AllBlack(t *testing.T) {
	gray := createGrayImage(40, 30, 0)

	edges, err := Canny(gray, 70, 140)
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	if n := CountNonZero(edges); n != 0 {
		t.Errorf("black image: got %d edge pixels, want 0", n)
	}
}

func TestCanny_StrongEdge(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			gray.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	edges, err := Canny(gray, 50, 100)
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}

	// The edge should be detected around x=50
	edgeFound := false
	for x := 48; x <= 52; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			edgeFound = true
			break
		}
	}
	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}

	// Non-maximum suppression keeps a single column per row
	count := 0
	for x := 0; x < 100; x++ {
		if edges.GrayAt(x, 50).Y == 255 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("edge width at row 50: got %d pixels, want 1", count)
	}
}

func TestCanny_Monotonic(t *testing.T) {
	gray := createNoisyTestImage(80, 60)

	thresholds := []int{10, 30, 70, 120, 200, 400}
	var prev *image.Gray
	for _, th := range thresholds {
		low, high := CannyThresholds(th)
		edges, err := Canny(gray, low, high)
		if err != nil {
			t.Fatalf("Canny(%d) failed: %v", th, err)
		}
		if prev != nil {
			for i := range edges.Pix {
				if edges.Pix[i] != 0 && prev.Pix[i] == 0 {
					t.Fatalf("threshold %d: pixel %d is an edge but was not at the lower threshold", th, i)
				}
			}
			if CountNonZero(edges) > CountNonZero(prev) {
				t.Errorf("threshold %d: edge count grew from %d to %d",
					th, CountNonZero(prev), CountNonZero(edges))
			}
		}
		prev = edges
	}
}

func TestCanny_InvalidInput(t *testing.T) {
	gray := createGrayImage(10, 10, 0)

	tests := []struct {
		name      string
		img       *image.Gray
		low, high float64
		want      error
	}{
		{"nil image", nil, 10, 20, ErrEmptyImage},
		{"empty image", image.NewGray(image.Rect(0, 0, 0, 0)), 10, 20, ErrEmptyImage},
		{"negative low", gray, -1, 20, ErrInvalidThreshold},
		{"inverted", gray, 30, 20, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canny(tt.img, tt.low, tt.high)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCanny_SmallImage(t *testing.T) {
	edges, err := Canny(createGrayImage(2, 2, 100), 10, 20)
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	if edges.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("bounds: got %v", edges.Bounds())
	}
}

func TestCannyThresholds(t *testing.T) {
	low, high := CannyThresholds(DefaultCannyThreshold)
	if low != 70 || high != 140 {
		t.Errorf("got (%g, %g), want (70, 140)", low, high)
	}

	low, high = CannyThresholds(math.MaxInt)
	if low != MaxCannyThreshold || high != 2*MaxCannyThreshold {
		t.Errorf("huge threshold: got (%g, %g), want (%d, %d)", low, high, MaxCannyThreshold, 2*MaxCannyThreshold)
	}
	if _, err := Canny(createEdgeTestImage(20, 20), low, high); err != nil {
		t.Errorf("capped thresholds should be valid: %v", err)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// Helper functions

// createEdgeTestImage creates a gray image with a black rectangle on a white
// background to create clear edges for testing
func createEdgeTestImage(width, height int) *image.Gray {
	gray := createGrayImage(width, height, 255)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			gray.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return gray
}

// createNoisyTestImage creates a deterministic pattern with gradients of many strengths
func createNoisyTestImage(width, height int) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	seed := uint32(12345)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			seed = seed*1664525 + 1013904223
			base := uint8((x * 255) / width)
			if (x/10+y/10)%2 == 0 {
				base = 255 - base
			}
			gray.SetGray(x, y, color.Gray{Y: base ^ uint8(seed>>28)})
		}
	}
	return gray
}
