package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// DefaultCannyThreshold is the low hysteresis threshold used when the caller
// does not supply one. The high threshold is always twice the low one.
const DefaultCannyThreshold = 70

// MaxCannyThreshold caps the low threshold so that 2*threshold cannot
// overflow. Any value this large already suppresses every edge.
const MaxCannyThreshold = 1 << 20

// ErrInvalidThreshold is returned for negative or inverted hysteresis thresholds.
var ErrInvalidThreshold = errors.New("invalid threshold")

var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// CannyThresholds returns the (low, high) hysteresis pair for threshold:
// (threshold, 2*threshold). threshold is capped at MaxCannyThreshold.
func CannyThresholds(threshold int) (float64, float64) {
	threshold = min(threshold, MaxCannyThreshold)
	return float64(threshold), float64(2 * threshold)
}

// Canny performs Canny edge detection on a grayscale image.
//
// Parameters:
//   - gray: Source luminance image. It is not smoothed here; blur it first
//     with BoxBlur if noise suppression is wanted.
//   - low: Gradient magnitudes at or below low are never edges.
//   - high: Gradient magnitudes above high are strong edges.
//
// Returns an edge map with bounds starting at (0,0), where edge pixels are
// 255 and all others 0.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators on 0-255 intensities,
//     magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx).
//     Borders replicate the outermost pixels.
//
//  2. Non-maximum suppression: a pixel survives only if its magnitude is a
//     local maximum along the gradient direction, quantized to 0°, 45°, 90°
//     or 135°. Ties are broken towards the first neighbor so plateaus yield
//     one-pixel-wide edges.
//
//  3. Hysteresis: surviving pixels above high seed the edge set, which then
//     grows through 8-connected surviving pixels above low.
//
// Raising both thresholds can only remove edge pixels, never add them.
func Canny(gray *image.Gray, low, high float64) (*image.Gray, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if low < 0 || high < low {
		return nil, fmt.Errorf("%w: low=%g high=%g", ErrInvalidThreshold, low, high)
	}

	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.Pix[gray.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])
	}

	// Compute gradients using Sobel operator
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Hypot(gx, gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag == 0 {
				continue
			}

			angle := direction[i]
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			default:
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			}

			if mag > n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	result := image.NewGray(image.Rect(0, 0, width, height))
	stack := make([]int, 0, 64)
	for i, v := range suppressed {
		if v > high {
			result.Pix[i] = 255
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if result.Pix[j] == 0 && suppressed[j] > low {
					result.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}

	return result, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
