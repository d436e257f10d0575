package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// laplaceKernel is the 3x3 aperture Laplacian (second derivative in x and y
// computed with Sobel-style weights).
var laplaceKernel = []float64{
	2, 0, 2,
	0, -8, 0,
	2, 0, 2,
}

// MedianBlur replaces every pixel of img with the per-channel median of its
// ksize x ksize neighborhood. A ksize below 3 returns an unmodified copy.
func MedianBlur(img image.Image, ksize int) (image.Image, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if ksize < 3 {
		return imaging.Clone(img), nil
	}
	return effect.Median(img, float64(ksize/2)), nil
}

// BoxBlur averages every pixel of gray over its ksize x ksize neighborhood.
// A ksize below 3 returns an unmodified copy.
func BoxBlur(gray *image.Gray, ksize int) (*image.Gray, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if ksize < 3 {
		return ToGray(gray)
	}
	return rgbaToGray(blur.Box(gray, float64(ksize/2))), nil
}

// Laplacian returns the absolute 3x3 Laplacian response of gray, saturated to
// the 0-255 range.
//
// The convolution saturates negative responses to zero, so the kernel is
// applied twice with opposite signs and the larger result is kept. That is
// |L| clamped to 255 for every pixel.
func Laplacian(gray *image.Gray) (*image.Gray, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	pos := convolution.NewKernel(3, 3)
	neg := convolution.NewKernel(3, 3)
	for i, v := range laplaceKernel {
		pos.Matrix[i] = v
		neg.Matrix[i] = -v
	}

	opts := &convolution.Options{Wrap: false, KeepAlpha: true}
	posImg := rgbaToGray(convolution.Convolve(gray, pos, opts))
	negImg := rgbaToGray(convolution.Convolve(gray, neg, opts))

	for i, v := range negImg.Pix {
		if v > posImg.Pix[i] {
			posImg.Pix[i] = v
		}
	}
	return posImg, nil
}

// ThresholdInv produces an inverted binary image: pixels above threshold
// become 0 and all others become 255.
func ThresholdInv(gray *image.Gray, threshold int) (*image.Gray, error) {
	if gray == nil || gray.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	bounds := gray.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) <= threshold {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst, nil
}
