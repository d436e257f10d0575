package imaging

import (
	"image"
	"image/draw"
)

// ToGray converts img to an 8-bit luminance image with bounds starting at (0,0).
//
// Luminance follows ITU-R BT.601 (0.299*R + 0.587*G + 0.114*B) as implemented
// by color.GrayModel, so neutral grays keep their exact value.
func ToGray(img image.Image) (*image.Gray, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray, nil
}

// CountNonZero returns the number of pixels of g with a non-zero value.
func CountNonZero(g *image.Gray) int {
	if g == nil {
		return 0
	}
	bounds := g.Bounds()
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := g.Pix[g.PixOffset(bounds.Min.X, y) : g.PixOffset(bounds.Min.X, y)+bounds.Dx()]
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// rgbaToGray copies the red channel of a grayscale-valued RGBA image.
func rgbaToGray(src *image.RGBA) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
		}
	}
	return dst
}
