package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region encoded as PNG.
type CropResult struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts region from img, grown by margin pixels on every side and
// clipped to the image. A scale other than 1 resizes the result with a
// Lanczos filter. X and Y report where the crop starts in img.
func Crop(img image.Image, region image.Rectangle, margin int, scale float64) (*CropResult, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if margin < 0 {
		return nil, fmt.Errorf("invalid margin %d: must not be negative", margin)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %g: must be positive", scale)
	}

	r := region.Inset(-margin).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, img.Bounds())
	}

	var cropped image.Image = imaging.Crop(img, r)
	if scale != 1 {
		w := max(1, int(float64(r.Dx())*scale))
		h := max(1, int(float64(r.Dy())*scale))
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}

	encoded, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X:           r.Min.X,
		Y:           r.Min.Y,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
