package imaging

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The file lives in a per-test temporary directory.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	writePNG(t, path, createInMemoryImage(width, height, c))
	return path
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func TestLoad(t *testing.T) {
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	img, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := img.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist", "nested", "out.png")
	img := createInMemoryImage(12, 7, color.RGBA{0, 0, 255, 255})

	if err := Save(img, out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if loaded.Bounds().Dx() != 12 || loaded.Bounds().Dy() != 7 {
		t.Errorf("dimensions: got %v", loaded.Bounds())
	}
}

func TestSave_Nil(t *testing.T) {
	err := Save(nil, filepath.Join(t.TempDir(), "x.png"))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	img := createInMemoryImage(2, 2, color.White)
	if err := Save(img, filepath.Join(t.TempDir(), "out.xyz")); err == nil {
		t.Error("Save should fail for an unsupported extension")
	}
}

func TestEncodePNGBase64(t *testing.T) {
	encoded, err := EncodePNGBase64(createGrayImage(6, 4, 200))
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("dimensions: got %v", img.Bounds())
	}
}

func TestLoadImageInfo(t *testing.T) {
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo("/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".PNG", "png"},
		{".jpg", "jpeg"},
		{".jpeg", "jpeg"},
		{".gif", "gif"},
		{".bmp", "bmp"},
		{".tif", "tiff"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := formatFromExt("image" + tt.ext); got != tt.format {
				t.Errorf("got %s, want %s", got, tt.format)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		img      image.Image
		channels int
		depth    string
		alpha    bool
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 3, 2)), 1, "8-bit", false},
		{"gray16", image.NewGray16(image.Rect(0, 0, 3, 2)), 1, "16-bit", false},
		{"rgba", image.NewRGBA(image.Rect(0, 0, 3, 2)), 4, "8-bit", true},
		{"nrgba64", image.NewNRGBA64(image.Rect(0, 0, 3, 2)), 4, "16-bit", true},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 3, 2), image.YCbCrSubsampleRatio420), 3, "8-bit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.img)
			if info.Width != 3 || info.Height != 2 {
				t.Errorf("dimensions: got %dx%d, want 3x2", info.Width, info.Height)
			}
			if info.Channels != tt.channels {
				t.Errorf("Channels: got %d, want %d", info.Channels, tt.channels)
			}
			if info.ColorDepth != tt.depth {
				t.Errorf("ColorDepth: got %s, want %s", info.ColorDepth, tt.depth)
			}
			if info.HasAlpha != tt.alpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.alpha)
			}
		})
	}
}
