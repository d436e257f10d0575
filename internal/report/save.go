package report

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/contour-tools/internal/detection"
	"github.com/ironsheep/contour-tools/internal/imaging"
)

// Output file names written by SaveResults.
const (
	ContoursFile = "contours.png"
	PropsFile    = "object_props.json"
)

// SaveResults renders the annotated contour image and writes it together
// with the JSON records into dir. It returns the paths written.
func SaveResults(dir string, bounds image.Rectangle, contours []detection.Contour, objects []detection.ObjectProperties) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pngPath := filepath.Join(dir, ContoursFile)
	if err := imaging.Save(Annotate(bounds, contours, objects), pngPath); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, PropsFile)
	if err := SaveJSON(jsonPath, objects); err != nil {
		return nil, err
	}

	return []string{pngPath, jsonPath}, nil
}
