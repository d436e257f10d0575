package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/contour-tools/internal/detection"
)

// Print writes one "Object N:" block per record to w, followed by a blank
// line.
func Print(w io.Writer, objects []detection.ObjectProperties) error {
	for _, obj := range objects {
		if _, err := fmt.Fprintf(w, "Object %d:\n", obj.Index); err != nil {
			return err
		}

		lines := []string{
			"centroid: " + formatCentroid(obj.Centroid),
			fmt.Sprintf("bounding_box: x=%d y=%d w=%d h=%d",
				obj.BoundingBox.X, obj.BoundingBox.Y, obj.BoundingBox.Width, obj.BoundingBox.Height),
			fmt.Sprintf("area: %.2f", obj.Area),
			fmt.Sprintf("perimeter: %.2f", obj.Perimeter),
			fmt.Sprintf("aspect_ratio: %.4f", obj.AspectRatio),
			fmt.Sprintf("extent: %.4f", obj.Extent),
			fmt.Sprintf("solidity: %.4f", obj.Solidity),
			fmt.Sprintf("equivalent_diameter: %.4f", obj.EquivalentDiameter),
			"orientation: " + formatOrientation(obj.Orientation),
			fmt.Sprintf("mean_intensity: %.4f", obj.MeanIntensity),
			fmt.Sprintf("points: %d", obj.Points),
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func formatCentroid(c *detection.Centroid) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
}

func formatOrientation(o *float64) string {
	if o == nil {
		return "none"
	}
	return fmt.Sprintf("%.2f", *o)
}

// WriteJSON encodes objects to w as an indented JSON array. A nil slice is
// written as [].
func WriteJSON(w io.Writer, objects []detection.ObjectProperties) error {
	if objects == nil {
		objects = []detection.ObjectProperties{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(objects); err != nil {
		return fmt.Errorf("failed to encode objects: %w", err)
	}
	return nil
}

// SaveJSON writes objects to path as a JSON array.
func SaveJSON(path string, objects []detection.ObjectProperties) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSON(f, objects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
