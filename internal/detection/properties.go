package detection

import (
	"image"
	"math"
	"sort"
)

// MinEllipsePoints is the minimum number of contour points required before an
// orientation is reported.
const MinEllipsePoints = 5

// Centroid is the center of mass of a contour polygon.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObjectProperties describes one detected object.
//
// Pointer fields are nil when the value is undefined for the contour and
// serialize as JSON null.
type ObjectProperties struct {
	// Index is the 1-based position of this record in the result list.
	Index int `json:"index"`

	// Contour is the 0-based index of the source contour. Skipped contours
	// leave gaps, so Contour can be larger than Index-1.
	Contour int `json:"contour"`

	// Centroid is the polygon's center of mass, nil if degenerate.
	Centroid *Centroid `json:"centroid"`

	// BoundingBox encloses the contour polygon.
	BoundingBox BoundingBox `json:"bounding_box"`

	// Area is the polygon area in square pixels.
	Area float64 `json:"area"`

	// Perimeter is the closed polygon arc length in pixels.
	Perimeter float64 `json:"perimeter"`

	// AspectRatio is bounding box width / height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Extent is area / area of the rectangle spanned by the outermost
	// contour points, so a rectangular contour has extent 1.
	Extent float64 `json:"extent"`

	// Solidity is area / convex hull area; 0 when the hull is degenerate.
	Solidity float64 `json:"solidity"`

	// EquivalentDiameter is the diameter of a circle with the same area.
	EquivalentDiameter float64 `json:"equivalent_diameter"`

	// Orientation is the major-axis angle in degrees [0, 180), nil when the
	// contour has fewer than MinEllipsePoints points.
	Orientation *float64 `json:"orientation"`

	// MeanIntensity is the average source value inside the filled contour.
	MeanIntensity float64 `json:"mean_intensity"`

	// Points is the number of contour points.
	Points int `json:"points"`
}

// ComputeProperties measures every contour against the source image src and
// returns one record per contour with non-zero area, in contour order.
// src may be nil, in which case MeanIntensity is 0.
func ComputeProperties(contours []Contour, src *image.Gray) []ObjectProperties {
	results := make([]ObjectProperties, 0, len(contours))
	for i, c := range contours {
		props, ok := ContourProperties(c, src)
		if !ok {
			continue
		}
		props.Index = len(results) + 1
		props.Contour = i
		results = append(results, props)
	}
	return results
}

// ContourProperties measures a single contour. ok is false when the contour
// encloses no area and must be skipped.
func ContourProperties(c Contour, src *image.Gray) (ObjectProperties, bool) {
	area := Area(c)
	if area == 0 {
		return ObjectProperties{}, false
	}

	box := BoundingRect(c)
	props := ObjectProperties{
		BoundingBox:        box,
		Area:               area,
		Perimeter:          ArcLength(c),
		EquivalentDiameter: math.Sqrt(4 * area / math.Pi),
		Points:             len(c),
	}

	if box.Height != 0 {
		props.AspectRatio = float64(box.Width) / float64(box.Height)
	}
	// The polygon itself spans one pixel less than the box in each direction
	if spanArea := (box.Width - 1) * (box.Height - 1); spanArea > 0 {
		props.Extent = area / float64(spanArea)
	}
	if hullArea := Area(ConvexHull(c)); hullArea != 0 {
		props.Solidity = area / hullArea
	}

	m := PolygonMoments(c)
	if cx, cy, ok := m.Centroid(); ok {
		props.Centroid = &Centroid{X: cx, Y: cy}
	}
	if len(c) >= MinEllipsePoints {
		if angle, ok := m.Orientation(); ok {
			props.Orientation = &angle
		}
	}

	props.MeanIntensity = MeanIntensity(c, src)
	return props, true
}

// MeanIntensity averages the pixels of src that lie inside or on the polygon
// c. It returns 0 when src is nil or the polygon covers no pixel of src.
func MeanIntensity(c Contour, src *image.Gray) float64 {
	if src == nil || len(c) == 0 {
		return 0
	}

	mask := FillMask(c, src.Bounds())
	var sum, count int
	for i, v := range mask.Pix {
		if v == 0 {
			continue
		}
		x := i%mask.Stride + mask.Rect.Min.X
		y := i/mask.Stride + mask.Rect.Min.Y
		sum += int(src.GrayAt(x, y).Y)
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// FillMask rasterizes the filled polygon c, restricted to bounds. Pixels
// inside the polygon or on one of its edges are 255; all others are 0.
// The mask covers the intersection of bounds and the contour's bounding box.
//
// Interior pixels are filled row by row between sorted edge crossings
// (even-odd rule), then every lattice point on an edge is painted.
func FillMask(c Contour, bounds image.Rectangle) *image.Alpha {
	rect := BoundingRect(c).Rect().Intersect(bounds)
	mask := image.NewAlpha(rect)
	if rect.Empty() {
		return mask
	}

	n := len(c)
	xs := make([]float64, 0, 16)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		py := float64(y)
		xs = xs[:0]
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			xi, yi := float64(c[i].X), float64(c[i].Y)
			xj, yj := float64(c[j].X), float64(c[j].Y)
			if (yi > py) != (yj > py) {
				xs = append(xs, (xj-xi)*(py-yi)/(yj-yi)+xi)
			}
		}
		sort.Float64s(xs)

		row := mask.Pix[mask.PixOffset(rect.Min.X, y) : mask.PixOffset(rect.Min.X, y)+rect.Dx()]
		for k := 0; k+1 < len(xs); k += 2 {
			// A pixel is inside when xs[k] <= x < xs[k+1]
			x0 := max(int(math.Ceil(xs[k])), rect.Min.X)
			x1 := min(int(math.Ceil(xs[k+1])), rect.Max.X)
			for x := x0; x < x1; x++ {
				row[x-rect.Min.X] = 255
			}
		}
	}

	for i := 0; i < n; i++ {
		paintSegment(mask, c[i], c[(i+1)%n])
	}
	return mask
}

// paintSegment sets every pixel of mask whose integer coordinates lie
// exactly on the segment a-b.
func paintSegment(mask *image.Alpha, a, b Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := gcd(absInt(dx), absInt(dy))
	if steps == 0 {
		if (image.Point{X: a.X, Y: a.Y}).In(mask.Rect) {
			mask.Pix[mask.PixOffset(a.X, a.Y)] = 255
		}
		return
	}
	sx, sy := dx/steps, dy/steps
	for k := 0; k <= steps; k++ {
		p := image.Point{X: a.X + k*sx, Y: a.Y + k*sy}
		if p.In(mask.Rect) {
			mask.Pix[mask.PixOffset(p.X, p.Y)] = 255
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
