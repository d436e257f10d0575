package detection

import (
	"image"
	"math"
	"sort"
)

// BoundingBox is the axis-aligned pixel box enclosing a contour. Width and
// Height count pixels, so the box covers X..X+Width-1 and Y..Y+Height-1.
type BoundingBox struct {
	X      int `json:"x"`      // Left edge
	Y      int `json:"y"`      // Top edge
	Width  int `json:"width"`  // maxX - minX + 1
	Height int `json:"height"` // maxY - minY + 1
}

// Rect returns the box as an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// BoundingRect returns the bounding box of the pixels of c, matching
// OpenCV's boundingRect. An empty contour yields the zero box.
func BoundingRect(c Contour) BoundingBox {
	if len(c) == 0 {
		return BoundingBox{}
	}

	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Area returns the absolute polygon area of c (shoelace formula).
func Area(c Contour) float64 {
	return math.Abs(signedArea(c))
}

func signedArea(c Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += float64(c[i].X*c[j].Y - c[j].X*c[i].Y)
	}
	return sum / 2
}

// ArcLength returns the perimeter of the closed polygon c.
func ArcLength(c Contour) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var length float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		length += math.Hypot(float64(c[j].X-c[i].X), float64(c[j].Y-c[i].Y))
	}
	return length
}

// ConvexHull returns the convex hull of c using Andrew's monotone chain.
// Collinear points are dropped. Fewer than three distinct points are returned
// as they are (deduplicated).
func ConvexHull(c Contour) Contour {
	pts := make([]Point, len(c))
	copy(pts, c)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	uniq := make([]Point, 0, len(pts))
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) < 3 {
		return Contour(pts)
	}

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make(Contour, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// Moments holds the spatial moments of a polygon up to second order,
// computed with Green's theorem over its vertices. Their sign follows the
// polygon's winding; ratios of moments are independent of it.
type Moments struct {
	M00, M10, M01, M20, M11, M02 float64

	// raw holds the undivided vertex sums (2*M00, 6*M10, 6*M01, 12*M20,
	// 24*M11, 12*M02). They are exact for integer vertices of moderate size.
	raw [6]float64
}

// PolygonMoments computes the spatial moments of the region enclosed by c.
func PolygonMoments(c Contour) Moments {
	var m Moments
	n := len(c)
	if n < 3 {
		return m
	}

	var s00, s10, s01, s20, s11, s02 float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := float64(c[i].X), float64(c[i].Y)
		xj, yj := float64(c[j].X), float64(c[j].Y)
		a := xi*yj - xj*yi

		s00 += a
		s10 += (xi + xj) * a
		s01 += (yi + yj) * a
		s20 += (xi*xi + xi*xj + xj*xj) * a
		s11 += (xi*yj + 2*xi*yi + 2*xj*yj + xj*yi) * a
		s02 += (yi*yi + yi*yj + yj*yj) * a
	}

	m.raw = [6]float64{s00, s10, s01, s20, s11, s02}
	m.M00 = s00 / 2
	m.M10 = s10 / 6
	m.M01 = s01 / 6
	m.M20 = s20 / 12
	m.M11 = s11 / 24
	m.M02 = s02 / 12
	return m
}

// Centroid returns the center of mass. ok is false when M00 is zero.
func (m Moments) Centroid() (cx, cy float64, ok bool) {
	if m.M00 == 0 {
		return 0, 0, false
	}
	return m.M10 / m.M00, m.M01 / m.M00, true
}

// Orientation returns the angle in degrees, in [0, 180), between the +X axis
// and the major axis of the ellipse with the same second-order central
// moments. Angles grow from +X towards +Y. ok is false when M00 is zero.
func (m Moments) Orientation() (float64, bool) {
	if m.M00 == 0 {
		return 0, false
	}

	// Central moments scaled by 144*M00², computed from the raw sums so that
	// symmetric shapes give exact zeros.
	s00, s10, s01, s20, s11, s02 := m.raw[0], m.raw[1], m.raw[2], m.raw[3], m.raw[4], m.raw[5]
	mu20 := 6*s20*s00 - 4*s10*s10
	mu02 := 6*s02*s00 - 4*s01*s01
	mu11 := 3*s11*s00 - 4*s10*s01

	theta := 0.5 * math.Atan2(2*mu11, mu20-mu02) * 180 / math.Pi
	switch {
	case theta < 0:
		theta += 180
	case theta == 0:
		theta = 0 // drop the sign of -0
	}
	if theta >= 180 {
		theta -= 180
	}
	return theta, true
}
