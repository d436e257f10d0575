package detection

import (
	"image"
	"math"
	"testing"
)

const epsilon = 1e-9

// lShape is an L made of three 10x10 cells: area 300, hull area 350.
var lShape = Contour{{0, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 20}, {0, 20}}

func reversed(c Contour) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

func TestBoundingRect(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want BoundingBox
	}{
		{"empty", nil, BoundingBox{}},
		{"point", Contour{{3, 4}}, BoundingBox{X: 3, Y: 4, Width: 1, Height: 1}},
		{"rectangle", Contour{{10, 10}, {10, 29}, {49, 29}, {49, 10}}, BoundingBox{X: 10, Y: 10, Width: 40, Height: 20}},
		{"l-shape", lShape, BoundingBox{Width: 21, Height: 21}},
		{"segment", Contour{{2, 5}, {8, 5}}, BoundingBox{X: 2, Y: 5, Width: 7, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingRect(tt.c); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundingBox_Rect(t *testing.T) {
	box := BoundingBox{X: 10, Y: 10, Width: 40, Height: 20}
	if got := box.Rect(); got != image.Rect(10, 10, 50, 30) {
		t.Errorf("got %v, want (10,10)-(50,30)", got)
	}
}

func TestArea(t *testing.T) {
	square := Contour{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	tests := []struct {
		name string
		c    Contour
		want float64
	}{
		{"square", square, 100},
		{"square reversed", reversed(square), 100},
		{"l-shape", lShape, 300},
		{"triangle", Contour{{0, 0}, {4, 0}, {0, 4}}, 8},
		{"line", Contour{{0, 0}, {10, 0}}, 0},
		{"collinear", Contour{{0, 0}, {5, 0}, {10, 0}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcLength(t *testing.T) {
	if got := ArcLength(Contour{{0, 0}, {0, 10}, {10, 10}, {10, 0}}); got != 40 {
		t.Errorf("square perimeter: got %v, want 40", got)
	}
	if got := ArcLength(Contour{{0, 0}, {3, 4}}); got != 10 {
		t.Errorf("segment closed length: got %v, want 10", got)
	}
	if got := ArcLength(Contour{{5, 5}}); got != 0 {
		t.Errorf("single point: got %v, want 0", got)
	}
}

func TestConvexHull(t *testing.T) {
	hull := ConvexHull(lShape)
	if len(hull) != 5 {
		t.Fatalf("expected 5 hull points, got %d: %v", len(hull), hull)
	}
	if got := Area(hull); got != 350 {
		t.Errorf("hull area: got %v, want 350", got)
	}
	for _, p := range hull {
		if p == (Point{10, 10}) {
			t.Error("reflex vertex (10,10) should not be on the hull")
		}
	}
}

func TestConvexHull_DoesNotModifyInput(t *testing.T) {
	c := Contour{{5, 5}, {0, 0}, {10, 0}, {10, 10}, {0, 10}}
	orig := append(Contour(nil), c...)

	ConvexHull(c)

	if !equalContours(c, orig) {
		t.Errorf("input modified: got %v, want %v", c, orig)
	}
}

func TestConvexHull_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want int
	}{
		{"empty", Contour{}, 0},
		{"duplicates", Contour{{1, 1}, {1, 1}, {1, 1}}, 1},
		{"segment", Contour{{0, 0}, {4, 0}, {0, 0}}, 2},
		{"collinear", Contour{{0, 0}, {2, 2}, {4, 4}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hull := ConvexHull(tt.c)
			if len(hull) != tt.want {
				t.Errorf("got %d points (%v), want %d", len(hull), hull, tt.want)
			}
			if Area(hull) != 0 {
				t.Errorf("degenerate hull should have zero area, got %v", Area(hull))
			}
		})
	}
}

func TestMoments_Centroid(t *testing.T) {
	rect := Contour{{10, 10}, {10, 20}, {30, 20}, {30, 10}}

	for _, c := range []Contour{rect, reversed(rect)} {
		cx, cy, ok := PolygonMoments(c).Centroid()
		if !ok {
			t.Fatal("centroid should be defined")
		}
		if math.Abs(cx-20) > epsilon || math.Abs(cy-15) > epsilon {
			t.Errorf("got (%v, %v), want (20, 15)", cx, cy)
		}
	}
}

func TestMoments_CentroidLShape(t *testing.T) {
	cx, cy, ok := PolygonMoments(lShape).Centroid()
	if !ok {
		t.Fatal("centroid should be defined")
	}
	// Cells centered at (5,5), (15,5) and (5,15)
	want := 25.0 / 3
	if math.Abs(cx-want) > epsilon || math.Abs(cy-want) > epsilon {
		t.Errorf("got (%v, %v), want (%v, %v)", cx, cy, want, want)
	}
}

func TestMoments_Degenerate(t *testing.T) {
	m := PolygonMoments(Contour{{0, 0}, {10, 0}})
	if _, _, ok := m.Centroid(); ok {
		t.Error("centroid of a segment should be undefined")
	}
	if _, ok := m.Orientation(); ok {
		t.Error("orientation of a segment should be undefined")
	}
}

func TestMoments_Orientation(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want float64
	}{
		{"horizontal", Contour{{0, 5}, {5, 0}, {15, 0}, {20, 5}, {15, 10}, {5, 10}}, 0},
		{"vertical", Contour{{5, 0}, {10, 5}, {10, 15}, {5, 20}, {0, 15}, {0, 5}}, 90},
		{"diagonal", Contour{{0, 0}, {2, 0}, {12, 10}, {12, 12}, {10, 12}, {0, 2}}, 45},
		{"anti-diagonal", lShape, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range []Contour{tt.c, reversed(tt.c)} {
				got, ok := PolygonMoments(c).Orientation()
				if !ok {
					t.Fatal("orientation should be defined")
				}
				if math.Abs(got-tt.want) > 1e-6 {
					t.Errorf("got %v, want %v", got, tt.want)
				}
				if got < 0 || got >= 180 {
					t.Errorf("orientation %v out of [0, 180)", got)
				}
			}
		})
	}
}

func TestMoments_OrientationNoNegativeZero(t *testing.T) {
	got, _ := PolygonMoments(Contour{{0, 5}, {5, 0}, {15, 0}, {20, 5}, {15, 10}, {5, 10}}).Orientation()
	if math.Signbit(got) {
		t.Errorf("orientation should be +0, got %v", got)
	}
}
