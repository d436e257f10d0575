package report

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/contour-tools/internal/detection"
)

// strokeWidth is the contour line thickness in pixels.
const strokeWidth = 2

// goldenAngle spreads consecutive hues around the color wheel.
const goldenAngle = 137.508

// ContourColor returns the drawing color of the i-th contour. Consecutive
// contours get well separated, fully saturated hues.
func ContourColor(i int) color.RGBA {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.85, 1).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Annotate draws contours on a black canvas of the given bounds. Each
// contour gets its own color; contours that produced an object are labelled
// with the object's index next to its centroid.
func Annotate(bounds image.Rectangle, contours []detection.Contour, objects []detection.ObjectProperties) *image.RGBA {
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)

	for i, c := range contours {
		drawContour(canvas, c, ContourColor(i))
	}

	for _, obj := range objects {
		if obj.Contour < 0 || obj.Contour >= len(contours) {
			continue
		}
		x, y := obj.BoundingBox.X, obj.BoundingBox.Y
		if obj.Centroid != nil {
			x, y = int(math.Round(obj.Centroid.X)), int(math.Round(obj.Centroid.Y))
		}
		drawLabel(canvas, x, y, strconv.Itoa(obj.Index), ContourColor(obj.Contour))
	}

	return canvas
}

// drawContour strokes the closed polygon c.
func drawContour(img *image.RGBA, c detection.Contour, col color.RGBA) {
	n := len(c)
	if n == 0 {
		return
	}
	if n == 1 {
		stamp(img, c[0].X, c[0].Y, col)
		return
	}
	for i := 0; i < n; i++ {
		drawLine(img, c[i], c[(i+1)%n], col)
	}
}

// drawLine draws a segment using Bresenham's algorithm.
func drawLine(img *image.RGBA, a, b detection.Point, col color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	e := dx + dy
	for {
		stamp(img, x, y, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// stamp paints a strokeWidth square whose top-left corner is (x, y).
func stamp(img *image.RGBA, x, y int, col color.RGBA) {
	for oy := 0; oy < strokeWidth; oy++ {
		for ox := 0; ox < strokeWidth; ox++ {
			if image.Pt(x+ox, y+oy).In(img.Rect) {
				img.SetRGBA(x+ox, y+oy, col)
			}
		}
	}
}

// drawLabel writes text with its baseline starting at (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
