package detection

import "image"

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is an ordered, closed sequence of border points. The last point
// connects back to the first.
type Contour []Point

// neighborhood offsets in counterclockwise order as seen on screen
// (Y grows downward): E, NE, N, NW, W, SW, S, SE.
var (
	dirX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dirY = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

// FindContours returns the outer contours of an edge map.
//
// Any non-zero pixel of edges is foreground. Foreground pixels are grouped
// with 8-connectivity; background with 4-connectivity. A region is reported
// only when it touches the background connected to the image border, so
// regions nested in another region's hole are excluded.
//
// Returned points are in the coordinate space of edges.Bounds().
//
// # Algorithm
//
//  1. Flood-fill the background from the image border (4-connected).
//  2. Scan in raster order; the first unvisited foreground pixel of a region
//     is its top-left-most pixel and lies on its outer border.
//  3. Flood-fill the region (8-connected) to mark it visited and decide
//     whether it touches the outer background.
//  4. For external regions, follow the border from the start pixel
//     (Suzuki-Abe border following) and compress straight runs.
func FindContours(edges *image.Gray) []Contour {
	contours := make([]Contour, 0)
	if edges == nil || edges.Bounds().Empty() {
		return contours
	}

	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	fg := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fg[y*width+x] = edges.Pix[edges.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] != 0
		}
	}

	outside := outerBackground(fg, width, height)
	visited := make([]bool, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !fg[i] || visited[i] {
				continue
			}
			if !markRegion(fg, visited, outside, x, y, width, height) {
				continue
			}

			border := compressContour(traceBorder(fg, x, y, width, height))
			for k := range border {
				border[k].X += bounds.Min.X
				border[k].Y += bounds.Min.Y
			}
			contours = append(contours, border)
		}
	}

	return contours
}

// outerBackground marks every background pixel that is 4-connected to the
// image border.
func outerBackground(fg []bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]int, 0, 2*(width+height))

	push := func(x, y int) {
		i := y*width + x
		if !fg[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width

		if x > 0 {
			push(x-1, y)
		}
		if x < width-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < height-1 {
			push(x, y+1)
		}
	}

	return outside
}

// markRegion flood-fills the 8-connected region containing (startX, startY),
// marking it visited. It reports whether the region touches the image border
// or the outer background.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions.
func markRegion(fg, visited, outside []bool, startX, startY, width, height int) bool {
	external := false
	stack := []Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			external = true
		}

		for d := 0; d < 8; d++ {
			nx, ny := p.X+dirX[d], p.Y+dirY[d]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			j := ny*width + nx
			if !fg[j] {
				// Only 4-neighbors (even directions) share an edge with p
				if d%2 == 0 && outside[j] {
					external = true
				}
				continue
			}
			if !visited[j] {
				visited[j] = true
				stack = append(stack, Point{X: nx, Y: ny})
			}
		}
	}

	return external
}

// traceBorder follows the outer border starting at (startX, startY), whose
// west neighbor must be background. The result lists every border pixel in
// visiting order.
func traceBorder(fg []bool, startX, startY, width, height int) Contour {
	isFg := func(x, y int) bool {
		return x >= 0 && x < width && y >= 0 && y < height && fg[y*width+x]
	}

	start := Point{X: startX, Y: startY}

	// Look clockwise from the west neighbor for the first foreground pixel.
	first := -1
	for k := 1; k <= 8; k++ {
		d := (4 - k + 8) % 8
		if isFg(startX+dirX[d], startY+dirY[d]) {
			first = d
			break
		}
	}
	if first < 0 {
		return Contour{start}
	}

	firstNeighbor := Point{X: startX + dirX[first], Y: startY + dirY[first]}
	contour := make(Contour, 0, 64)

	prev := firstNeighbor
	cur := start
	for {
		// Search counterclockwise around cur, starting just after prev.
		back := direction(cur, prev)
		var next Point
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			nx, ny := cur.X+dirX[d], cur.Y+dirY[d]
			if isFg(nx, ny) {
				next = Point{X: nx, Y: ny}
				break
			}
		}

		contour = append(contour, cur)
		if next == start && cur == firstNeighbor {
			break
		}
		prev, cur = cur, next
	}

	return contour
}

// direction returns the neighborhood index of the step from a to its
// 8-neighbor b.
func direction(a, b Point) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	for d := 0; d < 8; d++ {
		if dirX[d] == dx && dirY[d] == dy {
			return d
		}
	}
	return 0
}

// compressContour keeps only the points where the step direction changes.
func compressContour(c Contour) Contour {
	n := len(c)
	if n <= 2 {
		return c
	}

	out := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		prev := c[(i-1+n)%n]
		next := c[(i+1)%n]
		in := Point{X: c[i].X - prev.X, Y: c[i].Y - prev.Y}
		outStep := Point{X: next.X - c[i].X, Y: next.Y - c[i].Y}
		if in != outStep {
			out = append(out, c[i])
		}
	}
	if len(out) == 0 {
		return Contour{c[0]}
	}
	return out
}
