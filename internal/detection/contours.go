package detection

import (
	"image"
	"math"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// Contour is the ordered outer boundary of one connected foreground region.
//
// Points run from the region's first raster-order pixel around the border
// and stop one step before returning to it. A single-pixel region has a
// single point.
type Contour struct {
	// Points are the boundary pixels in tracing order.
	Points []image.Point

	// label is the region index inside the owning ContourSet (1-based).
	label int32
}

// Area returns the shoelace area enclosed by the contour polygon.
//
// The polygon runs through pixel centres, so degenerate contours (a single
// pixel, a one-pixel-wide line) have zero area.
func (c Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return math.Abs(float64(sum)) / 2
}

// ArcLength returns the length of the contour curve.
//
// When closed is false the curve is treated as open and the segment from the
// last point back to the first is not counted.
func (c Contour) ArcLength(closed bool) float64 {
	n := len(c.Points)
	if n < 2 {
		return 0
	}
	var length float64
	for i := 1; i < n; i++ {
		length += stepLength(c.Points[i-1], c.Points[i])
	}
	if closed {
		length += stepLength(c.Points[n-1], c.Points[0])
	}
	return length
}

// Simplify returns the contour with straight runs compressed to their end
// points, in tracing order.
//
// The first point is always kept, and so is every point at which the step
// direction to the next point changes (the step after the last point leads
// back to the first). A straight horizontal band therefore shrinks to its
// four corners, and its open length loses the whole top edge instead of a
// single step.
func (c Contour) Simplify() Contour {
	n := len(c.Points)
	if n == 0 {
		return c
	}

	step := func(i int) image.Point {
		return c.Points[(i+1)%n].Sub(c.Points[i])
	}

	points := []image.Point{c.Points[0]}
	prev := step(0)
	for i := 1; i < n; i++ {
		if s := step(i); s != prev {
			points = append(points, c.Points[i])
			prev = s
		}
	}
	return Contour{Points: points, label: c.label}
}

func stepLength(a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ContourSet holds the external contours of a mask and the region labels
// needed to redraw them.
type ContourSet struct {
	// Contours are ordered by the raster position of their starting pixel.
	Contours []Contour

	width  int
	height int
	labels []int32
}

// Len returns the number of contours in the set.
func (s *ContourSet) Len() int {
	return len(s.Contours)
}

// neighbour offsets in clockwise order (screen coordinates, Y down),
// starting east
var directions = [8]image.Point{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
}

const dirWest = 4

// FindExternalContours finds the outer border of every outermost connected
// foreground region of mask.
//
// Foreground connectivity is 8-connected and background connectivity is
// 4-connected. Holes are not reported, and regions lying inside a hole of
// another region are absorbed into it. An empty mask yields an empty set.
func FindExternalContours(mask *image.Gray) *ContourSet {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	set := &ContourSet{width: width, height: height, labels: make([]int32, width*height)}
	if width == 0 || height == 0 {
		return set
	}

	fg := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fg[y*width+x] = imaging.IsSet(mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}

	solid := fillHoles(fg, width, height)

	var next int32
	stack := make([]int, 0, 256)
	for i, on := range solid {
		if !on || set.labels[i] != 0 {
			continue
		}
		next++
		stack = floodLabel(solid, set.labels, i, next, width, height, stack[:0])
		start := image.Point{X: i % width, Y: i / width}
		set.Contours = append(set.Contours, Contour{
			Points: set.traceBorder(start, next),
			label:  next,
		})
	}

	return set
}

// fillHoles returns fg with every background pixel that is not 4-connected
// to the image border switched on.
func fillHoles(fg []bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]int, 0, 256)

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

	solid := make([]bool, width*height)
	for i := range solid {
		solid[i] = !outside[i]
	}
	return solid
}

// floodLabel assigns label to every pixel 8-connected to start.
func floodLabel(solid []bool, labels []int32, start int, label int32, width, height int, stack []int) []int {
	labels[start] = label
	stack = append(stack, start)

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width

		for _, d := range directions {
			nx, ny := x+d.X, y+d.Y
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			n := ny*width + nx
			if solid[n] && labels[n] == 0 {
				labels[n] = label
				stack = append(stack, n)
			}
		}
	}
	return stack
}

// inRegion reports whether p lies inside the image and belongs to label.
func (s *ContourSet) inRegion(p image.Point, label int32) bool {
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return false
	}
	return s.labels[p.Y*s.width+p.X] == label
}

// traceBorder follows the outer border of the region starting at p0, which
// must be the region's first pixel in raster order (so its west neighbour is
// outside the region).
func (s *ContourSet) traceBorder(p0 image.Point, label int32) []image.Point {
	// Look clockwise from the west neighbour for the first region pixel
	first := -1
	for i := 0; i < 8; i++ {
		d := (dirWest + i) % 8
		if s.inRegion(p0.Add(directions[d]), label) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{p0}
	}

	p1 := p0.Add(directions[first])
	points := []image.Point{}
	p3 := p0
	back := first // direction from p3 to the previously visited pixel

	for {
		// Examine neighbours counterclockwise, starting just after back
		var p4 image.Point
		var d4 int
		for i := 1; i <= 8; i++ {
			d := (back - i + 16) % 8
			if q := p3.Add(directions[d]); s.inRegion(q, label) {
				p4, d4 = q, d
				break
			}
		}

		points = append(points, p3)
		if p4 == p0 && p3 == p1 {
			break
		}
		back = (d4 + 4) % 8
		p3 = p4
	}
	return points
}

// DrawFilled sets every pixel of contour i's region in dst, including the
// holes it encloses. dst must have the dimensions of the source mask.
func (s *ContourSet) DrawFilled(dst *image.Gray, i int) {
	label := s.Contours[i].label
	b := dst.Bounds()
	for idx, l := range s.labels {
		if l == label {
			dst.Pix[dst.PixOffset(b.Min.X+idx%s.width, b.Min.Y+idx/s.width)] = imaging.MaskOn
		}
	}
}

// DrawOutline sets the boundary pixels of contour i in dst, producing a
// closed one-pixel-wide outline.
func (s *ContourSet) DrawOutline(dst *image.Gray, i int) {
	b := dst.Bounds()
	for _, p := range s.Contours[i].Points {
		dst.Pix[dst.PixOffset(b.Min.X+p.X, b.Min.Y+p.Y)] = imaging.MaskOn
	}
}
