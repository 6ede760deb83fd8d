package detection

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// createMask builds a mask from rows of '#' (set) and '.' (clear).
func createMask(rows ...string) *image.Gray {
	h := len(rows)
	w := len(rows[0])
	m := imaging.NewMask(w, h)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.Pix[y*w+x] = imaging.MaskOn
			}
		}
	}
	return m
}

func fillRect(m *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: imaging.MaskOn})
		}
	}
}

func TestFindExternalContours_Empty(t *testing.T) {
	set := FindExternalContours(imaging.NewMask(10, 10))
	if set.Len() != 0 {
		t.Errorf("expected no contours, got %d", set.Len())
	}

	set = FindExternalContours(imaging.NewMask(0, 0))
	if set.Len() != 0 {
		t.Errorf("expected no contours for an empty image, got %d", set.Len())
	}
}

func TestFindExternalContours_Square2x2(t *testing.T) {
	set := FindExternalContours(createMask(
		"##.",
		"##.",
		"...",
	))
	if set.Len() != 1 {
		t.Fatalf("expected 1 contour, got %d", set.Len())
	}

	c := set.Contours[0]
	want := []image.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if len(c.Points) != len(want) {
		t.Fatalf("points: got %v, want %v", c.Points, want)
	}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, c.Points[i], want[i])
		}
	}
	if c.Area() != 1 {
		t.Errorf("Area: got %v, want 1", c.Area())
	}
	if c.ArcLength(false) != 3 {
		t.Errorf("open ArcLength: got %v, want 3", c.ArcLength(false))
	}
	if c.ArcLength(true) != 4 {
		t.Errorf("closed ArcLength: got %v, want 4", c.ArcLength(true))
	}
}

func TestFindExternalContours_Rectangle(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"interior", image.Rect(5, 3, 25, 13)},
		{"touching border", image.Rect(0, 0, 30, 8)},
		{"full image", image.Rect(0, 0, 30, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := imaging.NewMask(30, 20)
			fillRect(m, tt.rect)

			set := FindExternalContours(m)
			if set.Len() != 1 {
				t.Fatalf("expected 1 contour, got %d", set.Len())
			}
			c := set.Contours[0]
			w, h := tt.rect.Dx(), tt.rect.Dy()

			if c.Points[0] != tt.rect.Min {
				t.Errorf("start point: got %v, want %v", c.Points[0], tt.rect.Min)
			}
			if want := float64((w - 1) * (h - 1)); c.Area() != want {
				t.Errorf("Area: got %v, want %v", c.Area(), want)
			}
			perimeter := 2*(w-1) + 2*(h-1)
			if len(c.Points) != perimeter {
				t.Errorf("points: got %d, want %d", len(c.Points), perimeter)
			}
			if want := float64(perimeter - 1); c.ArcLength(false) != want {
				t.Errorf("open ArcLength: got %v, want %v", c.ArcLength(false), want)
			}
		})
	}
}

func TestFindExternalContours_SinglePixel(t *testing.T) {
	set := FindExternalContours(createMask(
		"...",
		".#.",
		"...",
	))
	if set.Len() != 1 {
		t.Fatalf("expected 1 contour, got %d", set.Len())
	}
	c := set.Contours[0]
	if len(c.Points) != 1 || c.Points[0] != (image.Point{1, 1}) {
		t.Errorf("points: got %v", c.Points)
	}
	if c.Area() != 0 || c.ArcLength(false) != 0 || c.ArcLength(true) != 0 {
		t.Errorf("single pixel should measure zero, got area %v length %v", c.Area(), c.ArcLength(false))
	}
}

func TestFindExternalContours_HorizontalLine(t *testing.T) {
	set := FindExternalContours(createMask(
		".....",
		".###.",
		".....",
	))
	if set.Len() != 1 {
		t.Fatalf("expected 1 contour, got %d", set.Len())
	}
	c := set.Contours[0]
	// A one-pixel line is traced out and back
	want := []image.Point{{1, 1}, {2, 1}, {3, 1}, {2, 1}}
	if len(c.Points) != len(want) {
		t.Fatalf("points: got %v, want %v", c.Points, want)
	}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, c.Points[i], want[i])
		}
	}
	if c.Area() != 0 {
		t.Errorf("Area: got %v, want 0", c.Area())
	}
	if c.ArcLength(false) != 3 {
		t.Errorf("open ArcLength: got %v, want 3", c.ArcLength(false))
	}
}

func TestFindExternalContours_DiagonalConnectivity(t *testing.T) {
	set := FindExternalContours(createMask(
		"#...",
		".#..",
		"..#.",
		"....",
	))
	if set.Len() != 1 {
		t.Fatalf("diagonal pixels should form one region, got %d", set.Len())
	}
	if got := set.Contours[0].ArcLength(false); math.Abs(got-3*math.Sqrt2) > 1e-9 {
		t.Errorf("open ArcLength: got %v, want %v", got, 3*math.Sqrt2)
	}
}

func TestFindExternalContours_SeparateRegionsInRasterOrder(t *testing.T) {
	set := FindExternalContours(createMask(
		"......##",
		"......##",
		"........",
		"##......",
		"##......",
	))
	if set.Len() != 2 {
		t.Fatalf("expected 2 contours, got %d", set.Len())
	}
	if set.Contours[0].Points[0] != (image.Point{6, 0}) {
		t.Errorf("first contour should start at (6,0), got %v", set.Contours[0].Points[0])
	}
	if set.Contours[1].Points[0] != (image.Point{0, 3}) {
		t.Errorf("second contour should start at (0,3), got %v", set.Contours[1].Points[0])
	}
}

func TestFindExternalContours_HolesAndNesting(t *testing.T) {
	m := createMask(
		".........",
		".#######.",
		".#.....#.",
		".#.###.#.",
		".#.#.#.#.",
		".#.###.#.",
		".#.....#.",
		".#######.",
		".........",
	)

	set := FindExternalContours(m)
	if set.Len() != 1 {
		t.Fatalf("nested region should merge into the outer one, got %d contours", set.Len())
	}

	filled := imaging.NewMask(9, 9)
	set.DrawFilled(filled, 0)
	if n := imaging.CountSet(filled); n != 49 {
		t.Errorf("filled region: got %d pixels, want 49", n)
	}
	if !imaging.IsSet(filled.GrayAt(4, 4).Y) {
		t.Error("enclosed hole should be filled")
	}
	if imaging.IsSet(filled.GrayAt(0, 0).Y) {
		t.Error("outside background should stay clear")
	}
}

func TestFindExternalContours_DiagonalGapIsHole(t *testing.T) {
	// Background only reaches the centre diagonally, which does not connect it
	m := createMask(
		"....",
		".##.",
		".#.#",
		"..#.",
	)
	set := FindExternalContours(m)
	if set.Len() != 1 {
		t.Fatalf("expected 1 contour, got %d", set.Len())
	}
	filled := imaging.NewMask(4, 4)
	set.DrawFilled(filled, 0)
	if !imaging.IsSet(filled.GrayAt(2, 2).Y) {
		t.Error("diagonally enclosed background should be treated as a hole")
	}
}

func TestDrawOutline_SubsetOfFilled(t *testing.T) {
	m := imaging.NewMask(40, 30)
	fillRect(m, image.Rect(4, 4, 20, 25))
	fillRect(m, image.Rect(10, 2, 35, 10))

	set := FindExternalContours(m)
	if set.Len() != 1 {
		t.Fatalf("expected 1 contour, got %d", set.Len())
	}

	filled := imaging.NewMask(40, 30)
	outline := imaging.NewMask(40, 30)
	set.DrawFilled(filled, 0)
	set.DrawOutline(outline, 0)

	if !imaging.IsSubset(outline, filled) {
		t.Error("outline should lie inside the filled region")
	}
	if imaging.CountSet(outline) >= imaging.CountSet(filled) {
		t.Error("outline should not cover the whole region")
	}
	if !imaging.IsSubset(m, filled) {
		t.Error("filled region should cover the source mask")
	}
	if imaging.IsSet(outline.GrayAt(12, 12).Y) {
		t.Error("interior pixel should not be on the outline")
	}
}

func TestArcLength_TooFewPoints(t *testing.T) {
	var c Contour
	if c.ArcLength(true) != 0 || c.Area() != 0 {
		t.Error("empty contour should measure zero")
	}
}

func TestContour_Simplify(t *testing.T) {
	tests := []struct {
		name       string
		mask       *image.Gray
		want       []image.Point
		openLength float64
	}{
		{
			name: "square keeps corners",
			mask: createMask("##.", "##.", "..."),
			want: []image.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
			// Nothing to compress
			openLength: 3,
		},
		{
			name:       "horizontal line",
			mask:       createMask(".....", ".###.", "....."),
			want:       []image.Point{{1, 1}, {3, 1}},
			openLength: 2,
		},
		{
			name:       "diagonal line",
			mask:       createMask("#...", ".#..", "..#.", "...."),
			want:       []image.Point{{0, 0}, {2, 2}},
			openLength: 2 * math.Sqrt2,
		},
		{
			name:       "single pixel",
			mask:       createMask("...", ".#.", "..."),
			want:       []image.Point{{1, 1}},
			openLength: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := FindExternalContours(tt.mask)
			if set.Len() != 1 {
				t.Fatalf("expected 1 contour, got %d", set.Len())
			}
			got := set.Contours[0].Simplify()
			if len(got.Points) != len(tt.want) {
				t.Fatalf("points: got %v, want %v", got.Points, tt.want)
			}
			for i := range tt.want {
				if got.Points[i] != tt.want[i] {
					t.Errorf("point %d: got %v, want %v", i, got.Points[i], tt.want[i])
				}
			}
			if l := got.ArcLength(false); math.Abs(l-tt.openLength) > 1e-9 {
				t.Errorf("open ArcLength: got %v, want %v", l, tt.openLength)
			}
		})
	}
}

func TestContour_SimplifyRectangle(t *testing.T) {
	tests := []struct {
		name string
		size image.Point
		rect image.Rectangle
	}{
		{"interior", image.Pt(30, 20), image.Rect(5, 3, 25, 13)},
		{"full image", image.Pt(30, 20), image.Rect(0, 0, 30, 20)},
		{"full-width band", image.Pt(1024, 40), image.Rect(0, 10, 1024, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := imaging.NewMask(tt.size.X, tt.size.Y)
			fillRect(m, tt.rect)

			set := FindExternalContours(m)
			if set.Len() != 1 {
				t.Fatalf("expected 1 contour, got %d", set.Len())
			}
			dense := set.Contours[0]
			simple := dense.Simplify()

			r := tt.rect
			corners := []image.Point{
				r.Min,
				{r.Min.X, r.Max.Y - 1},
				{r.Max.X - 1, r.Max.Y - 1},
				{r.Max.X - 1, r.Min.Y},
			}
			if len(simple.Points) != len(corners) {
				t.Fatalf("points: got %v, want %v", simple.Points, corners)
			}
			for i := range corners {
				if simple.Points[i] != corners[i] {
					t.Errorf("corner %d: got %v, want %v", i, simple.Points[i], corners[i])
				}
			}

			w, h := r.Dx(), r.Dy()
			// The final run back to the start is the whole top edge
			if want := float64(2*(h-1) + (w - 1)); simple.ArcLength(false) != want {
				t.Errorf("simplified open ArcLength: got %v, want %v", simple.ArcLength(false), want)
			}
			if want := float64(2*(w-1) + 2*(h-1) - 1); dense.ArcLength(false) != want {
				t.Errorf("dense open ArcLength: got %v, want %v", dense.ArcLength(false), want)
			}
			if simple.ArcLength(true) != dense.ArcLength(true) {
				t.Errorf("closed ArcLength changed: %v vs %v", simple.ArcLength(true), dense.ArcLength(true))
			}
			if simple.Area() != dense.Area() {
				t.Errorf("Area changed: %v vs %v", simple.Area(), dense.Area())
			}
		})
	}
}

func TestContour_SimplifyEmpty(t *testing.T) {
	var c Contour
	if got := c.Simplify(); len(got.Points) != 0 {
		t.Errorf("empty contour: got %v", got.Points)
	}
}
