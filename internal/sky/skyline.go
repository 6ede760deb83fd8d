package sky

import (
	"image"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
)

// FindUppermostPixels returns, for each column of mask, the row of its first
// set pixel scanning from the top. Columns with no set pixel get the number
// of rows.
func FindUppermostPixels(mask *image.Gray) []int {
	b := mask.Bounds()
	rows, cols := b.Dy(), b.Dx()

	profile := make([]int, cols)
	for x := 0; x < cols; x++ {
		profile[x] = rows
		for y := 0; y < rows; y++ {
			if imaging.IsSet(mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y) {
				profile[x] = y
				break
			}
		}
	}
	return profile
}

// CreateSkylineMask builds the sky mask for a filtered edge mask.
// See SkylineMask.
func CreateSkylineMask(edges *image.Gray) *image.Gray {
	b := edges.Bounds()
	return SkylineMask(FindUppermostPixels(edges), b.Dy())
}

// SkylineMask rasterises a skyline profile: in column c, rows [0, profile[c])
// are set and the rest are clear. A value of 0 clears the column and a value
// of rows sets all of it. Values are clamped to [0, rows].
func SkylineMask(profile []int, rows int) *image.Gray {
	cols := len(profile)
	mask := imaging.NewMask(cols, rows)
	for x, r := range profile {
		r = clampRow(r, rows)
		for y := 0; y < r; y++ {
			mask.Pix[y*mask.Stride+x] = imaging.MaskOn
		}
	}
	return mask
}

func clampRow(r, rows int) int {
	if r < 0 {
		return 0
	}
	if r > rows {
		return rows
	}
	return r
}

// SkylineSummary describes a skyline profile.
type SkylineSummary struct {
	// Min and Max are the highest and lowest skyline rows (smallest and
	// largest values) over the columns that have an edge. Both are equal to
	// the row count when no column has one.
	Min int `json:"min"`
	Max int `json:"max"`

	// EmptyColumns counts columns with no edge, which are all sky.
	EmptyColumns int `json:"empty_columns"`
}

// Summarize computes a SkylineSummary for a profile of an image with the
// given number of rows.
func Summarize(profile []int, rows int) SkylineSummary {
	s := SkylineSummary{Min: rows, Max: rows}
	seen := false
	for _, r := range profile {
		if r >= rows {
			s.EmptyColumns++
			continue
		}
		if !seen {
			s.Min, s.Max = r, r
			seen = true
			continue
		}
		if r < s.Min {
			s.Min = r
		}
		if r > s.Max {
			s.Max = r
		}
	}
	return s
}
