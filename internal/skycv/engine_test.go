//go:build gocv
// +build gocv

package skycv

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
	"github.com/ironsheep/sky-detect-mcp/internal/sky"
)

func createStepImage(w, h, k int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := top
		if y >= k {
			c = bottom
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDetect_MatchesGoEngine(t *testing.T) {
	tests := []struct {
		name string
		img  *image.RGBA
	}{
		{"black over white", createStepImage(2048, 80, 40, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})},
		{"sky over ground", createStepImage(2048, 120, 60, color.RGBA{100, 150, 230, 255}, color.RGBA{40, 40, 40, 255})},
		// Horizon band too short to count as skyline
		{"narrow step", createStepImage(1024, 80, 40, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})},
	}

	cv, err := New(sky.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := sky.Detect(tt.img)
			if err != nil {
				t.Fatalf("sky.Detect failed: %v", err)
			}
			got, err := cv.Detect(tt.img)
			if err != nil {
				t.Fatalf("opencv Detect failed: %v", err)
			}

			masks := []struct {
				name      string
				got, want *image.Gray
			}{
				{"ColorMask", got.ColorMask, want.ColorMask},
				{"FilteredColorMask", got.FilteredColorMask, want.FilteredColorMask},
				{"Edges", got.Edges, want.Edges},
				{"SkylineEdges", got.SkylineEdges, want.SkylineEdges},
				{"SkyMask", got.SkyMask, want.SkyMask},
			}
			for _, m := range masks {
				if !bytes.Equal(m.got.Pix, m.want.Pix) {
					t.Errorf("%s differs: opencv %d set, go %d set",
						m.name, imaging.CountSet(m.got), imaging.CountSet(m.want))
				}
			}
			if !bytes.Equal(got.Segmented.Pix, want.Segmented.Pix) {
				t.Error("Segmented differs")
			}
		})
	}
}

func TestDetect_InvalidInput(t *testing.T) {
	cv, err := New(sky.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = cv.Detect(image.NewGray(image.Rect(0, 0, 4, 4)))
	var invalid *sky.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}
