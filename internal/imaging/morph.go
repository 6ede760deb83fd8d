package imaging

import (
	"image"
)

// Erode replaces every pixel by the minimum over a size×size rectangular
// neighbourhood centred on it, repeated iterations times.
//
// Neighbours outside the image are ignored, so erosion never pulls dark
// values in from beyond the border. A size below 2 or a non-positive
// iteration count returns an unmodified copy.
func Erode(src *image.Gray, size, iterations int) *image.Gray {
	return morph(src, size, iterations, minOf)
}

// Dilate replaces every pixel by the maximum over a size×size rectangular
// neighbourhood centred on it, repeated iterations times.
//
// Applying a 3×3 dilation n times grows set regions by n pixels in every
// direction (including diagonally). Neighbours outside the image are ignored.
func Dilate(src *image.Gray, size, iterations int) *image.Gray {
	return morph(src, size, iterations, maxOf)
}

// Open performs a morphological opening (erosion followed by dilation) with
// a size×size rectangle. Bright features smaller than the element are removed
// while larger regions keep their shape.
func Open(src *image.Gray, size int) *image.Gray {
	return Dilate(Erode(src, size, 1), size, 1)
}

func minOf(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// morph applies a separable rectangular min/max filter. The rectangle is
// anchored at its centre (size/2), matching the usual convention for odd sizes.
func morph(src *image.Gray, size, iterations int, pick func(a, b uint8) uint8) *image.Gray {
	out := CloneGray(src)
	if size < 2 || iterations < 1 {
		return out
	}

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	before := size / 2
	after := size - 1 - before
	tmp := make([]uint8, w*h)

	for it := 0; it < iterations; it++ {
		// Horizontal pass: out -> tmp
		for y := 0; y < h; y++ {
			row := out.Pix[y*w : (y+1)*w]
			dst := tmp[y*w : (y+1)*w]
			for x := 0; x < w; x++ {
				x0 := clamp(x-before, 0, w-1)
				x1 := clamp(x+after, 0, w-1)
				v := row[x0]
				for i := x0 + 1; i <= x1; i++ {
					v = pick(v, row[i])
				}
				dst[x] = v
			}
		}

		// Vertical pass: tmp -> out
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				y0 := clamp(y-before, 0, h-1)
				y1 := clamp(y+after, 0, h-1)
				v := tmp[y0*w+x]
				for i := y0 + 1; i <= y1; i++ {
					v = pick(v, tmp[i*w+x])
				}
				out.Pix[y*w+x] = v
			}
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in neighbourhood operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
