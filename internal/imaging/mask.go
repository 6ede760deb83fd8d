package imaging

import (
	"image"
)

// MaskOn is the value written for a set mask pixel.
const MaskOn = 255

// MaskThreshold is the membership cut-off: a mask pixel is set when its
// value is strictly greater than MaskThreshold.
const MaskThreshold = 0

// IsSet reports whether a mask value counts as foreground.
func IsSet(v uint8) bool {
	return v > MaskThreshold
}

// NewMask allocates an all-clear mask of the given size.
func NewMask(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// maskPlane returns the pixels of m as a dense width*height slice.
// A fresh copy is made only when m is not already dense with its origin at (0,0).
func maskPlane(m *image.Gray) []uint8 {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) && m.Stride == w {
		return m.Pix[:w*h]
	}
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		off := m.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*w:(y+1)*w], m.Pix[off:off+w])
	}
	return out
}

// CloneGray returns a dense copy of g with its origin at (0,0).
func CloneGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	copy(out.Pix, maskPlane(g))
	return out
}

// BitwiseAnd returns a mask set exactly where both a and b are set.
// The masks must have the same dimensions; the result has a's size.
func BitwiseAnd(a, b *image.Gray) *image.Gray {
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	pa, pb := maskPlane(a), maskPlane(b)
	out := NewMask(w, h)
	for i := range out.Pix {
		if IsSet(pa[i]) && IsSet(pb[i]) {
			out.Pix[i] = MaskOn
		}
	}
	return out
}

// IsSubset reports whether every set pixel of sub is also set in super.
// Masks of different dimensions are never subsets of each other.
func IsSubset(sub, super *image.Gray) bool {
	if sub.Bounds().Size() != super.Bounds().Size() {
		return false
	}
	ps, pp := maskPlane(sub), maskPlane(super)
	for i, v := range ps {
		if IsSet(v) && !IsSet(pp[i]) {
			return false
		}
	}
	return true
}

// CountSet returns the number of set pixels in m.
func CountSet(m *image.Gray) int {
	n := 0
	for _, v := range maskPlane(m) {
		if IsSet(v) {
			n++
		}
	}
	return n
}

// ReplicateGray expands a single-channel raster to an opaque RGBA raster
// with R=G=B equal to the source value.
func ReplicateGray(g *image.Gray) *image.RGBA {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := maskPlane(g)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, v := range plane {
		p := out.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = v, v, v, 0xff
	}
	return out
}

// MaskedCopy keeps the colour of img wherever mask is set and writes opaque
// black elsewhere. img and mask must have the same dimensions.
func MaskedCopy(img *image.RGBA, mask *image.Gray) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := maskPlane(mask)
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			dst[i+3] = 0xff
			if IsSet(plane[y*w+x]) {
				dst[i], dst[i+1], dst[i+2] = src[i], src[i+1], src[i+2]
			}
		}
	}
	return out
}
