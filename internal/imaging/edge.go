package imaging

import (
	"image"
)

// Canny performs Canny edge detection on a single-channel intensity raster
// and returns a binary mask with edge pixels set.
//
// Parameters:
//   - gray: Source intensity raster.
//   - thresholdLow: Gradient magnitude a pixel must exceed to be a candidate
//     edge. Candidates survive only when connected to a strong edge.
//   - thresholdHigh: Gradient magnitude a pixel must exceed to be a strong
//     edge. Strong edges are always kept.
//
// # Algorithm
//
//  1. Gradient computation: 3×3 Sobel operators for X and Y with replicated
//     borders. Magnitude is the L1 norm |Gx| + |Gy| on the unnormalised
//     response, so a full black/white step yields 1020.
//
//  2. Non-maximum suppression: each pixel is compared with its two
//     neighbours across the edge (horizontal, vertical or diagonal, chosen by
//     the 22.5° sector of the gradient). A pixel is kept when it is strictly
//     greater than the neighbour on one side and not smaller than the other,
//     so a plateau two pixels wide yields a single-pixel line.
//
//  3. Hysteresis: pixels above thresholdHigh seed a flood fill that walks
//     8-connected candidate pixels (above thresholdLow).
//
// No smoothing is applied; callers pre-filter the input when needed.
func Canny(gray *image.Gray, thresholdLow, thresholdHigh float64) *image.Gray {
	plane := maskPlane(gray)
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	edges := NewMask(width, height)
	if width == 0 || height == 0 {
		return edges
	}

	gx, gy, mag := sobel(plane, width, height)

	magAt := func(x, y int) int32 {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return mag[y*width+x]
	}

	const (
		notEdge = iota
		candidate
		strong
	)
	state := make([]uint8, width*height)
	stack := make([]int, 0, 1024)

	// tan(22.5°) in 15-bit fixed point
	const tg22 = 13573

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := mag[i]
			if float64(m) <= thresholdLow {
				continue
			}

			ax, ay := abs32(gx[i]), abs32(gy[i])
			tg22x := int64(ax) * tg22
			yShift := int64(ay) << 15

			keep := false
			switch {
			case yShift < tg22x:
				// Gradient is mostly horizontal: compare left and right
				keep = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case yShift > tg22x+(int64(ax)<<16):
				// Gradient is mostly vertical: compare above and below
				keep = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				keep = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !keep {
				continue
			}

			if float64(m) > thresholdHigh {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = candidate
			}
		}
	}

	// Edge tracking by hysteresis
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		edges.Pix[i] = MaskOn

		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				n := ny*width + nx
				if state[n] == candidate {
					state[n] = strong
					stack = append(stack, n)
				}
			}
		}
	}

	return edges
}

// sobel computes 3×3 Sobel derivatives and their L1 magnitude with
// replicated borders.
func sobel(plane []uint8, width, height int) (gx, gy, mag []int32) {
	gx = make([]int32, width*height)
	gy = make([]int32, width*height)
	mag = make([]int32, width*height)

	at := func(x, y int) int32 {
		return int32(plane[clamp(y, 0, height-1)*width+clamp(x, 0, width-1)])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			dx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			dy := (bl + 2*bc + br) - (tl + 2*tc + tr)

			i := y*width + x
			gx[i] = dx
			gy[i] = dy
			mag[i] = abs32(dx) + abs32(dy)
		}
	}
	return gx, gy, mag
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
