package loader

import "math"

// SampleFactor returns the integer divisor to decode a width x height image at
// so that it is no smaller than maxWidth x maxHeight in at least one
// dimension, and holds at most 2*maxWidth*maxHeight pixels.
//
// Images already inside the requested box get a factor of 1. Non-positive
// arguments also yield 1. The budget also holds for the clamped ScaledSize of
// slivers whose short side floors to 0.
func SampleFactor(width, height, maxWidth, maxHeight int) int {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return 1
	}
	if width <= maxWidth && height <= maxHeight {
		return 1
	}

	heightRatio := int(math.Round(float64(height) / float64(maxHeight)))
	widthRatio := int(math.Round(float64(width) / float64(maxWidth)))

	factor := heightRatio
	if widthRatio < factor {
		factor = widthRatio
	}
	if factor < 1 {
		factor = 1
	}

	budget := 2 * int64(maxWidth) * int64(maxHeight)
	for overBudget(width, height, factor, budget) {
		factor++
	}

	return factor
}

// overBudget reports whether decoding at factor exceeds budget pixels, either
// by the w*h/f² estimate or by the clamped decoded size.
func overBudget(width, height, factor int, budget int64) bool {
	f := int64(factor)
	if int64(width)*int64(height)/(f*f) > budget {
		return true
	}
	w, h := ScaledSize(width, height, factor)
	return int64(w)*int64(h) > budget
}

// ScaledSize is the size an image of width x height has after decoding at
// factor. Each dimension is at least 1.
func ScaledSize(width, height, factor int) (int, int) {
	if factor <= 1 {
		return width, height
	}
	w := width / factor
	h := height / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// FitSize returns the largest size with the aspect ratio of width x height
// that fits in boxWidth x boxHeight. Sizes already inside the box are returned
// unchanged.
func FitSize(width, height, boxWidth, boxHeight int) (int, int) {
	if width <= 0 || height <= 0 || boxWidth <= 0 || boxHeight <= 0 {
		return width, height
	}
	if width <= boxWidth && height <= boxHeight {
		return width, height
	}

	// Compare width/boxWidth against height/boxHeight without floats.
	if int64(width)*int64(boxHeight) >= int64(height)*int64(boxWidth) {
		h := int(int64(height) * int64(boxWidth) / int64(width))
		if h < 1 {
			h = 1
		}
		return boxWidth, h
	}
	w := int(int64(width) * int64(boxHeight) / int64(height))
	if w < 1 {
		w = 1
	}
	return w, boxHeight
}
