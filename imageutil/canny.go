package imageutil

import "math"

// Canny performs Canny edge detection on a grayscale image.
// lowThreshold and highThreshold control edge sensitivity.
// Edge pixels are 255, everything else 0.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()

	// Smooth, then take Sobel gradients.
	blurred := PlaneFromGray(GaussianBlurGray(gray))
	gx := Convolve(blurred, SobelX())
	gy := Convolve(blurred, SobelY())

	magnitude := NewPlane(width, height)
	direction := NewPlane(width, height)
	for i := range magnitude.Values {
		x, y := gx.Values[i], gy.Values[i]
		magnitude.Values[i] = math.Sqrt(x*x + y*y)
		direction.Values[i] = math.Atan2(y, x)
	}

	suppressed := nonMaxSuppression(magnitude, direction)
	strong, weak := doubleThreshold(suppressed, lowThreshold, highThreshold)
	return hysteresis(strong, weak, width, height)
}

// CannyDefault performs Canny edge detection with thresholds (50, 150),
// which suit 0/255 glyphs.
func CannyDefault(gray *GrayImage) *GrayImage {
	return Canny(gray, 50, 150)
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction. The one pixel frame is always dropped.
func nonMaxSuppression(magnitude, direction *Plane) *Plane {
	width, height := magnitude.Width, magnitude.Height
	suppressed := NewPlane(width, height)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			mag := magnitude.At(x, y)

			// Quantize to 0, 45, 90 or 135 degrees over [0, 180).
			angle := direction.At(x, y) * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q = magnitude.At(x+1, y)
				r = magnitude.At(x-1, y)
			case angle < 67.5:
				q = magnitude.At(x+1, y+1)
				r = magnitude.At(x-1, y-1)
			case angle < 112.5:
				q = magnitude.At(x, y+1)
				r = magnitude.At(x, y-1)
			default:
				q = magnitude.At(x-1, y+1)
				r = magnitude.At(x+1, y-1)
			}

			if mag >= q && mag >= r {
				suppressed.Set(x, y, mag)
			}
		}
	}

	return suppressed
}

// doubleThreshold classifies edges as strong or weak.
func doubleThreshold(suppressed *Plane, low, high float64) (strong, weak []bool) {
	strong = make([]bool, len(suppressed.Values))
	weak = make([]bool, len(suppressed.Values))
	for i, v := range suppressed.Values {
		if v >= high {
			strong[i] = true
		} else if v >= low {
			weak[i] = true
		}
	}
	return strong, weak
}

// hysteresis keeps strong edges and every weak edge 8-connected to one,
// growing until nothing changes.
func hysteresis(strong, weak []bool, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)
	at := func(x, y int) *uint8 { return &edges.Pix[y*edges.Stride+x] }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if strong[y*width+x] {
				*at(x, y) = 255
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				if !weak[y*width+x] || *at(x, y) != 0 {
					continue
				}
			neighbours:
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if *at(x+dx, y+dy) == 255 {
							*at(x, y) = 255
							changed = true
							break neighbours
						}
					}
				}
			}
		}
	}

	return edges
}
