package imageutil

import (
	"image"
	"math"
	"math/rand"
)

// CreateRectGlyph creates a size x size glyph with the rectangle r
// filled with foreground.
func CreateRectGlyph(size int, r image.Rectangle) *GrayImage {
	img := NewGrayImage(size, size)
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	return img
}

// CreatePointsGlyph creates a size x size glyph with the given pixels set.
func CreatePointsGlyph(size int, pts ...image.Point) *GrayImage {
	img := NewGrayImage(size, size)
	for _, p := range pts {
		if p.In(img.Bounds()) {
			img.Pix[p.Y*img.Stride+p.X] = 255
		}
	}
	return img
}

// CreateLineGlyph draws 1-pixel lines from a to b (inclusive) for each
// pair of points. Only horizontal, vertical and 45 degree lines are drawn
// exactly; others are stepped along the longer axis.
func CreateLineGlyph(size int, segments ...[2]image.Point) *GrayImage {
	img := NewGrayImage(size, size)
	for _, s := range segments {
		a, b := s[0], s[1]
		dx, dy := b.X-a.X, b.Y-a.Y
		steps := max(abs(dx), abs(dy))
		for i := 0; i <= steps; i++ {
			x, y := a.X, a.Y
			if steps > 0 {
				x = a.X + int(math.Round(float64(dx*i)/float64(steps)))
				y = a.Y + int(math.Round(float64(dy*i)/float64(steps)))
			}
			if image.Pt(x, y).In(img.Bounds()) {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

// CreateRandomGlyph creates a glyph of random blobs from a fixed seed.
// Roughly density of the pixels are foreground.
func CreateRandomGlyph(size int, density float64, seed int64) *GrayImage {
	rng := rand.New(rand.NewSource(seed))
	img := NewGrayImage(size, size)
	for i := range img.Pix {
		if rng.Float64() < density {
			img.Pix[i] = 255
		}
	}
	return img
}

// Rotate180 returns the glyph rotated by 180 degrees.
func Rotate180(img *GrayImage) *GrayImage {
	width, height := img.Width(), img.Height()
	out := NewGrayImage(width, height)
	b := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Pix[(height-1-y)*out.Stride+(width-1-x)] = img.GetGray(b.Min.X+x, b.Min.Y+y)
		}
	}
	return out
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale images.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(img1.GrayAt(x, y).Y) - float64(img2.GrayAt(x, y).Y)
			sumSq += d * d
		}
	}

	return sumSq / count
}

// CalculateJaccardIndex calculates the Jaccard similarity between two binary edge maps.
// Returns a value between 0 (no overlap) and 1 (perfect overlap).
func CalculateJaccardIndex(edges1, edges2 *GrayImage) float64 {
	if edges1.Width() != edges2.Width() || edges1.Height() != edges2.Height() {
		return 0
	}

	width, height := edges1.Width(), edges1.Height()
	var intersection, union int

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			e1 := edges1.GrayAt(x, y).Y > 128
			e2 := edges2.GrayAt(x, y).Y > 128
			if e1 && e2 {
				intersection++
			}
			if e1 || e2 {
				union++
			}
		}
	}

	if union == 0 {
		return 1.0 // Both empty
	}
	return float64(intersection) / float64(union)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
