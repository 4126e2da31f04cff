package imageutil

// Outline marks the contour of a binary glyph: a foreground pixel is an
// edge when one of its four direct neighbours is background or lies
// outside the image. Edge pixels are 255, everything else 0.
//
// This is the glyph minus its erosion by a 3x3 cross, with the area
// outside the image treated as background.
func Outline(glyph *GrayImage) *GrayImage {
	width, height := glyph.Width(), glyph.Height()
	b := glyph.Bounds()
	edges := NewGrayImage(width, height)

	fg := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return false
		}
		return glyph.GetGray(b.Min.X+x, b.Min.Y+y) != 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !fg(x, y) {
				continue
			}
			if !fg(x-1, y) || !fg(x+1, y) || !fg(x, y-1) || !fg(x, y+1) {
				edges.Pix[y*edges.Stride+x] = 255
			}
		}
	}

	return edges
}
