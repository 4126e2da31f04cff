package imageutil

import "image"

// ToGrayscale converts any image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
func ToGrayscale(img image.Image) *GrayImage {
	if g, ok := img.(*GrayImage); ok {
		return g.Clone()
	}
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Integer math on the 8-bit channels, rounded.
			lum := (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Pix[(y-bounds.Min.Y)*gray.Stride+(x-bounds.Min.X)] = uint8(lum)
		}
	}

	return gray
}

// Binarize maps every pixel above threshold to 255 and the rest to 0.
func Binarize(gray *GrayImage, threshold uint8) *GrayImage {
	out := NewGrayImage(gray.Width(), gray.Height())
	b := gray.Bounds()
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if gray.GetGray(b.Min.X+x, b.Min.Y+y) > threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
