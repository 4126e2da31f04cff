// Package imageutil provides the raster plumbing around glyph feature
// extraction: gray glyph images, edge detectors, resampling, glyph
// preparation and image file I/O.
package imageutil

import (
	"image"
	"image/color"
	"strings"
)

// GrayImage wraps image.Gray for single-channel glyphs and edge maps.
// Pixel (x, y) is foreground when its value is non-zero.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new all-background GrayImage.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// GrayImageFromImage converts any image.Image to a GrayImage whose
// bounds start at the origin.
func GrayImageFromImage(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the value at (x, y), or 0 outside the image.
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue sets the value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.SetGray(x, y, color.Gray{Y: v})
}

// Foreground reports whether (x, y) is inside the image and non-zero.
func (img *GrayImage) Foreground(x, y int) bool {
	return img.GetGray(x, y) != 0
}

// CountForeground returns the number of non-zero pixels.
func (img *GrayImage) CountForeground() int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GetGray(x, y) != 0 {
				n++
			}
		}
	}
	return n
}

// ForegroundBounds returns the smallest rectangle containing every
// non-zero pixel, or an empty rectangle if there is none.
func (img *GrayImage) ForegroundBounds() image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GetGray(x, y) != 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

// Clone creates a deep copy of the image with its bounds moved to the
// origin. Sub-images copy only the pixels inside their bounds.
func (img *GrayImage) Clone() *GrayImage {
	b := img.Bounds()
	clone := NewGrayImage(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(clone.Pix[y*clone.Stride:], img.Pix[src:src+b.Dx()])
	}
	return clone
}

// ASCII renders the image one text row per pixel row, '#' for
// foreground and '.' for background.
func (img *GrayImage) ASCII() string {
	var sb strings.Builder
	b := img.Bounds()
	sb.Grow((b.Dx() + 1) * b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GetGray(x, y) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
