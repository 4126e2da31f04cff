package imageutil

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// GlyphOptions controls PrepareGlyph.
type GlyphOptions struct {
	// Size is the side of the output glyph.
	Size int
	// Threshold separates ink from paper after any inversion: pixels
	// brighter than Threshold become foreground.
	Threshold uint8
	// DarkOnLight inverts the input first, for dark ink on light paper.
	DarkOnLight bool
	// KeepAspect pads the cropped glyph to a square before scaling so
	// its proportions survive.
	KeepAspect bool
	// Margin is the number of background pixels left around the glyph.
	Margin int
}

// DefaultGlyphOptions returns options producing 64x64 glyphs from light
// ink on a dark background, aspect preserved, no margin.
func DefaultGlyphOptions() GlyphOptions {
	return GlyphOptions{
		Size:       64,
		Threshold:  127,
		KeepAspect: true,
	}
}

// PrepareGlyph turns an arbitrary character image into a square binary
// glyph (0 background, 255 foreground):
//
//  1. Optionally inverts dark-on-light input
//  2. Thresholds to binary
//  3. Crops to the bounding box of the ink
//  4. Optionally pads the crop to a square, centred
//  5. Scales to Size-2*Margin with nearest-neighbour sampling and places
//     it inside the margin
//
// An image without ink yields an all-background glyph.
func PrepareGlyph(img image.Image, opts GlyphOptions) *GrayImage {
	size := opts.Size
	if size <= 0 {
		size = 64
	}
	out := NewGrayImage(size, size)

	src := img
	if opts.DarkOnLight {
		src = imaging.Invert(img)
	}
	gray := Binarize(ToGrayscale(src), opts.Threshold)

	box := gray.ForegroundBounds()
	if box.Empty() {
		return out
	}

	cropped := imaging.Crop(gray.Gray, box)
	if opts.KeepAspect {
		side := max(box.Dx(), box.Dy())
		cropped = imaging.PasteCenter(imaging.New(side, side, color.Black), cropped)
	}

	margin := opts.Margin
	inner := size - 2*margin
	if margin < 0 || inner < 1 {
		margin, inner = 0, size
	}
	scaled := ResizeGray(ToGrayscale(cropped), inner, inner, InterpolationNearest)
	draw.Draw(out.Gray, image.Rect(margin, margin, margin+inner, margin+inner),
		scaled.Gray, image.Point{}, draw.Src)

	return Binarize(out, 0)
}
