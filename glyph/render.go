// Package glyph renders characters from TrueType fonts into 64x64
// binary glyphs and builds labelled feature sets from them.
package glyph

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/plove"
	"github.com/wbrown/plove/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// canvasSize is the side of the scratch image a character is drawn
	// on before it is cropped and scaled to the glyph size.
	canvasSize = 2 * plove.GlyphSize

	// fontSize leaves room for ascenders and descenders on the canvas.
	fontSize = 0.75 * canvasSize

	// alphaThreshold keeps pixels with more than 25% coverage, so thin
	// strokes and dots survive anti-aliasing.
	alphaThreshold = 64
)

// Renderer draws characters of one font as binary glyphs.
type Renderer struct {
	font *truetype.Font
	name string
	opts imageutil.GlyphOptions
}

// NewRenderer creates a renderer for a parsed font.
func NewRenderer(f *truetype.Font, name string) *Renderer {
	opts := imageutil.DefaultGlyphOptions()
	opts.Size = plove.GlyphSize
	opts.Threshold = alphaThreshold
	return &Renderer{font: f, name: name, opts: opts}
}

// LoadRenderer parses a TrueType font file.
func LoadRenderer(path string) (*Renderer, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return NewRenderer(f, filepath.Base(path)), nil
}

// DefaultRenderer returns a renderer for the Go Regular font.
func DefaultRenderer() (*Renderer, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go Regular: %w", err)
	}
	return NewRenderer(f, "goregular"), nil
}

// Name returns the font name.
func (r *Renderer) Name() string {
	return r.name
}

// SetMargin sets the background border kept around rendered glyphs.
func (r *Renderer) SetMargin(margin int) {
	r.opts.Margin = margin
}

// Has reports whether the font has an outline for ch.
func (r *Renderer) Has(ch rune) bool {
	return r.font.Index(ch) != 0
}

// Render draws ch and normalises it to a 64x64 binary glyph: the ink is
// cropped, centred on a square and scaled to fill the glyph. Characters
// without ink, such as space, give an all-background glyph.
func (r *Renderer) Render(ch rune) *imageutil.GrayImage {
	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	// Alpha carries coverage directly, which is what we threshold.
	canvas := image.NewAlpha(image.Rect(0, 0, canvasSize, canvasSize))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.font)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(canvas.Bounds())
	ctx.SetDst(canvas)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingNone)

	// Centre the advance box horizontally and the ascent+descent box
	// vertically.
	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	descent := metrics.Descent.Round()
	baseline := ascent + (canvasSize-ascent-descent)/2
	x := 0
	if adv, ok := face.GlyphAdvance(ch); ok {
		x = (canvasSize - adv.Round()) / 2
	}

	if _, err := ctx.DrawString(string(ch), freetype.Pt(x, baseline)); err != nil {
		return imageutil.NewGrayImage(plove.GlyphSize, plove.GlyphSize)
	}

	return imageutil.PrepareGlyph(canvas, r.opts)
}

// RenderAll renders every rune the font has, returning the runes kept
// and their glyphs in the same order.
func (r *Renderer) RenderAll(runes []rune) ([]rune, []*imageutil.GrayImage) {
	kept := make([]rune, 0, len(runes))
	glyphs := make([]*imageutil.GrayImage, 0, len(runes))
	for _, ch := range runes {
		if !r.Has(ch) {
			continue
		}
		kept = append(kept, ch)
		glyphs = append(glyphs, r.Render(ch))
	}
	return kept, glyphs
}
