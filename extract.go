package plove

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/wbrown/plove/imageutil"
)

// ExtractOutline computes the 768-dimensional peripheral local outline
// vector of a 64x64 glyph.
func ExtractOutline(img image.Image, opts ...Option) (*FeatureVector, error) {
	return Extract(Outline, img, opts...)
}

// ExtractMoment computes the 576-dimensional peripheral local moment
// vector of a 64x64 glyph.
func ExtractMoment(img image.Image, opts ...Option) (*FeatureVector, error) {
	return Extract(Moment, img, opts...)
}

// Extract computes the feature vector of the given variant.
// It returns ErrInvalidDimensions if img is not 64x64 and
// ErrAllocationFailure if the edge detector yields no usable edge map.
func Extract(variant Variant, img image.Image, opts ...Option) (*FeatureVector, error) {
	o := buildOptions(opts)
	return extract(variant, img, &o)
}

func extract(variant Variant, img image.Image, o *options) (*FeatureVector, error) {
	if !variant.valid() {
		return nil, fmt.Errorf("plove: unknown variant %d", int(variant))
	}
	glyph, err := toGlyph(img, o.legacy)
	if err != nil {
		return nil, err
	}

	buf, err := newEdgeBuffer(o.edges(glyph))
	if err != nil {
		return nil, err
	}

	var field *Field
	switch variant {
	case Outline:
		dirs, err := codeDirections(buf)
		if err != nil {
			return nil, err
		}
		field, err = outlineField(dirs)
		if err != nil {
			return nil, err
		}
	case Moment:
		field, err = momentField(buf)
		if err != nil {
			return nil, err
		}
	}

	log := Logger()
	log.Debug("plove: edge map", "variant", variant, "edgePixels", buf.count)

	comps := variant.Components()
	values := make([]float64, 0, variant.Dim())
	for i := range orientations {
		or := &orientations[i]
		lf, crossings := scanOrientation(glyph, field, or)
		values = lf.appendTo(values, or.divisor, comps)
		log.Debug("plove: scanned", "orientation", or.name, "crossings", crossings)
	}

	return &FeatureVector{
		Variant: variant,
		Dim:     variant.Dim(),
		Values:  values,
	}, nil
}

// toGlyph validates img and returns it as a 64x64 gray image whose
// bounds start at the origin.
func toGlyph(img image.Image, legacy bool) (*imageutil.GrayImage, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	exact := w == GlyphSize && h == GlyphSize
	if !exact && !(legacy && (w == GlyphSize || h == GlyphSize)) {
		Logger().Warn("plove: rejected glyph", slog.Int("width", w), slog.Int("height", h))
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, w, h)
	}

	if exact && b.Min == (image.Point{}) {
		switch g := img.(type) {
		case *imageutil.GrayImage:
			return g, nil
		case *image.Gray:
			return &imageutil.GrayImage{Gray: g}, nil
		}
	}
	if exact {
		return imageutil.GrayImageFromImage(img), nil
	}

	win := imageutil.NewGrayImage(GlyphSize, GlyphSize)
	for y := 0; y < min(h, GlyphSize); y++ {
		for x := 0; x < min(w, GlyphSize); x++ {
			win.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return win, nil
}
